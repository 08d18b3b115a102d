package http

import (
	"github.com/gin-gonic/gin"
	"github.com/macrolens/servings/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		foods := v1.Group("/foods")
		{
			foods.GET("/:fdcId", handler.GetFood)
			foods.POST("/:fdcId/servings", handler.SelectServing)
			foods.POST("/map", handler.MapFood)
		}

		servings := v1.Group("/servings")
		{
			servings.POST("/preview", handler.PreviewServing)
			servings.POST("/custom", handler.CustomAmount)
		}
	}

	return router
}
