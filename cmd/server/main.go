package main

import (
	"fmt"
	"log"
	"os"

	"github.com/macrolens/servings/config"
	httpDelivery "github.com/macrolens/servings/internal/delivery/http"
	"github.com/macrolens/servings/internal/infrastructure/cache"
	"github.com/macrolens/servings/internal/infrastructure/usda"
	"github.com/macrolens/servings/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Servings API v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	usdaClient := usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL,
		usda.WithTimeout(cfg.USDA.Timeout),
		usda.WithRateLimit(cfg.USDA.RequestsPerHour, cfg.USDA.Burst),
		usda.WithMaxRetries(cfg.USDA.MaxRetries),
	)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		usdaClient.SetDebug(true)
		log.Printf("USDA client debug mode enabled")
	}
	log.Printf("USDA API configured: %s (%d req/h, burst %d, %d retries)",
		cfg.USDA.BaseURL, cfg.USDA.RequestsPerHour, cfg.USDA.Burst, cfg.USDA.MaxRetries)

	// Initialize usecase layer
	foodService := usecase.NewFoodService(
		memoryCache,
		usdaClient,
		usecase.FoodServiceConfig{CacheTTL: cfg.Cache.TTL},
	)
	servingService := usecase.NewServingService(cfg.Servings.MaxPresets)
	log.Printf("Servings: max presets=%d, per-IP limit=%d/min", cfg.Servings.MaxPresets, cfg.RateLimit.PerIP)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(foodService, servingService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
