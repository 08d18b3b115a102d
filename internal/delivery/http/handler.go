package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/macrolens/servings/internal/domain"
	"github.com/macrolens/servings/internal/serving"
	"github.com/macrolens/servings/internal/usecase"
)

// FoodLookup fetches canonical food records by FDC ID
type FoodLookup interface {
	GetFood(ctx context.Context, fdcID string) (*domain.FoodRecord, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	foods    FoodLookup
	servings *usecase.ServingService
	now      func() time.Time
}

// NewHandler creates a new HTTP handler. A nil foods disables the FDC lookup endpoints.
func NewHandler(foods FoodLookup, servings *usecase.ServingService) *Handler {
	if servings == nil {
		servings = usecase.NewServingService(serving.DefaultPresetCount)
	}
	return &Handler{foods: foods, servings: servings, now: time.Now}
}

// selectionRequest is the client's serving selection
type selectionRequest struct {
	SelectedServing   *domain.ServingOption `json:"selectedServing"`
	CustomAmountGrams *float64              `json:"customAmountGrams" binding:"omitempty,gt=0"`
	CustomAmountText  string                `json:"customAmountText"`
	Quantity          float64               `json:"quantity" binding:"omitempty,gte=0"`
}

type previewRequest struct {
	Food      *domain.FoodRecord `json:"food" binding:"required"`
	Selection selectionRequest   `json:"selection"`
}

type customAmountRequest struct {
	Food *domain.FoodRecord `json:"food" binding:"required"`
	Text string             `json:"text"`
}

type customAmountResponse struct {
	Accepted    bool     `json:"accepted"`
	AmountGrams *float64 `json:"amountGrams"`
	Label       string   `json:"label"`
}

// toSelection resolves the request against the food; custom text wins over custom grams
func (h *Handler) toSelection(food *domain.FoodRecord, req selectionRequest) domain.ServingSelection {
	sel := domain.NewServingSelection()
	sel.SelectedServing = req.SelectedServing
	if req.Quantity > 0 {
		sel.Quantity = req.Quantity
	}
	if req.CustomAmountGrams != nil {
		sel = sel.WithCustomAmount(*req.CustomAmountGrams, true)
	}
	if req.CustomAmountText != "" {
		sel, _ = h.servings.ApplyCustomText(food, sel, req.CustomAmountText)
	}
	return sel
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "servings-api",
		"version": "1.0.0",
	})
}

// GetFood returns the serving view of an FDC food at its base serving
func (h *Handler) GetFood(c *gin.Context) {
	food, ok := h.lookup(c)
	if !ok {
		return
	}
	h.renderView(c, food, domain.NewServingSelection())
}

// SelectServing returns the serving view of an FDC food for the posted selection
func (h *Handler) SelectServing(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, err)
		return
	}
	food, ok := h.lookup(c)
	if !ok {
		return
	}
	h.renderView(c, food, h.toSelection(food, req))
}

// MapFood maps a posted USDA food-details payload to a canonical record
func (h *Handler) MapFood(c *gin.Context) {
	var details domain.USDAFoodDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		h.respondError(c, http.StatusBadRequest, err)
		return
	}
	food, err := usecase.MapFoodDetails(&details, h.now())
	if err != nil {
		h.respondError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, food)
}

// PreviewServing returns the serving view of a posted food record without any lookup
func (h *Handler) PreviewServing(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, err)
		return
	}
	h.renderView(c, req.Food, h.toSelection(req.Food, req.Selection))
}

// CustomAmount validates free-text custom input for a food. Rejected text is not an
// error: the response tells the client to clear its custom amount.
func (h *Handler) CustomAmount(c *gin.Context) {
	var req customAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := req.Food.Validate(); err != nil {
		h.respondError(c, http.StatusBadRequest, err)
		return
	}

	resp := customAmountResponse{Label: serving.CustomPlaceholder}
	if grams, ok := serving.CustomAmountGrams(*req.Food, req.Text); ok {
		resp.Accepted = true
		resp.AmountGrams = &grams
		resp.Label = serving.FormatCustomLabel(*req.Food, grams)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) lookup(c *gin.Context) (*domain.FoodRecord, bool) {
	if h.foods == nil {
		c.JSON(http.StatusNotImplemented, gin.H{
			"error": "food lookup is not configured",
		})
		return nil, false
	}
	food, err := h.foods.GetFood(c.Request.Context(), c.Param("fdcId"))
	if err != nil {
		h.respondError(c, statusFor(err), err)
		return nil, false
	}
	return food, true
}

func (h *Handler) renderView(c *gin.Context, food *domain.FoodRecord, sel domain.ServingSelection) {
	view, err := h.servings.View(food, sel)
	if err != nil {
		h.respondError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidFoodRecord):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUSDAAPIFailure):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *Handler) respondError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{
		"error":     err.Error(),
		"requestId": RequestIDFrom(c),
	})
}
