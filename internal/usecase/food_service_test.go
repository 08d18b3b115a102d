package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/macrolens/servings/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string][]byte
	getError  error
	setError  error
	getCalled bool
	setCalled bool
	lastTTL   time.Duration
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.setCalled = true
	m.lastTTL = ttl
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockUSDAClient is a mock implementation of domain.USDAClient
type MockUSDAClient struct {
	foodResult *domain.USDAFoodDetails
	foodError  error
	calls      int
	lastID     string
}

func NewMockUSDAClient() *MockUSDAClient {
	return &MockUSDAClient{}
}

func (m *MockUSDAClient) GetFoodDetails(ctx context.Context, fdcID string) (*domain.USDAFoodDetails, error) {
	m.calls++
	m.lastID = fdcID
	if m.foodError != nil {
		return nil, m.foodError
	}
	return m.foodResult, nil
}

func amount(v float64) *float64 { return &v }

func eggDetails() *domain.USDAFoodDetails {
	return &domain.USDAFoodDetails{
		FdcID:       171287,
		Description: "Egg, whole, raw, fresh",
		FoodPortions: []domain.USDAPortion{
			{Amount: 1, Modifier: "large", GramWeight: 50},
			{Amount: 1, Modifier: "extra large", GramWeight: 56},
		},
		FoodNutrients: []domain.USDANutrientRecord{
			{Nutrient: &domain.USDANutrientRef{ID: 1008, Name: "Energy", UnitName: "kcal"}, Amount: amount(143)},
			{Nutrient: &domain.USDANutrientRef{ID: 1003, Name: "Protein", UnitName: "g"}, Amount: amount(12.6)},
		},
	}
}

func TestNewFoodService(t *testing.T) {
	cache := NewMockCacheRepository()
	client := NewMockUSDAClient()

	t.Run("creates service with default values", func(t *testing.T) {
		svc := NewFoodService(cache, client, FoodServiceConfig{})
		if svc == nil {
			t.Fatal("expected service to be created")
		}
		if svc.cacheTTL != 720*time.Hour {
			t.Errorf("cacheTTL = %v, want 720h", svc.cacheTTL)
		}
	})

	t.Run("creates service with custom values", func(t *testing.T) {
		svc := NewFoodService(cache, client, FoodServiceConfig{CacheTTL: 24 * time.Hour})
		if svc.cacheTTL != 24*time.Hour {
			t.Errorf("cacheTTL = %v, want 24h", svc.cacheTTL)
		}
	})
}

func TestGetFood(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches, maps and caches on a miss", func(t *testing.T) {
		cache := NewMockCacheRepository()
		client := NewMockUSDAClient()
		client.foodResult = eggDetails()
		svc := NewFoodService(cache, client, FoodServiceConfig{CacheTTL: time.Hour})

		food, err := svc.GetFood(ctx, " 171287 ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if food.ID != "usda:171287" {
			t.Errorf("ID = %q, want usda:171287", food.ID)
		}
		if food.BaseServing.AmountGrams != 50 || food.BaseServing.Description != "1 large" {
			t.Errorf("BaseServing = %+v, want 1 large / 50g", food.BaseServing)
		}
		if food.Macros.Calories != 143*0.5 {
			t.Errorf("Calories = %v, want %v", food.Macros.Calories, 143*0.5)
		}
		if client.lastID != "171287" {
			t.Errorf("client called with %q, want trimmed id", client.lastID)
		}
		if !cache.setCalled || cache.lastTTL != time.Hour {
			t.Errorf("expected cache write with 1h TTL, got called=%v ttl=%v", cache.setCalled, cache.lastTTL)
		}
		if _, ok := cache.data["food:171287"]; !ok {
			t.Error("expected entry under food:171287")
		}
	})

	t.Run("serves from cache without calling USDA", func(t *testing.T) {
		cache := NewMockCacheRepository()
		client := NewMockUSDAClient()
		cached := domain.FoodRecord{
			ID:          "usda:42",
			Name:        "Cached",
			BaseServing: domain.BaseServing{Unit: "g", AmountGrams: 100, Description: "100g"},
		}
		raw, _ := json.Marshal(cached)
		cache.data["food:42"] = raw
		svc := NewFoodService(cache, client, FoodServiceConfig{})

		food, err := svc.GetFood(ctx, "42")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if food.Name != "Cached" {
			t.Errorf("Name = %q, want Cached", food.Name)
		}
		if client.calls != 0 {
			t.Errorf("USDA called %d times, want 0", client.calls)
		}
	})

	t.Run("drops undecodable cache entries", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.data["food:171287"] = []byte("{not json")
		client := NewMockUSDAClient()
		client.foodResult = eggDetails()
		svc := NewFoodService(cache, client, FoodServiceConfig{})

		if _, err := svc.GetFood(ctx, "171287"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if client.calls != 1 {
			t.Errorf("USDA called %d times, want 1", client.calls)
		}
		var stored domain.FoodRecord
		if err := json.Unmarshal(cache.data["food:171287"], &stored); err != nil {
			t.Errorf("cache entry not replaced: %v", err)
		}
	})

	t.Run("cache write failure is not fatal", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.setError = errors.New("cache full")
		client := NewMockUSDAClient()
		client.foodResult = eggDetails()
		svc := NewFoodService(cache, client, FoodServiceConfig{})

		if _, err := svc.GetFood(ctx, "171287"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("works without a cache", func(t *testing.T) {
		client := NewMockUSDAClient()
		client.foodResult = eggDetails()
		svc := NewFoodService(nil, client, FoodServiceConfig{})

		if _, err := svc.GetFood(ctx, "171287"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestGetFood_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		fdcID      string
		clientErr  error
		wantErr    error
		wantCalled bool
	}{
		{name: "empty id", fdcID: "", wantErr: domain.ErrInvalidRequest},
		{name: "non-numeric id", fdcID: "abc", wantErr: domain.ErrInvalidRequest},
		{name: "zero id", fdcID: "0", wantErr: domain.ErrInvalidRequest},
		{name: "negative id", fdcID: "-5", wantErr: domain.ErrInvalidRequest},
		{name: "not found", fdcID: "1", clientErr: domain.ErrProductNotFound, wantErr: domain.ErrProductNotFound, wantCalled: true},
		{name: "rate limited", fdcID: "1", clientErr: fmt.Errorf("%w: slow down", domain.ErrRateLimited), wantErr: domain.ErrRateLimited, wantCalled: true},
		{name: "api failure", fdcID: "1", clientErr: fmt.Errorf("%w: status 500", domain.ErrUSDAAPIFailure), wantErr: domain.ErrUSDAAPIFailure, wantCalled: true},
		{name: "other error is wrapped", fdcID: "1", clientErr: errors.New("decode failed"), wantErr: domain.ErrUSDAAPIFailure, wantCalled: true},
		{name: "nil payload", fdcID: "1", wantErr: domain.ErrProductNotFound, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewMockUSDAClient()
			client.foodError = tt.clientErr
			svc := NewFoodService(NewMockCacheRepository(), client, FoodServiceConfig{})

			food, err := svc.GetFood(ctx, tt.fdcID)
			if food != nil {
				t.Errorf("expected nil food, got %+v", food)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if (client.calls > 0) != tt.wantCalled {
				t.Errorf("USDA called = %v, want %v", client.calls > 0, tt.wantCalled)
			}
		})
	}
}

func TestMapFoodDetails(t *testing.T) {
	if _, err := MapFoodDetails(nil, time.Now()); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Errorf("nil payload error = %v, want %v", err, domain.ErrInvalidRequest)
	}

	food, err := MapFoodDetails(eggDetails(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(food.ServingOptions) != 1 || food.ServingOptions[0].Label != "1 extra large" {
		t.Errorf("ServingOptions = %+v, want [1 extra large]", food.ServingOptions)
	}
}

func TestGenerateCacheKey(t *testing.T) {
	if got := generateCacheKey("171287"); got != "food:171287" {
		t.Errorf("generateCacheKey() = %q, want food:171287", got)
	}
}
