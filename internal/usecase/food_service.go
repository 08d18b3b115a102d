package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/macrolens/servings/internal/domain"
	"github.com/macrolens/servings/internal/infrastructure/usda"
)

var fdcIDPattern = regexp.MustCompile(`^[1-9][0-9]{0,17}$`)

// FoodServiceConfig holds configuration for the food service
type FoodServiceConfig struct {
	CacheTTL time.Duration
}

// FoodService looks up foods by FDC ID and maps them to canonical records, with caching
type FoodService struct {
	cache      domain.CacheRepository
	usdaClient domain.USDAClient
	cacheTTL   time.Duration
	now        func() time.Time
}

// NewFoodService creates a new food service with dependencies. cache may be nil.
func NewFoodService(
	cache domain.CacheRepository,
	usdaClient domain.USDAClient,
	config FoodServiceConfig,
) *FoodService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 720 * time.Hour // Default 30 days
	}

	return &FoodService{
		cache:      cache,
		usdaClient: usdaClient,
		cacheTTL:   cacheTTL,
		now:        time.Now,
	}
}

// GetFood returns the canonical record for an FDC ID.
// Flow: check cache -> fetch USDA details -> map -> cache -> return
func (s *FoodService) GetFood(ctx context.Context, fdcID string) (*domain.FoodRecord, error) {
	fdcID = strings.TrimSpace(fdcID)
	if !fdcIDPattern.MatchString(fdcID) {
		return nil, fmt.Errorf("%w: fdcId must be a positive integer, got %q", domain.ErrInvalidRequest, fdcID)
	}

	cacheKey := generateCacheKey(fdcID)
	if food, err := s.getFromCache(ctx, cacheKey); err == nil {
		return food, nil
	}

	details, err := s.usdaClient.GetFoodDetails(ctx, fdcID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) ||
			errors.Is(err, domain.ErrRateLimited) ||
			errors.Is(err, domain.ErrUSDAAPIFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUSDAAPIFailure, err)
	}
	if details == nil {
		return nil, domain.ErrProductNotFound
	}

	food, err := MapFoodDetails(details, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.setInCache(ctx, cacheKey, food); err != nil {
		log.Printf("[FoodService] cache write failed for %s: %v", cacheKey, err)
	}
	return food, nil
}

// MapFoodDetails maps a decoded USDA payload and checks the record invariants
func MapFoodDetails(details *domain.USDAFoodDetails, fetchedAt time.Time) (*domain.FoodRecord, error) {
	if details == nil {
		return nil, fmt.Errorf("%w: empty food payload", domain.ErrInvalidRequest)
	}
	food := usda.MapFoodDetails(details, fetchedAt)
	if err := food.Validate(); err != nil {
		return nil, err
	}
	return food, nil
}

// generateCacheKey creates the cache key for a food. Format: "food:{fdcId}"
func generateCacheKey(fdcID string) string {
	return fmt.Sprintf("food:%s", fdcID)
}

// getFromCache retrieves a food record from cache
func (s *FoodService) getFromCache(ctx context.Context, key string) (*domain.FoodRecord, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var food domain.FoodRecord
	if err := json.Unmarshal(raw, &food); err != nil {
		log.Printf("[FoodService] dropping undecodable cache entry %s: %v", key, err)
		_ = s.cache.Delete(ctx, key)
		return nil, domain.ErrCacheMiss
	}
	if err := food.Validate(); err != nil {
		return nil, domain.ErrCacheMiss
	}
	return &food, nil
}

// setInCache stores a food record in cache
func (s *FoodService) setInCache(ctx context.Context, key string, food *domain.FoodRecord) error {
	if s.cache == nil {
		return nil
	}
	raw, err := json.Marshal(food)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, raw, s.cacheTTL)
}
