package domain

import "errors"

var (
	// ErrProductNotFound is returned when a food cannot be found in USDA database
	ErrProductNotFound = errors.New("food not found in USDA database")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrUSDAAPIFailure is returned when USDA API request fails
	ErrUSDAAPIFailure = errors.New("USDA API request failed")

	// ErrInvalidFoodRecord is returned when a food record breaks its invariants
	ErrInvalidFoodRecord = errors.New("invalid food record")
)
