package domain

import "errors"

var (
	// ErrProductNotFound is returned when a barcode is unknown to the food database
	ErrProductNotFound = errors.New("product not found")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrFoodDatabaseFailure is returned when the food database request fails
	ErrFoodDatabaseFailure = errors.New("food database request failed")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile")

	ErrEntryNotFound      = errors.New("tracked food entry not found")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidServingSize = errors.New("could not parse serving size")

	ErrComparisonFull      = errors.New("comparison list is full")
	ErrAlreadyInComparison = errors.New("product already in comparison")
)
