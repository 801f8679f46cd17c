package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values round-trip through JSON, so Get decodes into dest.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// FoodDatabase looks products up by barcode
type FoodDatabase interface {
	GetProduct(ctx context.Context, barcode string) (*Product, error)
}

// ProfileRepository stores the single user profile
type ProfileRepository interface {
	Get(ctx context.Context) (*UserProfile, error)
	Save(ctx context.Context, profile *UserProfile) error
}

// TrackedFoodRepository stores tracked food entries
type TrackedFoodRepository interface {
	Create(ctx context.Context, entry *TrackedFoodEntry) error
	Delete(ctx context.Context, id string) error
	ListByDate(ctx context.Context, date string) ([]TrackedFoodEntry, error)
}

// HistoryRepository stores recently looked-up products, newest first
type HistoryRepository interface {
	Add(ctx context.Context, item HistoryItem, limit int) error
	List(ctx context.Context) ([]HistoryItem, error)
	Clear(ctx context.Context) error
}

// FavoriteRepository stores favorite products
type FavoriteRepository interface {
	// Toggle reports whether product is a favorite after the call
	Toggle(ctx context.Context, product Product) (bool, error)
	Exists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]Product, error)
}

// ComparisonRepository stores the products queued for side-by-side comparison
type ComparisonRepository interface {
	// AddWithLimit fails with ErrAlreadyInComparison or ErrComparisonFull
	AddWithLimit(ctx context.Context, product Product, limit int) error
	Remove(ctx context.Context, code string) error
	Exists(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]Product, error)
	Clear(ctx context.Context) error
}
