package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/pkg/logger"
)

// TrackingService logs eaten foods and aggregates them per day
type TrackingService struct {
	entries domain.TrackedFoodRepository
	log     *logger.Logger
	now     func() time.Time
	newID   func() string
}

// NewTrackingService creates a new tracking service with dependencies
func NewTrackingService(entries domain.TrackedFoodRepository, log *logger.Logger) *TrackingService {
	return &TrackingService{
		entries: entries,
		log:     log.With("service", "TrackingService"),
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// AddTrackedFood logs an amount of product for today. The entry keeps a snapshot
// of the product's nutrients so later product updates do not change it.
func (s *TrackingService) AddTrackedFood(
	ctx context.Context,
	product domain.Product,
	request domain.AmountRequest,
) (*domain.TrackedFoodEntry, error) {
	grams, err := ResolveAmount(product, request)
	if err != nil {
		return nil, err
	}

	now := s.now()
	entry := &domain.TrackedFoodEntry{
		ID: s.newID(),
		Product: domain.ProductSnapshot{
			Code:        product.Code,
			ProductName: product.ProductName,
			ImageURL:    product.ImageURL,
			Nutriments:  product.Nutriments,
		},
		Amount:    grams,
		Date:      now.Format(domain.DateLayout),
		CreatedAt: now,
	}
	if request.UseServingSize {
		entry.ServingSize = domain.Value(grams)
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	s.log.Info("food tracked", "code", product.Code, "grams", grams, "date", entry.Date)
	return entry, nil
}

func (s *TrackingService) RemoveTrackedFood(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidRequest
	}
	return s.entries.Delete(ctx, id)
}

// GetDailyTracking aggregates the entries logged on date (YYYY-MM-DD)
func (s *TrackingService) GetDailyTracking(ctx context.Context, date string) (*domain.DailyCalorieTracking, error) {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidRequest)
	}
	entries, err := s.entries.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	tracking := AggregateDailyTracking(entries, date)
	return &tracking, nil
}

func (s *TrackingService) GetTodayTracking(ctx context.Context) (*domain.DailyCalorieTracking, error) {
	return s.GetDailyTracking(ctx, s.Today())
}

// Today returns the current calendar day in the service's clock
func (s *TrackingService) Today() string {
	return s.now().Format(domain.DateLayout)
}
