package usecase

import (
	"context"

	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/pkg/logger"
)

const (
	DefaultMaxHistoryItems    = 20
	DefaultMaxComparisonItems = 3
)

// LibraryServiceConfig holds the size limits of the user's product lists
type LibraryServiceConfig struct {
	MaxComparisonItems int
}

// LibraryService manages the scan history, favorites and the comparison list
type LibraryService struct {
	history       domain.HistoryRepository
	favorites     domain.FavoriteRepository
	comparison    domain.ComparisonRepository
	log           *logger.Logger
	maxComparison int
}

// NewLibraryService creates a new library service with dependencies
func NewLibraryService(
	history domain.HistoryRepository,
	favorites domain.FavoriteRepository,
	comparison domain.ComparisonRepository,
	log *logger.Logger,
	config LibraryServiceConfig,
) *LibraryService {
	maxComparison := config.MaxComparisonItems
	if maxComparison <= 0 {
		maxComparison = DefaultMaxComparisonItems
	}
	return &LibraryService{
		history:       history,
		favorites:     favorites,
		comparison:    comparison,
		log:           log.With("service", "LibraryService"),
		maxComparison: maxComparison,
	}
}

func (s *LibraryService) History(ctx context.Context) ([]domain.HistoryItem, error) {
	return s.history.List(ctx)
}

func (s *LibraryService) ClearHistory(ctx context.Context) error {
	return s.history.Clear(ctx)
}

// ToggleFavorite adds product to the favorites, or removes it if it is
// already there. It reports whether the product is a favorite afterwards.
func (s *LibraryService) ToggleFavorite(ctx context.Context, product domain.Product) (bool, error) {
	favorite, err := s.favorites.Toggle(ctx, product)
	if err != nil {
		return false, err
	}
	s.log.Debug("favorite toggled", "code", product.Code, "favorite", favorite)
	return favorite, nil
}

func (s *LibraryService) IsFavorite(ctx context.Context, code string) (bool, error) {
	return s.favorites.Exists(ctx, code)
}

func (s *LibraryService) Favorites(ctx context.Context) ([]domain.Product, error) {
	return s.favorites.List(ctx)
}

// AddToComparison queues product for comparison. The list holds a limited
// number of distinct products.
func (s *LibraryService) AddToComparison(ctx context.Context, product domain.Product) error {
	return s.comparison.AddWithLimit(ctx, product, s.maxComparison)
}

func (s *LibraryService) RemoveFromComparison(ctx context.Context, code string) error {
	return s.comparison.Remove(ctx, code)
}

func (s *LibraryService) ClearComparison(ctx context.Context) error {
	return s.comparison.Clear(ctx)
}

func (s *LibraryService) IsInComparison(ctx context.Context, code string) (bool, error) {
	return s.comparison.Exists(ctx, code)
}

// Comparison returns the queued products with their scores, in insertion order
func (s *LibraryService) Comparison(ctx context.Context) ([]domain.ProductReport, error) {
	products, err := s.comparison.List(ctx)
	if err != nil {
		return nil, err
	}
	reports := make([]domain.ProductReport, 0, len(products))
	for _, product := range products {
		reports = append(reports, BuildProductReport(product))
	}
	return reports, nil
}
