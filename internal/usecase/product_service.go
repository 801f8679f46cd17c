package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/pkg/logger"
)

// barcodeRegex accepts EAN/UPC style numeric barcodes
var barcodeRegex = regexp.MustCompile(`^[0-9]{4,20}$`)

// maxBatchLookups bounds both the size of a batch and its concurrency
const maxBatchLookups = 10

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	CacheTTL        time.Duration
	MaxHistoryItems int
}

// ProductService looks products up by barcode with caching, and records every
// successful lookup in the scan history.
type ProductService struct {
	cache           domain.CacheRepository
	foodDB          domain.FoodDatabase
	history         domain.HistoryRepository
	log             *logger.Logger
	cacheTTL        time.Duration
	maxHistoryItems int
	now             func() time.Time
}

// NewProductService creates a new product service with dependencies
func NewProductService(
	cache domain.CacheRepository,
	foodDB domain.FoodDatabase,
	history domain.HistoryRepository,
	log *logger.Logger,
	config ProductServiceConfig,
) *ProductService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	maxHistory := config.MaxHistoryItems
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistoryItems
	}

	return &ProductService{
		cache:           cache,
		foodDB:          foodDB,
		history:         history,
		log:             log.With("service", "ProductService"),
		cacheTTL:        cacheTTL,
		maxHistoryItems: maxHistory,
		now:             time.Now,
	}
}

// LookupProduct returns the product for a scanned barcode and records the scan
// in the history.
func (s *ProductService) LookupProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}
	s.recordHistory(ctx, *product)
	return product, nil
}

// GetProduct returns the product for barcode without touching the history.
// Flow: validate -> check cache -> query food database -> cache
func (s *ProductService) GetProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	code, err := NormalizeBarcode(barcode)
	if err != nil {
		return nil, err
	}

	cacheKey := productCacheKey(code)

	var cached domain.Product
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		s.log.Warn("cache read failed", "key", cacheKey, "error", err)
	}

	product, err := s.foodDB.GetProduct(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) ||
			errors.Is(err, domain.ErrRateLimited) ||
			errors.Is(err, domain.ErrFoodDatabaseFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrFoodDatabaseFailure, err)
	}

	// Caching is best effort
	if err := s.cache.Set(ctx, cacheKey, product, s.cacheTTL); err != nil {
		s.log.Warn("cache write failed", "key", cacheKey, "error", err)
	}
	return product, nil
}

// LookupProducts looks up several barcodes concurrently, preserving their order.
// The first failure cancels the remaining lookups.
func (s *ProductService) LookupProducts(ctx context.Context, barcodes []string) ([]domain.Product, error) {
	if len(barcodes) == 0 || len(barcodes) > maxBatchLookups {
		return nil, fmt.Errorf("%w: between 1 and %d barcodes required", domain.ErrInvalidRequest, maxBatchLookups)
	}

	products := make([]domain.Product, len(barcodes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBatchLookups)

	for i, barcode := range barcodes {
		i, barcode := i, barcode
		g.Go(func() error {
			product, err := s.LookupProduct(gctx, barcode)
			if err != nil {
				return fmt.Errorf("barcode %s: %w", barcode, err)
			}
			products[i] = *product
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductReport looks a product up and scores it
func (s *ProductService) GetProductReport(ctx context.Context, barcode string) (*domain.ProductReport, error) {
	product, err := s.LookupProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}
	report := BuildProductReport(*product)
	return &report, nil
}

// BuildProductReport scores an already fetched product
func BuildProductReport(product domain.Product) domain.ProductReport {
	return domain.ProductReport{
		Product:     product,
		HealthScore: CalculateHealthScore(product.Nutriments),
		Indicators:  BuildNutrientIndicators(product.Nutriments),
	}
}

func (s *ProductService) recordHistory(ctx context.Context, product domain.Product) {
	item := domain.HistoryItem{Product: product, ScannedAt: s.now()}
	if err := s.history.Add(ctx, item, s.maxHistoryItems); err != nil {
		s.log.Warn("failed to record history", "code", product.Code, "error", err)
	}
}

// NormalizeBarcode trims a scanned or typed barcode and checks it is numeric
func NormalizeBarcode(barcode string) (string, error) {
	code := strings.TrimSpace(barcode)
	if !barcodeRegex.MatchString(code) {
		return "", fmt.Errorf("%w: invalid barcode %q", domain.ErrInvalidRequest, barcode)
	}
	return code, nil
}

// productCacheKey creates the cache key for a product. Format: "product:{barcode}"
func productCacheKey(code string) string {
	return "product:" + code
}
