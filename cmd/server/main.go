package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foodlens/backend/config"
	httpDelivery "github.com/foodlens/backend/internal/delivery/http"
	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/infrastructure/cache"
	"github.com/foodlens/backend/internal/infrastructure/openfoodfacts"
	"github.com/foodlens/backend/internal/infrastructure/storage"
	"github.com/foodlens/backend/internal/observability"
	"github.com/foodlens/backend/internal/pkg/logger"
	"github.com/foodlens/backend/internal/usecase"
)

const version = "1.0.0"

// closableCache is a product cache that holds resources
type closableCache interface {
	domain.CacheRepository
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logg.Sync()

	logg.Info("starting FoodLens backend",
		"version", version,
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"cache", cfg.Cache.Type,
		"storage", cfg.Storage.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
		Environment: cfg.Server.Environment,
		Version:     version,
	}, logg)
	if err != nil {
		logg.Fatal("failed to initialize tracing", "error", err)
	}

	productCache, err := newCache(ctx, cfg.Cache, logg)
	if err != nil {
		logg.Fatal("failed to initialize cache", "error", err)
	}
	defer productCache.Close()

	db, err := storage.Open(storage.Config{Driver: cfg.Storage.Driver, DSN: cfg.Storage.DSN}, logg)
	if err != nil {
		logg.Fatal("failed to open database", "error", err)
	}

	offClient := openfoodfacts.NewClient(openfoodfacts.ClientConfig{
		BaseURL:           cfg.OpenFoodFacts.BaseURL,
		UserAgent:         cfg.OpenFoodFacts.UserAgent,
		Timeout:           cfg.OpenFoodFacts.Timeout,
		RequestsPerSecond: cfg.OpenFoodFacts.RequestsPerSecond,
		Burst:             cfg.OpenFoodFacts.Burst,
	}, logg)
	if cfg.OpenFoodFacts.Debug || cfg.Server.Environment == "development" {
		offClient.SetDebug(true)
	}

	// Repositories
	history := storage.NewHistoryRepo(db, logg)
	favorites := storage.NewFavoriteRepo(db, logg)
	comparison := storage.NewComparisonRepo(db, logg)
	trackedFoods := storage.NewTrackedFoodRepo(db, logg)
	profiles := storage.NewProfileRepo(db, logg)

	// Usecases
	productService := usecase.NewProductService(productCache, offClient, history, logg, usecase.ProductServiceConfig{
		CacheTTL:        cfg.Cache.TTL,
		MaxHistoryItems: cfg.Library.MaxHistory,
	})
	libraryService := usecase.NewLibraryService(history, favorites, comparison, logg, usecase.LibraryServiceConfig{
		MaxComparisonItems: cfg.Library.MaxComparison,
	})
	trackingService := usecase.NewTrackingService(trackedFoods, logg)
	profileService := usecase.NewProfileService(profiles, trackingService, logg)

	handler := httpDelivery.NewHandler(productService, libraryService, trackingService, profileService, logg)
	router := httpDelivery.SetupRouter(cfg, handler, logg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server shutdown failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logg.Warn("tracing shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newCache(ctx context.Context, cfg config.CacheConfig, logg *logger.Logger) (closableCache, error) {
	switch cfg.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL, "foodlens:")
		if err != nil {
			return nil, err
		}
		logg.Info("using redis cache", "ttl", cfg.TTL)
		return redisCache, nil
	default:
		logg.Info("using in-memory cache", "ttl", cfg.TTL)
		return cache.NewMemoryCache(), nil
	}
}
