package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodlens/backend/config"
	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/infrastructure/cache"
	"github.com/foodlens/backend/internal/infrastructure/storage"
	"github.com/foodlens/backend/internal/pkg/logger"
	"github.com/foodlens/backend/internal/usecase"
)

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const (
	nutellaCode = "3017620422003"
	yogurtCode  = "3033490004743"
	unknownCode = "0000000000000"
)

var testProducts = map[string]domain.Product{
	nutellaCode: {
		Code:        nutellaCode,
		ProductName: "Nutella",
		Brands:      "Ferrero",
		ServingSize: "15 g",
		Nutriments: domain.NutrientTable{
			EnergyKcal:    domain.Value(539),
			Fat:           domain.Value(30.9),
			SaturatedFat:  domain.Value(10.6),
			Carbohydrates: domain.Value(57.5),
			Sugars:        domain.Value(56.3),
			Proteins:      domain.Value(6.3),
			Salt:          domain.Value(0.107),
		},
	},
	yogurtCode: {
		Code:        yogurtCode,
		ProductName: "Greek Yogurt",
		ServingSize: "125 g",
		Nutriments: domain.NutrientTable{
			EnergyKcal:    domain.Value(60),
			Fat:           domain.Value(0.2),
			SaturatedFat:  domain.Value(0.1),
			Carbohydrates: domain.Value(4),
			Sugars:        domain.Value(4),
			Proteins:      domain.Value(10.5),
			Salt:          domain.Value(0.1),
		},
	},
}

// fakeFoodDatabase serves testProducts and counts remote lookups
type fakeFoodDatabase struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeFoodDatabase) GetProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	product, ok := testProducts[barcode]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &product, nil
}

type testServer struct {
	router *gin.Engine
	foodDB *fakeFoodDatabase
}

// setupTestServer wires the real services over an in-memory sqlite database
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"exp://*", "http://localhost:8081"},
		},
		Cache:   config.CacheConfig{Type: "memory"},
		Library: config.LibraryConfig{MaxHistory: 20, MaxComparison: 2},
	}

	log := logger.NewNop()

	db, err := storage.Open(storage.Config{Driver: "sqlite", DSN: ":memory:"}, log)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	memCache := cache.NewMemoryCache()
	t.Cleanup(func() { _ = memCache.Close() })

	foodDB := &fakeFoodDatabase{}
	history := storage.NewHistoryRepo(db, log)

	products := usecase.NewProductService(memCache, foodDB, history, log, usecase.ProductServiceConfig{
		MaxHistoryItems: cfg.Library.MaxHistory,
	})
	library := usecase.NewLibraryService(history, storage.NewFavoriteRepo(db, log), storage.NewComparisonRepo(db, log), log,
		usecase.LibraryServiceConfig{MaxComparisonItems: cfg.Library.MaxComparison})
	tracking := usecase.NewTrackingService(storage.NewTrackedFoodRepo(db, log), log)
	profiles := usecase.NewProfileService(storage.NewProfileRepo(db, log), tracking, log)

	handler := NewHandler(products, library, tracking, profiles, log)
	return &testServer{router: SetupRouter(cfg, handler, log), foodDB: foodDB}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		srv := setupTestServer(t)

		w := srv.do(t, http.MethodGet, "/health", "")

		require.Equal(t, http.StatusOK, w.Code)
		response := decode[map[string]interface{}](t, w)
		assert.Equal(t, "healthy", response["status"])
		assert.Equal(t, "foodlens-backend", response["service"])
		assert.NotEmpty(t, response["version"])
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		srv := setupTestServer(t)

		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch} {
			w := srv.do(t, method, "/health", "")
			assert.Equal(t, http.StatusNotFound, w.Code, "method %s", method)
		}
	})
}

func TestProductEndpoint(t *testing.T) {
	t.Run("returns report and records history", func(t *testing.T) {
		srv := setupTestServer(t)

		w := srv.do(t, http.MethodGet, "/api/v1/products/"+nutellaCode, "")

		require.Equal(t, http.StatusOK, w.Code)
		report := decode[domain.ProductReport](t, w)
		assert.Equal(t, "Nutella", report.Product.ProductName)
		assert.Equal(t, 60, report.HealthScore.Score)
		assert.Equal(t, domain.GradeB, report.HealthScore.Grade)
		assert.Len(t, report.HealthScore.Warnings, 3)
		assert.Equal(t, "#EF4444", report.Indicators.Sugar)

		w = srv.do(t, http.MethodGet, "/api/v1/history", "")
		require.Equal(t, http.StatusOK, w.Code)
		history := decode[struct {
			History []domain.HistoryItem `json:"history"`
		}](t, w)
		require.Len(t, history.History, 1)
		assert.Equal(t, nutellaCode, history.History[0].Product.Code)
	})

	t.Run("second lookup is served from cache", func(t *testing.T) {
		srv := setupTestServer(t)

		srv.do(t, http.MethodGet, "/api/v1/products/"+nutellaCode, "")
		w := srv.do(t, http.MethodGet, "/api/v1/products/"+nutellaCode, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, srv.foodDB.calls)
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		srv := setupTestServer(t)

		w := srv.do(t, http.MethodGet, "/api/v1/products/"+unknownCode, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "product not found")
	})

	t.Run("malformed barcode is 400", func(t *testing.T) {
		srv := setupTestServer(t)

		w := srv.do(t, http.MethodGet, "/api/v1/products/abc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, srv.foodDB.calls)
	})

	t.Run("food database failure is 502", func(t *testing.T) {
		srv := setupTestServer(t)
		srv.foodDB.err = domain.ErrFoodDatabaseFailure

		w := srv.do(t, http.MethodGet, "/api/v1/products/"+nutellaCode, "")

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("upstream rate limit is 429", func(t *testing.T) {
		srv := setupTestServer(t)
		srv.foodDB.err = domain.ErrRateLimited

		w := srv.do(t, http.MethodGet, "/api/v1/products/"+nutellaCode, "")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestBatchProductsEndpoint(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.do(t, http.MethodGet, "/api/v1/products?codes="+yogurtCode+","+nutellaCode, "")

	require.Equal(t, http.StatusOK, w.Code)
	response := decode[struct {
		Products []domain.ProductReport `json:"products"`
	}](t, w)
	require.Len(t, response.Products, 2)
	assert.Equal(t, yogurtCode, response.Products[0].Product.Code)
	assert.Equal(t, nutellaCode, response.Products[1].Product.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/products", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNutritionEndpoint(t *testing.T) {
	srv := setupTestServer(t)

	type nutritionResponse struct {
		Amount    float64                `json:"amount"`
		Nutrition domain.ScaledNutrition `json:"nutrition"`
	}

	t.Run("scales by grams", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/v1/products/"+yogurtCode+"/nutrition?grams=200", "")

		require.Equal(t, http.StatusOK, w.Code)
		response := decode[nutritionResponse](t, w)
		assert.Equal(t, 200.0, response.Amount)
		assert.InDelta(t, 120, response.Nutrition.Calories, 1e-9)
		assert.InDelta(t, 21, response.Nutrition.Protein, 1e-9)
	})

	t.Run("scales by servings", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/v1/products/"+yogurtCode+"/nutrition?servings=2", "")

		require.Equal(t, http.StatusOK, w.Code)
		response := decode[nutritionResponse](t, w)
		assert.Equal(t, 250.0, response.Amount)
		assert.InDelta(t, 150, response.Nutrition.Calories, 1e-9)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/v1/products/"+yogurtCode+"/nutrition?grams=0", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("does not record history", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/v1/history", "")
		assert.JSONEq(t, `{"history":[]}`, w.Body.String())
	})
}

func TestFavoritesEndpoints(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/v1/favorites/"+nutellaCode, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":"`+nutellaCode+`","favorite":true}`, w.Body.String())

	w = srv.do(t, http.MethodGet, "/api/v1/favorites/"+nutellaCode, "")
	assert.JSONEq(t, `{"code":"`+nutellaCode+`","favorite":true}`, w.Body.String())

	w = srv.do(t, http.MethodGet, "/api/v1/favorites", "")
	favorites := decode[struct {
		Favorites []domain.Product `json:"favorites"`
	}](t, w)
	require.Len(t, favorites.Favorites, 1)
	assert.Equal(t, "Nutella", favorites.Favorites[0].ProductName)

	// Toggling again removes it
	w = srv.do(t, http.MethodPost, "/api/v1/favorites/"+nutellaCode, "")
	assert.JSONEq(t, `{"code":"`+nutellaCode+`","favorite":false}`, w.Body.String())

	w = srv.do(t, http.MethodGet, "/api/v1/favorites", "")
	assert.JSONEq(t, `{"favorites":[]}`, w.Body.String())
}

func TestComparisonEndpoints(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/v1/comparison/"+nutellaCode, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = srv.do(t, http.MethodPost, "/api/v1/comparison/"+nutellaCode, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/comparison/"+nutellaCode, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":"`+nutellaCode+`","in_comparison":true}`, w.Body.String())

	w = srv.do(t, http.MethodGet, "/api/v1/comparison/"+yogurtCode, "")
	assert.JSONEq(t, `{"code":"`+yogurtCode+`","in_comparison":false}`, w.Body.String())

	w = srv.do(t, http.MethodPost, "/api/v1/comparison/"+yogurtCode, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// Limit is 2 in this setup
	srv.do(t, http.MethodDelete, "/api/v1/comparison/"+nutellaCode, "")
	w = srv.do(t, http.MethodPost, "/api/v1/comparison/"+nutellaCode, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/comparison", "")
	require.Equal(t, http.StatusOK, w.Code)
	response := decode[struct {
		Products []domain.ProductReport `json:"products"`
	}](t, w)
	require.Len(t, response.Products, 2)
	assert.Equal(t, yogurtCode, response.Products[0].Product.Code)
	assert.Equal(t, nutellaCode, response.Products[1].Product.Code)
	assert.Equal(t, 100, response.Products[0].HealthScore.Score)

	w = srv.do(t, http.MethodDelete, "/api/v1/comparison", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/comparison", "")
	assert.JSONEq(t, `{"products":[]}`, w.Body.String())
}

func TestComparisonFull(t *testing.T) {
	srv := setupTestServer(t)

	srv.do(t, http.MethodPost, "/api/v1/comparison/"+nutellaCode, "")
	srv.do(t, http.MethodPost, "/api/v1/comparison/"+yogurtCode, "")

	testProducts["5449000000996"] = domain.Product{Code: "5449000000996", ProductName: "Cola"}
	defer delete(testProducts, "5449000000996")

	w := srv.do(t, http.MethodPost, "/api/v1/comparison/5449000000996", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "comparison list is full")
}

func TestProfileEndpoints(t *testing.T) {
	srv := setupTestServer(t)

	w := srv.do(t, http.MethodGet, "/api/v1/profile", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/profile/goals", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodPut, "/api/v1/profile",
		`{"name":"Sam","age":30,"height":170,"weight":70,"gender":"male","activityLevel":"moderate"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved := decode[struct {
		Profile domain.UserProfile  `json:"profile"`
		Goals   domain.CalorieGoals `json:"goals"`
	}](t, w)
	assert.Equal(t, "Sam", saved.Profile.Name)
	assert.Equal(t, domain.CalorieGoals{BMR: 1618, TDEE: 2507, Maintenance: 2507, WeightLoss: 2007, WeightGain: 3007}, saved.Goals)

	w = srv.do(t, http.MethodGet, "/api/v1/profile/goals", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, saved.Goals, decode[domain.CalorieGoals](t, w))

	t.Run("rejects invalid profile", func(t *testing.T) {
		w := srv.do(t, http.MethodPut, "/api/v1/profile",
			`{"name":"Sam","age":30,"height":170,"weight":70,"gender":"male","activityLevel":"couch"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		w := srv.do(t, http.MethodPut, "/api/v1/profile", `{"age":"thirty"`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTrackingEndpoints(t *testing.T) {
	srv := setupTestServer(t)

	srv.do(t, http.MethodPut, "/api/v1/profile",
		`{"name":"Sam","age":30,"height":170,"weight":70,"gender":"male","activityLevel":"moderate"}`)

	w := srv.do(t, http.MethodPost, "/api/v1/tracking",
		`{"code":"`+yogurtCode+`","servings":2,"useServingSize":true}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	entry := decode[domain.TrackedFoodEntry](t, w)
	assert.Equal(t, 250.0, entry.Amount)
	require.NotNil(t, entry.ServingSize)
	assert.NotEmpty(t, entry.ID)

	w = srv.do(t, http.MethodPost, "/api/v1/tracking", `{"code":"`+nutellaCode+`","grams":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/tracking/today", "")
	require.Equal(t, http.StatusOK, w.Code)
	today := decode[domain.DailyCalorieTracking](t, w)
	require.Len(t, today.Foods, 1)
	assert.InDelta(t, 150, today.TotalCalories, 1e-9)
	assert.Equal(t, entry.Date, today.Date)

	w = srv.do(t, http.MethodGet, "/api/v1/profile/progress", "")
	require.Equal(t, http.StatusOK, w.Code)
	progress := decode[domain.DailyProgress](t, w)
	assert.Equal(t, 2507-150, progress.RemainingCalories)

	w = srv.do(t, http.MethodGet, "/api/v1/tracking/1999-01-01", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[domain.DailyCalorieTracking](t, w).Foods)

	w = srv.do(t, http.MethodGet, "/api/v1/tracking/yesterday", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodDelete, "/api/v1/tracking/entries/"+entry.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = srv.do(t, http.MethodDelete, "/api/v1/tracking/entries/"+entry.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidRequest, http.StatusBadRequest},
		{domain.ErrInvalidServingSize, http.StatusBadRequest},
		{domain.ErrProfileNotFound, http.StatusNotFound},
		{domain.ErrEntryNotFound, http.StatusNotFound},
		{domain.ErrAlreadyInComparison, http.StatusConflict},
		{domain.ErrRateLimited, http.StatusTooManyRequests},
		{domain.ErrFoodDatabaseFailure, http.StatusBadGateway},
		{context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
