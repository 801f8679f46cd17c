package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/foodlens/backend/internal/domain"
	"github.com/foodlens/backend/internal/pkg/logger"
	"github.com/foodlens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products *usecase.ProductService
	library  *usecase.LibraryService
	tracking *usecase.TrackingService
	profiles *usecase.ProfileService
	log      *logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	products *usecase.ProductService,
	library *usecase.LibraryService,
	tracking *usecase.TrackingService,
	profiles *usecase.ProfileService,
	log *logger.Logger,
) *Handler {
	return &Handler{
		products: products,
		library:  library,
		tracking: tracking,
		profiles: profiles,
		log:      log.With("component", "http"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "foodlens-backend",
		"version": "1.0.0",
	})
}

// GetProduct handles a barcode scan: the product with its health score and
// nutrient indicators. The scan is added to the history.
func (h *Handler) GetProduct(c *gin.Context) {
	report, err := h.products.GetProductReport(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetProducts looks up a comma separated list of barcodes
func (h *Handler) GetProducts(c *gin.Context) {
	var codes []string
	for _, code := range strings.Split(c.Query("codes"), ",") {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, code)
		}
	}

	products, err := h.products.LookupProducts(c.Request.Context(), codes)
	if err != nil {
		h.writeError(c, err)
		return
	}

	reports := make([]domain.ProductReport, 0, len(products))
	for _, product := range products {
		reports = append(reports, usecase.BuildProductReport(product))
	}
	c.JSON(http.StatusOK, gin.H{"products": reports})
}

// GetNutrition scales a product's nutrients to ?grams= or ?servings=
func (h *Handler) GetNutrition(c *gin.Context) {
	request, err := amountFromQuery(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	grams, err := usecase.ResolveAmount(*product, request)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":       product.Code,
		"amount":     grams,
		"nutrition":  usecase.CalculateNutritionForAmount(product.Nutriments, grams),
		"nutriments": usecase.ScaleNutrientTable(product.Nutriments, grams),
	})
}

func amountFromQuery(c *gin.Context) (domain.AmountRequest, error) {
	var request domain.AmountRequest
	if raw, ok := c.GetQuery("servings"); ok {
		request.UseServingSize = true
		if raw != "" {
			servings, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return request, domain.ErrInvalidAmount
			}
			request.Servings = servings
		}
		return request, nil
	}

	raw := c.DefaultQuery("grams", "100")
	grams, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return request, domain.ErrInvalidAmount
	}
	request.Grams = grams
	return request, nil
}

func (h *Handler) GetHistory(c *gin.Context) {
	items, err := h.library.History(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": items})
}

func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.library.ClearHistory(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetFavorites(c *gin.Context) {
	products, err := h.library.Favorites(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": products})
}

// ToggleFavorite adds the product to the favorites or removes it
func (h *Handler) ToggleFavorite(c *gin.Context) {
	ctx := c.Request.Context()
	product, err := h.products.GetProduct(ctx, c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	favorite, err := h.library.ToggleFavorite(ctx, *product)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": product.Code, "favorite": favorite})
}

func (h *Handler) GetFavoriteStatus(c *gin.Context) {
	code, err := usecase.NormalizeBarcode(c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	favorite, err := h.library.IsFavorite(c.Request.Context(), code)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code, "favorite": favorite})
}

func (h *Handler) GetComparisonStatus(c *gin.Context) {
	code, err := usecase.NormalizeBarcode(c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	queued, err := h.library.IsInComparison(c.Request.Context(), code)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code, "in_comparison": queued})
}

func (h *Handler) GetComparison(c *gin.Context) {
	reports, err := h.library.Comparison(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": reports})
}

func (h *Handler) AddToComparison(c *gin.Context) {
	ctx := c.Request.Context()
	product, err := h.products.GetProduct(ctx, c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.library.AddToComparison(ctx, *product); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, usecase.BuildProductReport(*product))
}

func (h *Handler) RemoveFromComparison(c *gin.Context) {
	code, err := usecase.NormalizeBarcode(c.Param("code"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.library.RemoveFromComparison(c.Request.Context(), code); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ClearComparison(c *gin.Context) {
	if err := h.library.ClearComparison(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.GetProfile(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveProfile replaces the stored profile and returns it with its calorie goals
func (h *Handler) SaveProfile(c *gin.Context) {
	var profile domain.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.writeError(c, domain.ErrInvalidRequest)
		return
	}

	saved, err := h.profiles.SaveProfile(c.Request.Context(), profile)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile": saved,
		"goals":   usecase.CalculateCalorieGoals(*saved),
	})
}

func (h *Handler) GetCalorieGoals(c *gin.Context) {
	goals, err := h.profiles.GetCalorieGoals(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

// GetDailyProgress compares ?date= (default today) with the calorie goals
func (h *Handler) GetDailyProgress(c *gin.Context) {
	date := c.DefaultQuery("date", h.tracking.Today())
	progress, err := h.profiles.GetDailyProgress(c.Request.Context(), date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

type trackFoodRequest struct {
	Code string `json:"code"`
	domain.AmountRequest
}

// TrackFood logs an amount of a product for today
func (h *Handler) TrackFood(c *gin.Context) {
	var request trackFoodRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.writeError(c, domain.ErrInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	product, err := h.products.GetProduct(ctx, request.Code)
	if err != nil {
		h.writeError(c, err)
		return
	}

	entry, err := h.tracking.AddTrackedFood(ctx, *product, request.AmountRequest)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetDailyTracking returns the entries and totals of :date, which may be "today"
func (h *Handler) GetDailyTracking(c *gin.Context) {
	var (
		tracking *domain.DailyCalorieTracking
		err      error
	)
	if date := c.Param("date"); date == "today" {
		tracking, err = h.tracking.GetTodayTracking(c.Request.Context())
	} else {
		tracking, err = h.tracking.GetDailyTracking(c.Request.Context(), date)
	}
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tracking)
}

func (h *Handler) RemoveTrackedFood(c *gin.Context) {
	if err := h.tracking.RemoveTrackedFood(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError maps domain errors to HTTP status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidProfile),
		errors.Is(err, domain.ErrInvalidServingSize):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrComparisonFull),
		errors.Is(err, domain.ErrAlreadyInComparison):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrFoodDatabaseFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
