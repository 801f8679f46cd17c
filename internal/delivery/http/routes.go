package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/foodlens/backend/config"
	"github.com/foodlens/backend/internal/observability"
	"github.com/foodlens/backend/internal/pkg/logger"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log *logger.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggerMiddleware(log))
	if cfg.Tracing.Enabled {
		router.Use(otelgin.Middleware(observability.ServiceName))
	}
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		products := v1.Group("/products")
		{
			products.GET("", handler.GetProducts)
			products.GET("/:code", handler.GetProduct)
			products.GET("/:code/nutrition", handler.GetNutrition)
		}

		history := v1.Group("/history")
		{
			history.GET("", handler.GetHistory)
			history.DELETE("", handler.ClearHistory)
		}

		favorites := v1.Group("/favorites")
		{
			favorites.GET("", handler.GetFavorites)
			favorites.GET("/:code", handler.GetFavoriteStatus)
			favorites.POST("/:code", handler.ToggleFavorite)
		}

		comparison := v1.Group("/comparison")
		{
			comparison.GET("", handler.GetComparison)
			comparison.DELETE("", handler.ClearComparison)
			comparison.GET("/:code", handler.GetComparisonStatus)
			comparison.POST("/:code", handler.AddToComparison)
			comparison.DELETE("/:code", handler.RemoveFromComparison)
		}

		profile := v1.Group("/profile")
		{
			profile.GET("", handler.GetProfile)
			profile.PUT("", handler.SaveProfile)
			profile.GET("/goals", handler.GetCalorieGoals)
			profile.GET("/progress", handler.GetDailyProgress)
		}

		tracking := v1.Group("/tracking")
		{
			tracking.POST("", handler.TrackFood)
			// "today" is accepted as a date
			tracking.GET("/:date", handler.GetDailyTracking)
			tracking.DELETE("/entries/:id", handler.RemoveTrackedFood)
		}
	}

	return router
}
