package api

import (
	"github.com/Conceptual-Machines/harmony-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/harmony-api/internal/api/middleware"
	"github.com/Conceptual-Machines/harmony-api/internal/config"
	"github.com/Conceptual-Machines/harmony-api/internal/metrics"
	"github.com/Conceptual-Machines/harmony-api/internal/services"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, service *services.RecommendationService, cw *metrics.Client, version string) *gin.Engine {
	if service == nil {
		service = services.NewRecommendationService()
	}

	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(cw))

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.AllowedOrigins))

	// Health check
	healthHandler := handlers.NewHealthHandler(service.Transitions())
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, service.Transitions())
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Harmony endpoints (rate limited)
	recommendationHandler := handlers.NewRecommendationHandler(service, cw)
	harmony := router.Group("/")
	harmony.Use(apimiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	{
		harmony.POST("/recommendations", recommendationHandler.Recommend)
		harmony.POST("/progressions/analyze", recommendationHandler.Analyze)
	}

	return router
}
