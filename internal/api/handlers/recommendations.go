package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Conceptual-Machines/harmony-api/internal/logger"
	"github.com/Conceptual-Machines/harmony-api/internal/metrics"
	"github.com/Conceptual-Machines/harmony-api/internal/models"
	"github.com/Conceptual-Machines/harmony-api/internal/services"
	"github.com/gin-gonic/gin"
)

type RecommendationHandler struct {
	service       *services.RecommendationService
	sentryMetrics *metrics.SentryMetrics
	cwMetrics     *metrics.Client
}

func NewRecommendationHandler(service *services.RecommendationService, cw *metrics.Client) *RecommendationHandler {
	if service == nil {
		service = services.NewRecommendationService()
	}
	return &RecommendationHandler{
		service:       service,
		sentryMetrics: metrics.NewSentryMetrics(),
		cwMetrics:     cw,
	}
}

// Recommend handles POST /recommendations
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	start := time.Now()

	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, endpointRecommendations, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), recommendationTimeoutSecs*time.Second)
	defer cancel()

	resp, err := h.service.Recommend(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequestShape) {
			badRequest(c, endpointRecommendations, err)
			return
		}
		internalError(c, endpointRecommendations, err)
		return
	}

	duration := time.Since(start)
	logger.LogRecommendation(ctx, resp.KeyGuess, resp.Confidence, len(resp.Recommendations), duration)
	h.sentryMetrics.RecordRecommendation(ctx, resp.KeyGuess, resp.Confidence, len(resp.Recommendations), resp.CurrentChordSource)
	h.cwMetrics.RecordRecommendation(resp.Confidence, len(resp.Recommendations), resp.CurrentChordSource)

	c.JSON(http.StatusOK, resp)
}

// Analyze handles POST /progressions/analyze
func (h *RecommendationHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, endpointAnalyze, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), recommendationTimeoutSecs*time.Second)
	defer cancel()

	resp, err := h.service.Analyze(ctx, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRequestShape) {
			badRequest(c, endpointAnalyze, err)
			return
		}
		internalError(c, endpointAnalyze, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func badRequest(c *gin.Context, endpoint string, err error) {
	fields := logger.WithContext(c)
	fields["endpoint"] = endpoint
	fields["error"] = err.Error()
	logger.Warn("Rejected request", fields)

	c.JSON(http.StatusBadRequest, gin.H{
		"error":      err.Error(),
		"request_id": c.GetString("request_id"),
	})
}

func internalError(c *gin.Context, endpoint string, err error) {
	fields := logger.WithContext(c)
	fields["endpoint"] = endpoint
	logger.Error("Request failed", err, fields)

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":      "Internal server error",
		"request_id": c.GetString("request_id"),
	})
}
