package http

import (
	"net/http"
	"strconv"
	"time"

	"signal-outcome-tracker/internal/tracker/dto"
	"signal-outcome-tracker/internal/tracker/service"
	"signal-outcome-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MetricsHandler handles HTTP requests for learning metrics.
type MetricsHandler struct {
	metricsService service.LearningMetricsService
	logger         *logger.Logger
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(metricsService service.LearningMetricsService, logger *logger.Logger) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService, logger: logger}
}

// RegisterRoutes registers the metrics routes to the Echo group.
func (h *MetricsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/learning", h.GetLearningMetrics)
	g.GET("/accuracy", h.GetAccuracySummary)
}

// GetLearningMetrics returns daily aggregates filtered by the query
// parameters from, to, symbol, direction, timeframe and limit.
func (h *MetricsHandler) GetLearningMetrics(c echo.Context) error {
	param := dto.GetLearningMetricsParam{
		Symbol:    c.QueryParam("symbol"),
		Direction: c.QueryParam("direction"),
		Timeframe: c.QueryParam("timeframe"),
	}

	if from := c.QueryParam("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
		}
		param.From = &t
	}
	if to := c.QueryParam("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
		}
		param.To = &t
	}
	if limit := c.QueryParam("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid limit"})
		}
		param.Limit = n
	}

	metrics, err := h.metricsService.GetMetrics(c.Request().Context(), param)
	if err != nil {
		h.logger.Error("Failed to get learning metrics", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, metrics)
}

// GetAccuracySummary returns the live per-horizon accuracy aggregate.
func (h *MetricsHandler) GetAccuracySummary(c echo.Context) error {
	summary, err := h.metricsService.GetAccuracySummary(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get accuracy summary", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, summary)
}
