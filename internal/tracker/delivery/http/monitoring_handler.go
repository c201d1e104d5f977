package http

import (
	"net/http"
	"strconv"

	"signal-outcome-tracker/internal/tracker/service"
	"signal-outcome-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MonitoringHandler handles HTTP requests for system monitoring records.
type MonitoringHandler struct {
	monitoringService service.MonitoringService
	logger            *logger.Logger
}

// NewMonitoringHandler creates a new MonitoringHandler.
func NewMonitoringHandler(monitoringService service.MonitoringService, logger *logger.Logger) *MonitoringHandler {
	return &MonitoringHandler{monitoringService: monitoringService, logger: logger}
}

// RegisterRoutes registers the monitoring routes to the Echo group.
func (h *MonitoringHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetRecentRecords)
}

// GetRecentRecords returns the newest monitoring records, optionally
// filtered by metric name.
func (h *MonitoringHandler) GetRecentRecords(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid limit"})
		}
		limit = n
	}

	records, err := h.monitoringService.RecentRecords(c.Request().Context(), c.QueryParam("metric"), limit)
	if err != nil {
		h.logger.Error("Failed to get monitoring records", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, records)
}
