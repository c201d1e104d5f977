package http

import (
	"net/http"
	"strconv"

	"signal-outcome-tracker/internal/tracker/dto"
	"signal-outcome-tracker/internal/tracker/service"
	"signal-outcome-tracker/pkg/logger"

	"github.com/labstack/echo/v4"
)

// WeightsHandler handles HTTP requests for weight history.
type WeightsHandler struct {
	weightService service.WeightHistoryService
	logger        *logger.Logger
}

// NewWeightsHandler creates a new WeightsHandler.
func NewWeightsHandler(weightService service.WeightHistoryService, logger *logger.Logger) *WeightsHandler {
	return &WeightsHandler{weightService: weightService, logger: logger}
}

// RegisterRoutes registers the weight history routes to the Echo group.
func (h *WeightsHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.RecordWeights)
	g.GET("", h.ListWeights)
	g.GET("/latest", h.GetLatestWeights)
}

// RecordWeights appends a new versioned weight snapshot.
func (h *WeightsHandler) RecordWeights(c echo.Context) error {
	var req dto.RecordWeightsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.SignalCount < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "signal_count must not be negative"})
	}

	resp, err := h.weightService.Record(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Failed to record weights", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, resp)
}

// ListWeights returns snapshots newest first, optionally limited.
func (h *WeightsHandler) ListWeights(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid limit"})
		}
		limit = n
	}

	responses, err := h.weightService.List(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list weight history", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, responses)
}

// GetLatestWeights returns the newest snapshot.
func (h *WeightsHandler) GetLatestWeights(c echo.Context) error {
	resp, err := h.weightService.Latest(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get latest weights", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	if resp == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No weight snapshot recorded yet"})
	}

	return c.JSON(http.StatusOK, resp)
}
