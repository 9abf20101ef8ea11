package handler

import (
	"github.com/gin-gonic/gin"

	"mini-mcu/internal/dto"
	"mini-mcu/internal/service"
	"mini-mcu/pkg/response"
)

// MetricsHandler exposes the wellness classification.
type MetricsHandler struct {
	metricsSvc service.MetricsService
}

// NewMetricsHandler creates a MetricsHandler.
func NewMetricsHandler(metricsSvc service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsSvc: metricsSvc}
}

// Status classifies an ad hoc record.
// POST /api/v1/metrics/status
func (h *MetricsHandler) Status(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	response.OK(c, h.metricsSvc.Status(&req))
}
