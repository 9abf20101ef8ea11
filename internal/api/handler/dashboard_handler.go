package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"mini-mcu/internal/dto"
	"mini-mcu/internal/service"
	"mini-mcu/pkg/response"
)

// DashboardHandler serves the aggregate views.
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Summary counts Well and Unwell checkups per month and lokasi.
// GET /api/v1/dashboard/summary?month=YYYY-MM&lokasi=
func (h *DashboardHandler) Summary(c *gin.Context) {
	var req dto.WellUnwellRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 24001, "month must be YYYY-MM")
		return
	}

	rows, err := h.dashboardSvc.WellUnwell(c.Request.Context(), &req)
	if err != nil {
		h.handleDashboardError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

// MCUExpiry lists expired and soon to expire MCUs.
// GET /api/v1/dashboard/mcu-expiry?window_days=
func (h *DashboardHandler) MCUExpiry(c *gin.Context) {
	var req dto.MCUExpiryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "window_days must be between 1 and 365")
		return
	}

	resp, err := h.dashboardSvc.MCUExpiry(c.Request.Context(), req.WindowDays)
	if err != nil {
		h.handleDashboardError(c, err)
		return
	}

	response.OK(c, resp)
}

func (h *DashboardHandler) handleDashboardError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidMonth):
		response.BadRequest(c, 24001, "month must be YYYY-MM")
	default:
		response.InternalError(c)
	}
}
