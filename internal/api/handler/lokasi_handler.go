package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"mini-mcu/internal/dto"
	"mini-mcu/internal/service"
	"mini-mcu/pkg/response"
)

// LokasiHandler manages the site directory.
type LokasiHandler struct {
	lokasiSvc service.LokasiService
}

// NewLokasiHandler creates a LokasiHandler.
func NewLokasiHandler(lokasiSvc service.LokasiService) *LokasiHandler {
	return &LokasiHandler{lokasiSvc: lokasiSvc}
}

// ListLokasi
// GET /api/v1/lokasi
func (h *LokasiHandler) ListLokasi(c *gin.Context) {
	list, err := h.lokasiSvc.List(c.Request.Context())
	if err != nil {
		h.handleLokasiError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// CreateLokasi
// POST /api/v1/lokasi
func (h *LokasiHandler) CreateLokasi(c *gin.Context) {
	var req dto.CreateLokasiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	lokasi, err := h.lokasiSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleLokasiError(c, err)
		return
	}

	response.Created(c, lokasi)
}

// DeleteLokasi
// DELETE /api/v1/lokasi/:nama
func (h *LokasiHandler) DeleteLokasi(c *gin.Context) {
	if err := h.lokasiSvc.Delete(c.Request.Context(), c.Param("nama")); err != nil {
		h.handleLokasiError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *LokasiHandler) handleLokasiError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLokasiNotFound):
		response.NotFound(c, 25001, "lokasi not found")
	case errors.Is(err, service.ErrLokasiInvalid):
		response.BadRequest(c, 25002, "lokasi name is empty")
	default:
		response.InternalError(c)
	}
}
