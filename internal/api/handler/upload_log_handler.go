package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"mini-mcu/internal/dto"
	"mini-mcu/internal/service"
	"mini-mcu/pkg/response"
)

// UploadLogHandler lists and undoes upload batches.
type UploadLogHandler struct {
	logSvc service.UploadLogService
}

// NewUploadLogHandler creates an UploadLogHandler.
func NewUploadLogHandler(logSvc service.UploadLogService) *UploadLogHandler {
	return &UploadLogHandler{logSvc: logSvc}
}

// ListLogs lists stored upload logs, newest first.
// GET /api/v1/upload-logs?kind=master|checkups
func (h *UploadLogHandler) ListLogs(c *gin.Context) {
	kind := c.Query("kind")
	switch kind {
	case "", "master", "checkups":
	default:
		response.BadRequest(c, 10001, "kind must be master or checkups")
		return
	}

	list, err := h.logSvc.List(c.Request.Context(), kind)
	if err != nil {
		h.handleLogError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetLog returns one stored log.
// GET /api/v1/upload-logs/:name
func (h *UploadLogHandler) GetLog(c *gin.Context) {
	detail, err := h.logSvc.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.handleLogError(c, err)
		return
	}

	response.OK(c, detail)
}

// UndoLog deletes the checkups a batch inserted.
// DELETE /api/v1/upload-logs/:name
func (h *UploadLogHandler) UndoLog(c *gin.Context) {
	res, err := h.logSvc.Undo(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.handleLogError(c, err)
		return
	}

	response.OK(c, res)
}

// UndoLogs undoes several batches; failures are reported per name.
// POST /api/v1/upload-logs/undo
func (h *UploadLogHandler) UndoLogs(c *gin.Context) {
	var req dto.UndoUploadsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	results, err := h.logSvc.UndoMany(c.Request.Context(), req.Names)
	if err != nil {
		h.handleLogError(c, err)
		return
	}

	response.OK(c, gin.H{"list": results})
}

// PurgeLogs undoes every checkup batch.
// DELETE /api/v1/upload-logs
func (h *UploadLogHandler) PurgeLogs(c *gin.Context) {
	res, err := h.logSvc.PurgeCheckupLogs(c.Request.Context())
	if err != nil {
		h.handleLogError(c, err)
		return
	}

	response.OK(c, res)
}

func (h *UploadLogHandler) handleLogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUploadLogNotFound):
		response.NotFound(c, 21001, "upload log not found")
	case errors.Is(err, service.ErrUploadLogNotUndoable):
		response.Conflict(c, 21002, "only checkup uploads can be undone")
	case errors.Is(err, service.ErrInvalidLogName):
		response.BadRequest(c, 21003, "invalid log name")
	default:
		response.InternalError(c)
	}
}
