package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mini-mcu/internal/ingest"
	"mini-mcu/internal/service"
	"mini-mcu/pkg/response"
)

// UploadHandler accepts master and checkup workbooks.
type UploadHandler struct {
	masterSvc  service.MasterUploadService
	checkupSvc service.CheckupUploadService
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(masterSvc service.MasterUploadService, checkupSvc service.CheckupUploadService) *UploadHandler {
	return &UploadHandler{masterSvc: masterSvc, checkupSvc: checkupSvc}
}

// UploadMaster reconciles a master workbook into the directory.
// POST /api/v1/uploads/master (multipart field "file")
func (h *UploadHandler) UploadMaster(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 20001, "missing upload file")
		return
	}
	defer file.Close()

	result, err := h.masterSvc.Upload(c.Request.Context(), service.UploadFile{
		Name:   header.Filename,
		Reader: file,
		Actor:  callerID,
	})
	if err != nil {
		h.handleUploadError(c, err)
		return
	}

	response.OK(c, result)
}

// UploadCheckups inserts the rows of a checkup workbook.
// POST /api/v1/uploads/checkups?variant=auto|standard|anthropometric
func (h *UploadHandler) UploadCheckups(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	variant, err := ingest.ParseVariant(c.DefaultQuery("variant", c.PostForm("variant")))
	if err != nil {
		h.handleUploadError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 20001, "missing upload file")
		return
	}
	defer file.Close()

	result, err := h.checkupSvc.Upload(c.Request.Context(), service.UploadFile{
		Name:   header.Filename,
		Reader: file,
		Actor:  callerID,
	}, variant)
	if err != nil {
		h.handleUploadError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *UploadHandler) handleUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ingest.ErrInvalidVariant):
		response.BadRequest(c, 20002, "variant must be auto, standard or anthropometric")
	case errors.Is(err, service.ErrWorkbookUnreadable):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, 20003, "file is not a readable xlsx workbook", err.Error())
	case errors.Is(err, service.ErrEmptyWorkbook):
		response.UnprocessableEntity(c, 20004, "workbook has no sheets")
	default:
		response.InternalError(c)
	}
}
