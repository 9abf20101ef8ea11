package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"mini-mcu/internal/service"
	"mini-mcu/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TemplateHandler serves downloadable upload templates.
type TemplateHandler struct {
	templateSvc service.TemplateService
}

// NewTemplateHandler creates a TemplateHandler.
func NewTemplateHandler(templateSvc service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateSvc: templateSvc}
}

// CheckupTemplate downloads a checkup workbook prefilled with employees.
// GET /api/v1/templates/checkup?lokasi=
func (h *TemplateHandler) CheckupTemplate(c *gin.Context) {
	buf, filename, err := h.templateSvc.CheckupTemplate(c.Request.Context(), c.Query("lokasi"))
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
