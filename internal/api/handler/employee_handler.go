package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"mini-mcu/internal/dto"
	"mini-mcu/internal/service"
	"mini-mcu/pkg/response"
)

// EmployeeHandler serves the employee directory and its checkups.
type EmployeeHandler struct {
	employeeSvc service.EmployeeService
	checkupSvc  service.CheckupService
}

// NewEmployeeHandler creates an EmployeeHandler.
func NewEmployeeHandler(employeeSvc service.EmployeeService, checkupSvc service.CheckupService) *EmployeeHandler {
	return &EmployeeHandler{employeeSvc: employeeSvc, checkupSvc: checkupSvc}
}

// ListEmployees lists employees, optionally for one lokasi.
// GET /api/v1/employees?lokasi=
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	var req dto.EmployeeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	list, err := h.employeeSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetEmployee returns one master record.
// GET /api/v1/employees/:uid
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	emp, err := h.employeeSvc.Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, emp)
}

// UpdateEmployee applies a manual master edit.
// PATCH /api/v1/employees/:uid
func (h *EmployeeHandler) UpdateEmployee(c *gin.Context) {
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	res, err := h.employeeSvc.Update(c.Request.Context(), c.Param("uid"), &req, caller)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, res)
}

// ListCheckups returns the checkup history of an employee, newest first.
// GET /api/v1/employees/:uid/checkups
func (h *EmployeeHandler) ListCheckups(c *gin.Context) {
	uid := c.Param("uid")
	if c.Query("latest") == "true" {
		latest, err := h.checkupSvc.Latest(c.Request.Context(), uid)
		if err != nil {
			h.handleEmployeeError(c, err)
			return
		}
		response.OK(c, latest)
		return
	}

	history, err := h.checkupSvc.History(c.Request.Context(), uid)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.OK(c, gin.H{"list": history})
}

// CreateCheckup records a single manual checkup.
// POST /api/v1/employees/:uid/checkups
func (h *EmployeeHandler) CreateCheckup(c *gin.Context) {
	var req dto.CreateCheckupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "validation failed")
		return
	}

	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	res, err := h.checkupSvc.CreateManual(c.Request.Context(), c.Param("uid"), &req, caller)
	if err != nil {
		h.handleEmployeeError(c, err)
		return
	}

	response.Created(c, res)
}

func (h *EmployeeHandler) handleEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 22001, "employee not found")
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		response.BadRequest(c, 22002, "no fields to update")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 22003, "invalid date")
	case errors.Is(err, service.ErrInvalidAge):
		response.BadRequest(c, 22004, "invalid age")
	case errors.Is(err, service.ErrInvalidDerajat):
		response.BadRequest(c, 22005, "derajat_kesehatan must be P1..P7")
	case errors.Is(err, service.ErrCheckupNotFound):
		response.NotFound(c, 23001, "no checkups recorded")
	default:
		response.InternalError(c)
	}
}
