package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	payrollapp "github.com/refresquitos/backend/internal/application/payroll"
)

// PayrollHandler handles the employee cycle and bonus endpoints
type PayrollHandler struct {
	BaseHandler
	service *payrollapp.PayrollService
}

// NewPayrollHandler creates a new PayrollHandler
func NewPayrollHandler(service *payrollapp.PayrollService) *PayrollHandler {
	return &PayrollHandler{service: service}
}

// RegisterRoutes registers the payroll routes
func (h *PayrollHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cycles := rg.Group("/cycles")
	{
		cycles.POST("", h.StartCycle)
		cycles.GET("", h.ListCycles)
		cycles.GET("/:employee", h.GetCycle)
		cycles.POST("/:employee/bonus", h.GenerateBonus)
		cycles.GET("/:employee/sales-history", h.GetSalesHistory)
	}

	bonuses := rg.Group("/bonuses")
	{
		bonuses.GET("", h.ListBonuses)
		bonuses.POST("/:id/pay", h.MarkBonusPaid)
	}
}

// StartCycle opens or re-anchors an employee's work cycle
func (h *PayrollHandler) StartCycle(c *gin.Context) {
	var req payrollapp.StartCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.service.StartCycle(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// ListCycles returns the evaluated cycle state for every employee with an
// open cycle.
func (h *PayrollHandler) ListCycles(c *gin.Context) {
	responses, err := h.service.ListCycleDetails(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// GetCycle returns one employee's evaluated cycle state
func (h *PayrollHandler) GetCycle(c *gin.Context) {
	response, err := h.service.GetCycleDetail(c.Request.Context(), c.Param("employee"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// GenerateBonus closes a completed eligible cycle and records its bonus
func (h *PayrollHandler) GenerateBonus(c *gin.Context) {
	result, err := h.service.GenerateBonus(c.Request.Context(), c.Param("employee"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if result.Created {
		h.Created(c, result)
		return
	}
	h.Success(c, result)
}

// GetSalesHistory returns an employee's sales sliced into fixed periods
func (h *PayrollHandler) GetSalesHistory(c *gin.Context) {
	responses, err := h.service.GetSalesHistory(c.Request.Context(), c.Param("employee"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// ListBonuses returns recorded bonuses, optionally scoped to one employee
func (h *PayrollHandler) ListBonuses(c *gin.Context) {
	responses, err := h.service.ListBonuses(c.Request.Context(), c.Query("employee"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// MarkBonusPaid flips a bonus to paid
func (h *PayrollHandler) MarkBonusPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ID format")
		return
	}

	response, err := h.service.MarkBonusPaid(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}
