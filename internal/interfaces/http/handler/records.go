package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/refresquitos/backend/internal/application/records"
)

// RecordsHandler handles the CRUD endpoints for the four record ledgers
type RecordsHandler struct {
	BaseHandler
	service *records.RecordService
}

// NewRecordsHandler creates a new RecordsHandler
func NewRecordsHandler(service *records.RecordService) *RecordsHandler {
	return &RecordsHandler{service: service}
}

// RegisterRoutes registers the record routes
func (h *RecordsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	productions := rg.Group("/productions")
	{
		productions.POST("", h.CreateProduction)
		productions.GET("", h.ListProductions)
		productions.GET("/:id", h.GetProduction)
		productions.DELETE("/:id", h.DeleteProduction)
	}

	sales := rg.Group("/sales")
	{
		sales.POST("", h.CreateSale)
		sales.GET("", h.ListSales)
		sales.GET("/:id", h.GetSale)
		sales.DELETE("/:id", h.DeleteSale)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.CreateExpense)
		expenses.GET("", h.ListExpenses)
		expenses.GET("/:id", h.GetExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}

	absences := rg.Group("/absences")
	{
		absences.POST("", h.CreateAbsence)
		absences.GET("", h.ListAbsences)
		absences.DELETE("/:id", h.DeleteAbsence)
	}
}

func (h *RecordsHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// CreateProduction records a production run
func (h *RecordsHandler) CreateProduction(c *gin.Context) {
	var req records.CreateProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.service.CreateProduction(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// ListProductions returns all production records
func (h *RecordsHandler) ListProductions(c *gin.Context) {
	responses, err := h.service.ListProductions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// GetProduction returns one production record
func (h *RecordsHandler) GetProduction(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	response, err := h.service.GetProduction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// DeleteProduction removes a production record
func (h *RecordsHandler) DeleteProduction(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteProduction(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateSale records a sale
func (h *RecordsHandler) CreateSale(c *gin.Context) {
	var req records.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.service.CreateSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// ListSales returns all sale records, optionally filtered by employee
func (h *RecordsHandler) ListSales(c *gin.Context) {
	responses, err := h.service.ListSales(c.Request.Context(), c.Query("employee"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// GetSale returns one sale record
func (h *RecordsHandler) GetSale(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	response, err := h.service.GetSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// DeleteSale removes a sale record
func (h *RecordsHandler) DeleteSale(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteSale(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateExpense records an expense
func (h *RecordsHandler) CreateExpense(c *gin.Context) {
	var req records.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.service.CreateExpense(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// ListExpenses returns all expense records, optionally filtered by category
func (h *RecordsHandler) ListExpenses(c *gin.Context) {
	responses, err := h.service.ListExpenses(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// GetExpense returns one expense record
func (h *RecordsHandler) GetExpense(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	response, err := h.service.GetExpense(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// DeleteExpense removes an expense record
func (h *RecordsHandler) DeleteExpense(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteExpense(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateAbsence records an employee absence
func (h *RecordsHandler) CreateAbsence(c *gin.Context) {
	var req records.CreateAbsenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.service.CreateAbsence(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, response)
}

// ListAbsences returns all absence records, optionally filtered by employee
func (h *RecordsHandler) ListAbsences(c *gin.Context) {
	responses, err := h.service.ListAbsences(c.Request.Context(), c.Query("employee"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// DeleteAbsence removes an absence record
func (h *RecordsHandler) DeleteAbsence(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteAbsence(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
