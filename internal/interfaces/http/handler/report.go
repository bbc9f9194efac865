package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/refresquitos/backend/internal/application/reporting"
)

// ReportHandler handles the derived financial and inventory report endpoints
type ReportHandler struct {
	BaseHandler
	service *reporting.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *reporting.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/financial-summary", h.GetFinancialSummary)
		reports.GET("/inventory", h.GetInventory)
		reports.GET("/ledger", h.GetLedger)
		reports.POST("/simulate-sale", h.SimulateSale)
	}
}

// GetFinancialSummary returns the full profit and loss breakdown
func (h *ReportHandler) GetFinancialSummary(c *gin.Context) {
	response, err := h.service.GetFinancialSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// GetInventory returns per-product and combined inventory status
func (h *ReportHandler) GetInventory(c *gin.Context) {
	response, err := h.service.GetInventory(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// GetLedger returns the batch consumption ledger, optionally for one product
func (h *ReportHandler) GetLedger(c *gin.Context) {
	response, err := h.service.GetLedger(c.Request.Context(), c.Query("product"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}

// SimulateSale previews the cost allocation of a hypothetical sale
func (h *ReportHandler) SimulateSale(c *gin.Context) {
	var req reporting.SimulateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	response, err := h.service.SimulateSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, response)
}
