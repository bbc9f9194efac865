package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/refresquitos/backend/internal/domain/costing"
	"github.com/refresquitos/backend/internal/domain/shared"
	"github.com/refresquitos/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReportService derives financial and inventory reports by replaying the
// record history. Replay results are cached; the record service
// invalidates the cache on every mutation.
type ReportService struct {
	productionRepo costing.ProductionRecordRepository
	saleRepo       costing.SaleRecordRepository
	expenseRepo    costing.ExpenseRecordRepository
	reportCache    cache.ReportCache
	rules          costing.Rules
	logger         *zap.Logger
	now            func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	productionRepo costing.ProductionRecordRepository,
	saleRepo costing.SaleRecordRepository,
	expenseRepo costing.ExpenseRecordRepository,
	reportCache cache.ReportCache,
	rules costing.Rules,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		productionRepo: productionRepo,
		saleRepo:       saleRepo,
		expenseRepo:    expenseRepo,
		reportCache:    reportCache,
		rules:          rules,
		logger:         logger,
		now:            time.Now,
	}
}

// ===================== Financial Summary =====================

// FinancialSummaryResponse represents the financial summary in API responses
type FinancialSummaryResponse struct {
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	TotalCostOfGoodsSold  decimal.Decimal `json:"total_cost_of_goods_sold"`
	GrossProfit           decimal.Decimal `json:"gross_profit"`
	GrossProfitMargin     decimal.Decimal `json:"gross_profit_margin"`
	OperatingExpenses     decimal.Decimal `json:"operating_expenses"`
	NetProfit             decimal.Decimal `json:"net_profit"`
	NetProfitMargin       decimal.Decimal `json:"net_profit_margin"`
	Tithe                 decimal.Decimal `json:"tithe"`
	Savings               decimal.Decimal `json:"savings"`
	Available             decimal.Decimal `json:"available"`
	CurrentInventoryValue decimal.Decimal `json:"current_inventory_value"`
	AverageCostPerUnit    decimal.Decimal `json:"average_cost_per_unit"`
}

func toFinancialSummaryResponse(s costing.FinancialSummary) *FinancialSummaryResponse {
	return &FinancialSummaryResponse{
		TotalRevenue:          s.TotalRevenue,
		TotalCostOfGoodsSold:  s.TotalCostOfGoodsSold,
		GrossProfit:           s.GrossProfit,
		GrossProfitMargin:     s.GrossProfitMargin,
		OperatingExpenses:     s.OperatingExpenses,
		NetProfit:             s.NetProfit,
		NetProfitMargin:       s.NetProfitMargin,
		Tithe:                 s.Tithe,
		Savings:               s.Savings,
		Available:             s.Available,
		CurrentInventoryValue: s.CurrentInventoryValue,
		AverageCostPerUnit:    s.AverageCostPerUnit,
	}
}

// GetFinancialSummary computes the financial summary over the full record
// history, serving a cached copy when one is fresh.
func (s *ReportService) GetFinancialSummary(ctx context.Context) (*FinancialSummaryResponse, error) {
	var cached FinancialSummaryResponse
	if err := s.reportCache.Get(ctx, "financial-summary", &cached); err == nil {
		return &cached, nil
	}

	productions, sales, expenses, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}

	response := toFinancialSummaryResponse(costing.Summarize(productions, sales, expenses, s.rules))

	if err := s.reportCache.Set(ctx, "financial-summary", response); err != nil {
		s.logger.Warn("failed to cache financial summary", zap.Error(err))
	}
	return response, nil
}

// ===================== Inventory =====================

// BatchResponse represents one open inventory batch in API responses
type BatchResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductionDate    time.Time       `json:"production_date"`
	Product           string          `json:"product"`
	Quantity          int64           `json:"quantity"`
	RemainingQuantity int64           `json:"remaining_quantity"`
	CostPerUnit       decimal.Decimal `json:"cost_per_unit"`
	RemainingValue    decimal.Decimal `json:"remaining_value"`
}

// InventoryStatusResponse represents one product line's stock snapshot
type InventoryStatusResponse struct {
	TotalProduced          int64           `json:"total_produced"`
	TotalSold              int64           `json:"total_sold"`
	CurrentInventory       int64           `json:"current_inventory"`
	Batches                []BatchResponse `json:"batches"`
	TotalInventoryValue    decimal.Decimal `json:"total_inventory_value"`
	AverageCostInInventory decimal.Decimal `json:"average_cost_in_inventory"`
}

// InventoryReportResponse partitions stock per product line plus a combined view
type InventoryReportResponse struct {
	Products map[string]InventoryStatusResponse `json:"products"`
	Combined InventoryStatusResponse            `json:"combined"`
}

func toInventoryStatusResponse(status costing.InventoryStatus) InventoryStatusResponse {
	batches := make([]BatchResponse, len(status.Batches))
	for i, batch := range status.Batches {
		batches[i] = BatchResponse{
			ID:                batch.ID,
			ProductionDate:    batch.ProductionDate,
			Product:           batch.Product.String(),
			Quantity:          batch.Quantity,
			RemainingQuantity: batch.RemainingQuantity,
			CostPerUnit:       batch.CostPerUnit,
			RemainingValue:    batch.RemainingValue(),
		}
	}
	return InventoryStatusResponse{
		TotalProduced:          status.TotalProduced,
		TotalSold:              status.TotalSold,
		CurrentInventory:       status.CurrentInventory,
		Batches:                batches,
		TotalInventoryValue:    status.TotalInventoryValue,
		AverageCostInInventory: status.AverageCostInInventory,
	}
}

// GetInventory derives the per-product and combined stock snapshots
func (s *ReportService) GetInventory(ctx context.Context) (*InventoryReportResponse, error) {
	var cached InventoryReportResponse
	if err := s.reportCache.Get(ctx, "inventory", &cached); err == nil {
		return &cached, nil
	}

	productions, err := s.productionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	separate := costing.SeparateInventory(productions, sales, s.rules.Prices)

	products := make(map[string]InventoryStatusResponse, len(separate.PerProduct))
	for product, status := range separate.PerProduct {
		products[product.String()] = toInventoryStatusResponse(status)
	}
	response := &InventoryReportResponse{
		Products: products,
		Combined: toInventoryStatusResponse(separate.Combined),
	}

	if err := s.reportCache.Set(ctx, "inventory", response); err != nil {
		s.logger.Warn("failed to cache inventory report", zap.Error(err))
	}
	return response, nil
}

// ===================== Sales Ledger =====================

// BatchUsageResponse is one batch's contribution to a sale's cost
type BatchUsageResponse struct {
	BatchID           uuid.UUID       `json:"batch_id"`
	QuantityFromBatch int64           `json:"quantity_from_batch"`
	CostPerUnit       decimal.Decimal `json:"cost_per_unit"`
	SubtotalCost      decimal.Decimal `json:"subtotal_cost"`
}

// SaleAllocationResponse is the FIFO cost breakdown of one sale
type SaleAllocationResponse struct {
	SaleID            uuid.UUID            `json:"sale_id"`
	Date              time.Time            `json:"date"`
	QuantitySold      int64                `json:"quantity_sold"`
	TotalRevenue      decimal.Decimal      `json:"total_revenue"`
	TotalCost         decimal.Decimal      `json:"total_cost"`
	GrossProfit       decimal.Decimal      `json:"gross_profit"`
	GrossProfitMargin decimal.Decimal      `json:"gross_profit_margin"`
	Batches           []BatchUsageResponse `json:"batches"`
}

// LedgerResponse is the chronological replay of every sale
type LedgerResponse struct {
	Allocations      []SaleAllocationResponse `json:"allocations"`
	TotalCOGS        decimal.Decimal          `json:"total_cogs"`
	TotalGrossProfit decimal.Decimal          `json:"total_gross_profit"`
}

// GetLedger replays all sales of one product line (or all lines when the
// product is empty) and returns each sale's cost allocation.
func (s *ReportService) GetLedger(ctx context.Context, product string) (*LedgerResponse, error) {
	cacheKey := "ledger"
	if product != "" {
		if !costing.Product(product).IsValid() {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Unknown product line")
		}
		cacheKey = fmt.Sprintf("ledger:%s", product)
	}

	var cached LedgerResponse
	if err := s.reportCache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	productions, err := s.productionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if product != "" {
		parsed := costing.Product(product)
		productions = costing.FilterProductionsByProduct(productions, parsed)
		sales = costing.FilterSalesByProduct(sales, parsed)
	}

	result := costing.ProcessSales(productions, sales, s.rules.Prices)

	allocations := make([]SaleAllocationResponse, len(result.Allocations))
	for i, allocation := range result.Allocations {
		usages := make([]BatchUsageResponse, len(allocation.Batches))
		for j, usage := range allocation.Batches {
			usages[j] = BatchUsageResponse{
				BatchID:           usage.BatchID,
				QuantityFromBatch: usage.QuantityFromBatch,
				CostPerUnit:       usage.CostPerUnit,
				SubtotalCost:      usage.SubtotalCost,
			}
		}
		allocations[i] = SaleAllocationResponse{
			SaleID:            allocation.SaleID,
			Date:              allocation.Date,
			QuantitySold:      allocation.QuantitySold,
			TotalRevenue:      allocation.TotalRevenue,
			TotalCost:         allocation.TotalCost,
			GrossProfit:       allocation.GrossProfit,
			GrossProfitMargin: allocation.GrossProfitMargin,
			Batches:           usages,
		}
	}
	response := &LedgerResponse{
		Allocations:      allocations,
		TotalCOGS:        result.TotalCOGS,
		TotalGrossProfit: result.TotalGrossProfit,
	}

	if err := s.reportCache.Set(ctx, cacheKey, response); err != nil {
		s.logger.Warn("failed to cache sales ledger", zap.Error(err))
	}
	return response, nil
}

// ===================== Sale Simulation =====================

// SimulateSaleRequest represents a request to preview a hypothetical sale
type SimulateSaleRequest struct {
	Product  string `json:"product" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required"`
}

// SimulationResponse previews a hypothetical sale's profitability
type SimulationResponse struct {
	CanSell            bool            `json:"can_sell"`
	Revenue            decimal.Decimal `json:"revenue"`
	EstimatedCost      decimal.Decimal `json:"estimated_cost"`
	EstimatedProfit    decimal.Decimal `json:"estimated_profit"`
	ProfitMargin       decimal.Decimal `json:"profit_margin"`
	InventoryAfterSale int64           `json:"inventory_after_sale"`
}

// SimulateSale previews a hypothetical sale against current stock without
// recording anything. Simulations never hit the cache: they depend on the
// requested quantity, and the preview must reflect the live batch state.
func (s *ReportService) SimulateSale(ctx context.Context, req SimulateSaleRequest) (*SimulationResponse, error) {
	product := costing.Product(req.Product)
	if !product.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Unknown product line")
	}
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Simulation quantity must be positive")
	}

	productions, err := s.productionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	simulation := costing.SimulateSale(req.Quantity, product, productions, sales, s.rules.Prices, s.now())

	return &SimulationResponse{
		CanSell:            simulation.CanSell,
		Revenue:            simulation.Revenue,
		EstimatedCost:      simulation.EstimatedCost,
		EstimatedProfit:    simulation.EstimatedProfit,
		ProfitMargin:       simulation.ProfitMargin,
		InventoryAfterSale: simulation.InventoryAfterSale,
	}, nil
}

func (s *ReportService) loadRecords(ctx context.Context) ([]*costing.ProductionRecord, []*costing.SaleRecord, []*costing.ExpenseRecord, error) {
	productions, err := s.productionRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	expenses, err := s.expenseRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return productions, sales, expenses, nil
}
