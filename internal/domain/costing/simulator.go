package costing

import (
	"time"

	"github.com/refresquitos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleSimulation previews the profitability of a hypothetical sale
// without mutating any real state
type SaleSimulation struct {
	CanSell            bool
	Revenue            decimal.Decimal
	EstimatedCost      decimal.Decimal
	EstimatedProfit    decimal.Decimal
	ProfitMargin       decimal.Decimal
	InventoryAfterSale int64
}

// SimulateSale runs the FIFO allocator against the current stock of one
// product line with a synthetic sale of the requested quantity. CanSell
// compares the request against current inventory; the allocation itself
// still prices whatever stock is available. InventoryAfterSale goes
// negative on oversell, signalling the shortfall.
func SimulateSale(
	quantity int64,
	product Product,
	productions []*ProductionRecord,
	sales []*SaleRecord,
	prices PriceList,
	now time.Time,
) SaleSimulation {
	status := ProductInventoryStatus(product, productions, sales, prices)
	canSell := quantity <= status.CurrentInventory

	revenue := prices.PriceFor(product).Mul(decimal.NewFromInt(quantity))

	synthetic := &SaleRecord{
		BaseEntity: shared.NewBaseEntity(),
		Date:       now,
		Product:    product,
		Quantity:   quantity,
		Amount:     revenue,
		Channel:    ChannelEmployee,
	}

	// AllocateSale works on its own copy, so the reported batch set stays intact.
	allocation := AllocateSale(synthetic, status.Batches, prices)
	estimatedProfit := revenue.Sub(allocation.TotalCost)

	return SaleSimulation{
		CanSell:            canSell,
		Revenue:            revenue,
		EstimatedCost:      allocation.TotalCost,
		EstimatedProfit:    estimatedProfit,
		ProfitMargin:       percentOf(estimatedProfit, revenue),
		InventoryAfterSale: status.CurrentInventory - quantity,
	}
}
