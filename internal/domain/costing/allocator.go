package costing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchUsage is one batch's contribution to the cost of a sale
type BatchUsage struct {
	BatchID           uuid.UUID
	QuantityFromBatch int64
	CostPerUnit       decimal.Decimal
	SubtotalCost      decimal.Decimal
}

// SaleCostAllocation is the FIFO cost breakdown of a single sale
type SaleCostAllocation struct {
	SaleID            uuid.UUID
	Date              time.Time
	QuantitySold      int64
	TotalRevenue      decimal.Decimal
	TotalCost         decimal.Decimal
	GrossProfit       decimal.Decimal
	GrossProfitMargin decimal.Decimal
	Batches           []BatchUsage
}

// AllocateSale prices one sale against a batch set using FIFO: batches are
// consumed in order, oldest first, each contributing up to its remaining
// quantity. The batch set is cloned internally, so the caller's state is
// never mutated; the ledger applies the recorded usages itself.
//
// Oversell does not fail: when demand exceeds the remaining stock the
// allocation covers only what was available. Callers that need a hard
// stock check compare against current inventory separately.
func AllocateSale(sale *SaleRecord, batches []InventoryBatch, prices PriceList) SaleCostAllocation {
	working := CloneBatches(batches)

	need := sale.Quantity
	totalCost := decimal.Zero
	usages := make([]BatchUsage, 0)

	for i := range working {
		if need <= 0 {
			break
		}
		batch := &working[i]
		if batch.RemainingQuantity <= 0 {
			continue
		}

		take := need
		if batch.RemainingQuantity < take {
			take = batch.RemainingQuantity
		}
		subtotal := batch.CostPerUnit.Mul(decimal.NewFromInt(take))

		usages = append(usages, BatchUsage{
			BatchID:           batch.ID,
			QuantityFromBatch: take,
			CostPerUnit:       batch.CostPerUnit,
			SubtotalCost:      subtotal,
		})

		totalCost = totalCost.Add(subtotal)
		batch.RemainingQuantity -= take
		need -= take
	}

	totalRevenue := prices.PriceFor(sale.Product).Mul(decimal.NewFromInt(sale.Quantity))
	grossProfit := totalRevenue.Sub(totalCost)

	return SaleCostAllocation{
		SaleID:            sale.ID,
		Date:              sale.Date,
		QuantitySold:      sale.Quantity,
		TotalRevenue:      totalRevenue,
		TotalCost:         totalCost,
		GrossProfit:       grossProfit,
		GrossProfitMargin: percentOf(grossProfit, totalRevenue),
		Batches:           usages,
	}
}

// percentOf returns part/whole*100, or zero when the whole is zero
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}
