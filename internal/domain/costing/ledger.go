package costing

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerResult is the outcome of replaying every sale against the
// production history. It is the single source of truth for COGS: the
// financial summary and inventory reports both consume it rather than
// re-running FIFO on their own.
type LedgerResult struct {
	Allocations      []SaleCostAllocation
	FinalBatches     []InventoryBatch
	TotalCOGS        decimal.Decimal
	TotalGrossProfit decimal.Decimal
}

// ProcessSales builds the batch set and replays all sales through it in
// chronological order, so each sale's allocation reflects the depletion
// caused by every earlier sale. Batch depletion is not commutative across
// sales; the ascending date sort is required for correctness.
func ProcessSales(productions []*ProductionRecord, sales []*SaleRecord, prices PriceList) LedgerResult {
	batches := BuildBatches(productions)

	sorted := make([]*SaleRecord, len(sales))
	copy(sorted, sales)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	byID := make(map[uuid.UUID]*InventoryBatch, len(batches))
	for i := range batches {
		byID[batches[i].ID] = &batches[i]
	}

	allocations := make([]SaleCostAllocation, 0, len(sorted))
	totalCOGS := decimal.Zero
	totalGrossProfit := decimal.Zero

	for _, sale := range sorted {
		allocation := AllocateSale(sale, batches, prices)
		allocations = append(allocations, allocation)
		totalCOGS = totalCOGS.Add(allocation.TotalCost)
		totalGrossProfit = totalGrossProfit.Add(allocation.GrossProfit)

		for _, usage := range allocation.Batches {
			if batch, ok := byID[usage.BatchID]; ok {
				batch.RemainingQuantity -= usage.QuantityFromBatch
			}
		}
	}

	return LedgerResult{
		Allocations:      allocations,
		FinalBatches:     batches,
		TotalCOGS:        totalCOGS,
		TotalGrossProfit: totalGrossProfit,
	}
}
