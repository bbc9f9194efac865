package costing

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryBatch is one production run's output tracked until sales
// consume it. Batches are derived, never persisted: they are rebuilt from
// the full production history on every evaluation.
type InventoryBatch struct {
	ID                uuid.UUID
	ProductionDate    time.Time
	Product           Product
	Quantity          int64
	RemainingQuantity int64
	CostPerUnit       decimal.Decimal
	TotalCost         decimal.Decimal
}

// RemainingValue returns the value of the batch's unsold units
func (b *InventoryBatch) RemainingValue() decimal.Decimal {
	return b.CostPerUnit.Mul(decimal.NewFromInt(b.RemainingQuantity))
}

// HasStock returns true if the batch still has unsold units
func (b *InventoryBatch) HasStock() bool {
	return b.RemainingQuantity > 0
}

// BuildBatches turns production records into inventory batches ordered
// oldest-first by production date. The ordering is the FIFO contract:
// the oldest production is consumed first regardless of cost. The sort is
// stable, so same-day batches keep their input order.
func BuildBatches(productions []*ProductionRecord) []InventoryBatch {
	batches := make([]InventoryBatch, 0, len(productions))
	for _, prod := range productions {
		batches = append(batches, InventoryBatch{
			ID:                prod.ID,
			ProductionDate:    prod.Date,
			Product:           prod.Product,
			Quantity:          prod.Quantity,
			RemainingQuantity: prod.Quantity,
			CostPerUnit:       prod.CostPerUnit,
			TotalCost:         prod.TotalCost,
		})
	}
	sort.SliceStable(batches, func(i, j int) bool {
		return batches[i].ProductionDate.Before(batches[j].ProductionDate)
	})
	return batches
}

// CloneBatches returns an independent copy of a batch set, so allocation
// can deplete the copy without touching the caller's state.
func CloneBatches(batches []InventoryBatch) []InventoryBatch {
	cloned := make([]InventoryBatch, len(batches))
	copy(cloned, batches)
	return cloned
}
