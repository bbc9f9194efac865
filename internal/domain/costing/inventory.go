package costing

import "github.com/shopspring/decimal"

// InventoryStatus is a snapshot of current stock derived from a full
// ledger replay
type InventoryStatus struct {
	TotalProduced          int64
	TotalSold              int64
	CurrentInventory       int64
	Batches                []InventoryBatch
	TotalInventoryValue    decimal.Decimal
	AverageCostInInventory decimal.Decimal
}

// SeparateInventoryStatus partitions stock per product line plus a
// combined view
type SeparateInventoryStatus struct {
	PerProduct map[Product]InventoryStatus
	Combined   InventoryStatus
}

// CurrentInventoryStatus derives the stock snapshot for the given records.
// Current inventory always equals total produced minus total sold for the
// same record scope.
func CurrentInventoryStatus(productions []*ProductionRecord, sales []*SaleRecord, prices PriceList) InventoryStatus {
	result := ProcessSales(productions, sales, prices)

	var totalProduced, totalSold int64
	for _, prod := range productions {
		totalProduced += prod.Quantity
	}
	for _, sale := range sales {
		totalSold += sale.Quantity
	}

	var current int64
	totalValue := decimal.Zero
	open := make([]InventoryBatch, 0)
	for _, batch := range result.FinalBatches {
		current += batch.RemainingQuantity
		totalValue = totalValue.Add(batch.RemainingValue())
		if batch.HasStock() {
			open = append(open, batch)
		}
	}

	average := decimal.Zero
	if current > 0 {
		average = totalValue.Div(decimal.NewFromInt(current))
	}

	return InventoryStatus{
		TotalProduced:          totalProduced,
		TotalSold:              totalSold,
		CurrentInventory:       current,
		Batches:                open,
		TotalInventoryValue:    totalValue,
		AverageCostInInventory: average,
	}
}

// ProductInventoryStatus derives the stock snapshot for a single product
// line by scoping the records before replay. FIFO allocation within the
// scope never costs one product's sale against another product's batch.
func ProductInventoryStatus(product Product, productions []*ProductionRecord, sales []*SaleRecord, prices PriceList) InventoryStatus {
	return CurrentInventoryStatus(
		FilterProductionsByProduct(productions, product),
		FilterSalesByProduct(sales, product),
		prices,
	)
}

// SeparateInventory derives per-product snapshots and sums them into the
// combined view. The combined figures are never re-derived from an
// unscoped ledger, since that would let batches of one product absorb
// sales of another.
func SeparateInventory(productions []*ProductionRecord, sales []*SaleRecord, prices PriceList) SeparateInventoryStatus {
	perProduct := make(map[Product]InventoryStatus, len(AllProducts()))

	var combined InventoryStatus
	combined.TotalInventoryValue = decimal.Zero
	for _, product := range AllProducts() {
		status := ProductInventoryStatus(product, productions, sales, prices)
		perProduct[product] = status

		combined.TotalProduced += status.TotalProduced
		combined.TotalSold += status.TotalSold
		combined.CurrentInventory += status.CurrentInventory
		combined.TotalInventoryValue = combined.TotalInventoryValue.Add(status.TotalInventoryValue)
	}

	combined.AverageCostInInventory = decimal.Zero
	if combined.CurrentInventory > 0 {
		combined.AverageCostInInventory = combined.TotalInventoryValue.Div(decimal.NewFromInt(combined.CurrentInventory))
	}

	return SeparateInventoryStatus{
		PerProduct: perProduct,
		Combined:   combined,
	}
}

// FilterProductionsByProduct returns the production records for one product line
func FilterProductionsByProduct(productions []*ProductionRecord, product Product) []*ProductionRecord {
	filtered := make([]*ProductionRecord, 0, len(productions))
	for _, prod := range productions {
		if prod.Product == product {
			filtered = append(filtered, prod)
		}
	}
	return filtered
}

// FilterSalesByProduct returns the sale records for one product line
func FilterSalesByProduct(sales []*SaleRecord, product Product) []*SaleRecord {
	filtered := make([]*SaleRecord, 0, len(sales))
	for _, sale := range sales {
		if sale.Product == product {
			filtered = append(filtered, sale)
		}
	}
	return filtered
}
