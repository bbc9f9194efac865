package costing

import "github.com/shopspring/decimal"

// Rules holds the injectable business constants the costing engine
// consumes. Keeping them out of the package level makes the engine
// side-effect-free and testable with alternate business rules.
type Rules struct {
	Prices      PriceList
	TitheRate   decimal.Decimal
	SavingsRate decimal.Decimal
}

// DefaultRules returns the standard rules: two-tier pricing, 10% tithe,
// 20% savings.
func DefaultRules() Rules {
	return Rules{
		Prices:      DefaultPriceList(),
		TitheRate:   decimal.NewFromFloat(0.1),
		SavingsRate: decimal.NewFromFloat(0.2),
	}
}

// FinancialSummary aggregates revenue, FIFO cost of goods sold, operating
// expenses and the profit distribution
type FinancialSummary struct {
	TotalRevenue decimal.Decimal

	TotalCostOfGoodsSold decimal.Decimal
	GrossProfit          decimal.Decimal
	GrossProfitMargin    decimal.Decimal

	OperatingExpenses decimal.Decimal
	NetProfit         decimal.Decimal
	NetProfitMargin   decimal.Decimal

	Tithe     decimal.Decimal
	Savings   decimal.Decimal
	Available decimal.Decimal

	CurrentInventoryValue decimal.Decimal
	AverageCostPerUnit    decimal.Decimal
}

// Summarize computes the financial summary over the full record history.
// COGS comes from the sales ledger replay; revenue sums the recorded sale
// amounts. Expenses in production cost categories are excluded from
// operating expenses because they are already embedded in COGS.
//
// Distribution rates apply only to positive net profit: tithe and savings
// are clamped to zero on a loss, leaving the full (negative) net as
// available.
func Summarize(productions []*ProductionRecord, sales []*SaleRecord, expenses []*ExpenseRecord, rules Rules) FinancialSummary {
	result := ProcessSales(productions, sales, rules.Prices)

	totalRevenue := decimal.Zero
	for _, sale := range sales {
		totalRevenue = totalRevenue.Add(sale.Amount)
	}

	grossProfit := result.TotalGrossProfit

	operatingExpenses := decimal.Zero
	for _, expense := range expenses {
		if expense.Category.IsProductionCost() {
			continue
		}
		operatingExpenses = operatingExpenses.Add(expense.Amount)
	}

	netProfit := grossProfit.Sub(operatingExpenses)

	tithe := decimal.Zero
	savings := decimal.Zero
	if netProfit.IsPositive() {
		tithe = netProfit.Mul(rules.TitheRate)
		savings = netProfit.Mul(rules.SavingsRate)
	}
	available := netProfit.Sub(tithe).Sub(savings)

	currentInventoryValue := decimal.Zero
	for _, batch := range result.FinalBatches {
		currentInventoryValue = currentInventoryValue.Add(batch.RemainingValue())
	}

	// Weighted average across everything ever produced, distinct from the
	// FIFO average of what remains in inventory.
	var totalProduced int64
	totalProductionCost := decimal.Zero
	for _, prod := range productions {
		totalProduced += prod.Quantity
		totalProductionCost = totalProductionCost.Add(prod.TotalCost)
	}
	averageCostPerUnit := decimal.Zero
	if totalProduced > 0 {
		averageCostPerUnit = totalProductionCost.Div(decimal.NewFromInt(totalProduced))
	}

	return FinancialSummary{
		TotalRevenue:          totalRevenue,
		TotalCostOfGoodsSold:  result.TotalCOGS,
		GrossProfit:           grossProfit,
		GrossProfitMargin:     percentOf(grossProfit, totalRevenue),
		OperatingExpenses:     operatingExpenses,
		NetProfit:             netProfit,
		NetProfitMargin:       percentOf(netProfit, totalRevenue),
		Tithe:                 tithe,
		Savings:               savings,
		Available:             available,
		CurrentInventoryValue: currentInventoryValue,
		AverageCostPerUnit:    averageCostPerUnit,
	}
}
