package costing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/refresquitos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaterialCost is one raw-material line of a production run
type MaterialCost struct {
	Name string          `json:"name"`
	Cost decimal.Decimal `json:"cost"`
}

// MaterialCosts is the list of raw-material lines, stored as JSONB
type MaterialCosts []MaterialCost

// Value implements driver.Valuer interface for GORM to store as JSONB
func (m MaterialCosts) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (m *MaterialCosts) Scan(value interface{}) error {
	if value == nil {
		*m = MaterialCosts{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan MaterialCosts: unsupported type")
	}

	return json.Unmarshal(bytes, m)
}

// ProductionRecord captures one production run with its full cost
// breakdown. Immutable once created; deleted only explicitly.
type ProductionRecord struct {
	shared.BaseEntity
	Date            time.Time
	Product         Product
	Quantity        int64
	MaterialCosts   MaterialCosts
	DirectLaborCost decimal.Decimal
	IndirectCosts   decimal.Decimal
	TotalCost       decimal.Decimal
	CostPerUnit     decimal.Decimal
}

// NewProductionRecord creates a production record, deriving total cost and
// cost per unit from the cost components.
func NewProductionRecord(
	date time.Time,
	product Product,
	quantity int64,
	materials MaterialCosts,
	directLabor, indirect decimal.Decimal,
) (*ProductionRecord, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Production quantity must be positive")
	}
	if directLabor.IsNegative() || indirect.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Production costs cannot be negative")
	}

	total := directLabor.Add(indirect)
	for _, m := range materials {
		if m.Cost.IsNegative() {
			return nil, shared.NewDomainError("INVALID_COST", "Material cost cannot be negative")
		}
		total = total.Add(m.Cost)
	}

	return &ProductionRecord{
		BaseEntity:      shared.NewBaseEntity(),
		Date:            date,
		Product:         product,
		Quantity:        quantity,
		MaterialCosts:   materials,
		DirectLaborCost: directLabor,
		IndirectCosts:   indirect,
		TotalCost:       total,
		CostPerUnit:     total.Div(decimal.NewFromInt(quantity)),
	}, nil
}

// SaleChannel identifies how a sale was made
type SaleChannel string

const (
	ChannelEmployee SaleChannel = "EMPLOYEE"
	ChannelDirect   SaleChannel = "DIRECT"
	ChannelEvent    SaleChannel = "EVENT"
)

// IsValid checks if the channel is known
func (c SaleChannel) IsValid() bool {
	switch c {
	case ChannelEmployee, ChannelDirect, ChannelEvent:
		return true
	}
	return false
}

// SaleRecord captures one sale. Amount is quantity times the configured
// unit price at the time of recording; costing always recomputes revenue
// from the current price list instead of trusting this field.
type SaleRecord struct {
	shared.BaseEntity
	Date     time.Time
	Product  Product
	Quantity int64
	Amount   decimal.Decimal
	Channel  SaleChannel
	Employee string // empty for sales not attributed to an employee
}

// NewSaleRecord creates a sale record, pricing it from the given list
func NewSaleRecord(
	date time.Time,
	product Product,
	quantity int64,
	channel SaleChannel,
	employee string,
	prices PriceList,
) (*SaleRecord, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Sale quantity must be positive")
	}
	return &SaleRecord{
		BaseEntity: shared.NewBaseEntity(),
		Date:       date,
		Product:    product,
		Quantity:   quantity,
		Amount:     prices.PriceFor(product).Mul(decimal.NewFromInt(quantity)),
		Channel:    channel,
		Employee:   employee,
	}, nil
}

// ExpenseCategory classifies an expense record
type ExpenseCategory string

const (
	CategoryRawMaterial           ExpenseCategory = "RAW_MATERIAL"
	CategoryDirectLabor           ExpenseCategory = "DIRECT_LABOR"
	CategoryIndirectManufacturing ExpenseCategory = "INDIRECT_MANUFACTURING"
	CategoryAdministrative        ExpenseCategory = "ADMINISTRATIVE"
	CategorySales                 ExpenseCategory = "SALES"
	CategoryOther                 ExpenseCategory = "OTHER"
)

// IsValid checks if the category is known
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case CategoryRawMaterial, CategoryDirectLabor, CategoryIndirectManufacturing,
		CategoryAdministrative, CategorySales, CategoryOther:
		return true
	}
	return false
}

// IsProductionCost reports whether the category is already embedded in
// production cost (and therefore in COGS). Such expenses must not be
// counted again as operating expenses.
func (c ExpenseCategory) IsProductionCost() bool {
	switch c {
	case CategoryRawMaterial, CategoryDirectLabor, CategoryIndirectManufacturing:
		return true
	}
	return false
}

// ExpenseRecord captures one operating or production-related expense
type ExpenseRecord struct {
	shared.BaseEntity
	Name     string
	Category ExpenseCategory
	Amount   decimal.Decimal
	Date     time.Time
}

// NewExpenseRecord creates an expense record
func NewExpenseRecord(name string, category ExpenseCategory, amount decimal.Decimal, date time.Time) (*ExpenseRecord, error) {
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount cannot be negative")
	}
	return &ExpenseRecord{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Category:   category,
		Amount:     amount,
		Date:       date,
	}, nil
}
