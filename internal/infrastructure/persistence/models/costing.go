package models

import (
	"time"

	"github.com/refresquitos/backend/internal/domain/costing"
	"github.com/shopspring/decimal"
)

// ProductionRecordModel is the GORM model for production records
type ProductionRecordModel struct {
	BaseModel
	Date            time.Time              `gorm:"not null;index"`
	Product         string                 `gorm:"type:varchar(20);not null;index"`
	Quantity        int64                  `gorm:"not null"`
	MaterialCosts   costing.MaterialCosts  `gorm:"type:jsonb;default:'[]'"`
	DirectLaborCost decimal.Decimal        `gorm:"type:decimal(15,4);not null"`
	IndirectCosts   decimal.Decimal        `gorm:"type:decimal(15,4);not null"`
	TotalCost       decimal.Decimal        `gorm:"type:decimal(15,4);not null"`
	CostPerUnit     decimal.Decimal        `gorm:"type:decimal(15,4);not null"`
}

// TableName specifies the table name
func (ProductionRecordModel) TableName() string {
	return "production_records"
}

// ToDomain converts the model to a domain production record
func (m *ProductionRecordModel) ToDomain() *costing.ProductionRecord {
	return &costing.ProductionRecord{
		BaseEntity:      m.BaseModel.ToDomain(),
		Date:            m.Date,
		Product:         costing.Product(m.Product),
		Quantity:        m.Quantity,
		MaterialCosts:   m.MaterialCosts,
		DirectLaborCost: m.DirectLaborCost,
		IndirectCosts:   m.IndirectCosts,
		TotalCost:       m.TotalCost,
		CostPerUnit:     m.CostPerUnit,
	}
}

// ProductionRecordModelFromDomain converts a domain production record to a model
func ProductionRecordModelFromDomain(r *costing.ProductionRecord) *ProductionRecordModel {
	m := &ProductionRecordModel{
		Date:            r.Date,
		Product:         string(r.Product),
		Quantity:        r.Quantity,
		MaterialCosts:   r.MaterialCosts,
		DirectLaborCost: r.DirectLaborCost,
		IndirectCosts:   r.IndirectCosts,
		TotalCost:       r.TotalCost,
		CostPerUnit:     r.CostPerUnit,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// SaleRecordModel is the GORM model for sale records
type SaleRecordModel struct {
	BaseModel
	Date     time.Time       `gorm:"not null;index"`
	Product  string          `gorm:"type:varchar(20);not null;index"`
	Quantity int64           `gorm:"not null"`
	Amount   decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	Channel  string          `gorm:"type:varchar(20);not null"`
	Employee string          `gorm:"type:varchar(100);index"`
}

// TableName specifies the table name
func (SaleRecordModel) TableName() string {
	return "sale_records"
}

// ToDomain converts the model to a domain sale record
func (m *SaleRecordModel) ToDomain() *costing.SaleRecord {
	return &costing.SaleRecord{
		BaseEntity: m.BaseModel.ToDomain(),
		Date:       m.Date,
		Product:    costing.Product(m.Product),
		Quantity:   m.Quantity,
		Amount:     m.Amount,
		Channel:    costing.SaleChannel(m.Channel),
		Employee:   m.Employee,
	}
}

// SaleRecordModelFromDomain converts a domain sale record to a model
func SaleRecordModelFromDomain(s *costing.SaleRecord) *SaleRecordModel {
	m := &SaleRecordModel{
		Date:     s.Date,
		Product:  string(s.Product),
		Quantity: s.Quantity,
		Amount:   s.Amount,
		Channel:  string(s.Channel),
		Employee: s.Employee,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// ExpenseRecordModel is the GORM model for expense records
type ExpenseRecordModel struct {
	BaseModel
	Name     string          `gorm:"type:varchar(200);not null"`
	Category string          `gorm:"type:varchar(30);not null;index"`
	Amount   decimal.Decimal `gorm:"type:decimal(15,4);not null"`
	Date     time.Time       `gorm:"not null;index"`
}

// TableName specifies the table name
func (ExpenseRecordModel) TableName() string {
	return "expense_records"
}

// ToDomain converts the model to a domain expense record
func (m *ExpenseRecordModel) ToDomain() *costing.ExpenseRecord {
	return &costing.ExpenseRecord{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Category:   costing.ExpenseCategory(m.Category),
		Amount:     m.Amount,
		Date:       m.Date,
	}
}

// ExpenseRecordModelFromDomain converts a domain expense record to a model
func ExpenseRecordModelFromDomain(e *costing.ExpenseRecord) *ExpenseRecordModel {
	m := &ExpenseRecordModel{
		Name:     e.Name,
		Category: string(e.Category),
		Amount:   e.Amount,
		Date:     e.Date,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}
