package costing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductionRecordRepository defines persistence operations for production records.
// All listing methods return records ordered by date ascending so callers can
// replay them without re-sorting.
type ProductionRecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductionRecord, error)
	FindAll(ctx context.Context) ([]*ProductionRecord, error)
	FindByProduct(ctx context.Context, product Product) ([]*ProductionRecord, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*ProductionRecord, error)
	Save(ctx context.Context, record *ProductionRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SaleRecordRepository defines persistence operations for sale records
type SaleRecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SaleRecord, error)
	FindAll(ctx context.Context) ([]*SaleRecord, error)
	FindByProduct(ctx context.Context, product Product) ([]*SaleRecord, error)
	FindByEmployee(ctx context.Context, employee string) ([]*SaleRecord, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*SaleRecord, error)
	Save(ctx context.Context, sale *SaleRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseRecordRepository defines persistence operations for expense records
type ExpenseRecordRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseRecord, error)
	FindAll(ctx context.Context) ([]*ExpenseRecord, error)
	FindByCategory(ctx context.Context, category ExpenseCategory) ([]*ExpenseRecord, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*ExpenseRecord, error)
	SumByCategory(ctx context.Context, category ExpenseCategory) (decimal.Decimal, error)
	Save(ctx context.Context, expense *ExpenseRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}
