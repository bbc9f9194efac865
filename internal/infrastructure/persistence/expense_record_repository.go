package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/refresquitos/backend/internal/domain/costing"
	"github.com/refresquitos/backend/internal/domain/shared"
	"github.com/refresquitos/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRecordRepository implements ExpenseRecordRepository using GORM
type GormExpenseRecordRepository struct {
	db *gorm.DB
}

// NewGormExpenseRecordRepository creates a new GormExpenseRecordRepository
func NewGormExpenseRecordRepository(db *gorm.DB) *GormExpenseRecordRepository {
	return &GormExpenseRecordRepository{db: db}
}

// FindByID finds an expense record by its ID
func (r *GormExpenseRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*costing.ExpenseRecord, error) {
	var model models.ExpenseRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all expense records ordered by date ascending
func (r *GormExpenseRecordRepository) FindAll(ctx context.Context) ([]*costing.ExpenseRecord, error) {
	var expenseModels []models.ExpenseRecordModel
	if err := r.db.WithContext(ctx).
		Order("date ASC, created_at ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]*costing.ExpenseRecord, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToDomain()
	}
	return expenses, nil
}

// FindByCategory returns expense records of one category ordered by date ascending
func (r *GormExpenseRecordRepository) FindByCategory(ctx context.Context, category costing.ExpenseCategory) ([]*costing.ExpenseRecord, error) {
	var expenseModels []models.ExpenseRecordModel
	if err := r.db.WithContext(ctx).
		Where("category = ?", string(category)).
		Order("date ASC, created_at ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]*costing.ExpenseRecord, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToDomain()
	}
	return expenses, nil
}

// FindByDateRange returns expense records within [from, to] ordered by date ascending
func (r *GormExpenseRecordRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*costing.ExpenseRecord, error) {
	var expenseModels []models.ExpenseRecordModel
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, created_at ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]*costing.ExpenseRecord, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToDomain()
	}
	return expenses, nil
}

// SumByCategory calculates the total expense amount of one category
func (r *GormExpenseRecordRepository) SumByCategory(ctx context.Context, category costing.ExpenseCategory) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.ExpenseRecordModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("category = ?", string(category)).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// Save creates or updates an expense record
func (r *GormExpenseRecordRepository) Save(ctx context.Context, expense *costing.ExpenseRecord) error {
	model := models.ExpenseRecordModelFromDomain(expense)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an expense record
func (r *GormExpenseRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ExpenseRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
