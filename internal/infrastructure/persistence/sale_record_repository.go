package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/refresquitos/backend/internal/domain/costing"
	"github.com/refresquitos/backend/internal/domain/shared"
	"github.com/refresquitos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSaleRecordRepository implements SaleRecordRepository using GORM
type GormSaleRecordRepository struct {
	db *gorm.DB
}

// NewGormSaleRecordRepository creates a new GormSaleRecordRepository
func NewGormSaleRecordRepository(db *gorm.DB) *GormSaleRecordRepository {
	return &GormSaleRecordRepository{db: db}
}

// FindByID finds a sale record by its ID
func (r *GormSaleRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*costing.SaleRecord, error) {
	var model models.SaleRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all sale records ordered by date ascending
func (r *GormSaleRecordRepository) FindAll(ctx context.Context) ([]*costing.SaleRecord, error) {
	return r.findWhere(ctx, r.db.WithContext(ctx))
}

// FindByProduct returns sale records for one product ordered by date ascending
func (r *GormSaleRecordRepository) FindByProduct(ctx context.Context, product costing.Product) ([]*costing.SaleRecord, error) {
	return r.findWhere(ctx, r.db.WithContext(ctx).Where("product = ?", string(product)))
}

// FindByEmployee returns sale records attributed to one employee ordered by date ascending
func (r *GormSaleRecordRepository) FindByEmployee(ctx context.Context, employee string) ([]*costing.SaleRecord, error) {
	return r.findWhere(ctx, r.db.WithContext(ctx).Where("employee = ?", employee))
}

// FindByDateRange returns sale records within [from, to] ordered by date ascending
func (r *GormSaleRecordRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*costing.SaleRecord, error) {
	return r.findWhere(ctx, r.db.WithContext(ctx).Where("date >= ? AND date <= ?", from, to))
}

func (r *GormSaleRecordRepository) findWhere(_ context.Context, query *gorm.DB) ([]*costing.SaleRecord, error) {
	var saleModels []models.SaleRecordModel
	if err := query.Order("date ASC, created_at ASC").Find(&saleModels).Error; err != nil {
		return nil, err
	}
	sales := make([]*costing.SaleRecord, len(saleModels))
	for i := range saleModels {
		sales[i] = saleModels[i].ToDomain()
	}
	return sales, nil
}

// Save creates or updates a sale record
func (r *GormSaleRecordRepository) Save(ctx context.Context, sale *costing.SaleRecord) error {
	model := models.SaleRecordModelFromDomain(sale)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a sale record
func (r *GormSaleRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SaleRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
