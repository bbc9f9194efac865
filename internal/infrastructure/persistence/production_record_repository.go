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

// GormProductionRecordRepository implements ProductionRecordRepository using GORM
type GormProductionRecordRepository struct {
	db *gorm.DB
}

// NewGormProductionRecordRepository creates a new GormProductionRecordRepository
func NewGormProductionRecordRepository(db *gorm.DB) *GormProductionRecordRepository {
	return &GormProductionRecordRepository{db: db}
}

// FindByID finds a production record by its ID
func (r *GormProductionRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*costing.ProductionRecord, error) {
	var model models.ProductionRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all production records ordered by date ascending.
// Replay order matters downstream, so the ordering is part of the contract.
func (r *GormProductionRecordRepository) FindAll(ctx context.Context) ([]*costing.ProductionRecord, error) {
	var recordModels []models.ProductionRecordModel
	if err := r.db.WithContext(ctx).
		Order("date ASC, created_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]*costing.ProductionRecord, len(recordModels))
	for i := range recordModels {
		records[i] = recordModels[i].ToDomain()
	}
	return records, nil
}

// FindByProduct returns production records for one product ordered by date ascending
func (r *GormProductionRecordRepository) FindByProduct(ctx context.Context, product costing.Product) ([]*costing.ProductionRecord, error) {
	var recordModels []models.ProductionRecordModel
	if err := r.db.WithContext(ctx).
		Where("product = ?", string(product)).
		Order("date ASC, created_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]*costing.ProductionRecord, len(recordModels))
	for i := range recordModels {
		records[i] = recordModels[i].ToDomain()
	}
	return records, nil
}

// FindByDateRange returns production records within [from, to] ordered by date ascending
func (r *GormProductionRecordRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*costing.ProductionRecord, error) {
	var recordModels []models.ProductionRecordModel
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, created_at ASC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}
	records := make([]*costing.ProductionRecord, len(recordModels))
	for i := range recordModels {
		records[i] = recordModels[i].ToDomain()
	}
	return records, nil
}

// Save creates or updates a production record
func (r *GormProductionRecordRepository) Save(ctx context.Context, record *costing.ProductionRecord) error {
	model := models.ProductionRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a production record
func (r *GormProductionRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductionRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
