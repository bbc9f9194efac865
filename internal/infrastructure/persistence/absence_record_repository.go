package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/refresquitos/backend/internal/domain/payroll"
	"github.com/refresquitos/backend/internal/domain/shared"
	"github.com/refresquitos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAbsenceRecordRepository implements AbsenceRecordRepository using GORM
type GormAbsenceRecordRepository struct {
	db *gorm.DB
}

// NewGormAbsenceRecordRepository creates a new GormAbsenceRecordRepository
func NewGormAbsenceRecordRepository(db *gorm.DB) *GormAbsenceRecordRepository {
	return &GormAbsenceRecordRepository{db: db}
}

// FindByID finds an absence record by its ID
func (r *GormAbsenceRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.AbsenceRecord, error) {
	var model models.AbsenceRecordModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all absence records ordered by date ascending
func (r *GormAbsenceRecordRepository) FindAll(ctx context.Context) ([]*payroll.AbsenceRecord, error) {
	var absenceModels []models.AbsenceRecordModel
	if err := r.db.WithContext(ctx).
		Order("date ASC").
		Find(&absenceModels).Error; err != nil {
		return nil, err
	}
	absences := make([]*payroll.AbsenceRecord, len(absenceModels))
	for i := range absenceModels {
		absences[i] = absenceModels[i].ToDomain()
	}
	return absences, nil
}

// FindByEmployee returns absence records for one employee ordered by date ascending
func (r *GormAbsenceRecordRepository) FindByEmployee(ctx context.Context, employee string) ([]*payroll.AbsenceRecord, error) {
	var absenceModels []models.AbsenceRecordModel
	if err := r.db.WithContext(ctx).
		Where("employee = ?", employee).
		Order("date ASC").
		Find(&absenceModels).Error; err != nil {
		return nil, err
	}
	absences := make([]*payroll.AbsenceRecord, len(absenceModels))
	for i := range absenceModels {
		absences[i] = absenceModels[i].ToDomain()
	}
	return absences, nil
}

// Save creates or updates an absence record
func (r *GormAbsenceRecordRepository) Save(ctx context.Context, absence *payroll.AbsenceRecord) error {
	model := models.AbsenceRecordModelFromDomain(absence)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an absence record
func (r *GormAbsenceRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AbsenceRecordModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
