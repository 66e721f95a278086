package compensation

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=compensation_repo.go -destination=mock/compensation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, record *CompensationRecord) error
	FindByID(ctx context.Context, id string) (*CompensationRecord, error)
	FindCurrentByEmployee(ctx context.Context, employeeID string) (*CompensationRecord, error)
	FindCurrentForUpdate(ctx context.Context, employeeID string) (*CompensationRecord, error)
	HistoryByEmployee(ctx context.Context, employeeID string) ([]CompensationRecord, error)
	Supersede(ctx context.Context, id string, effectiveTo string) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, record *CompensationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*CompensationRecord, error) {
	var record CompensationRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	return &record, err
}

func (r *repository) FindCurrentByEmployee(ctx context.Context, employeeID string) (*CompensationRecord, error) {
	var record CompensationRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND is_current = true", employeeID).
		First(&record).Error
	return &record, err
}

// FindCurrentForUpdate locks the current row so two concurrent revisions
// cannot both supersede the same record.
func (r *repository) FindCurrentForUpdate(ctx context.Context, employeeID string) (*CompensationRecord, error) {
	var record CompensationRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ? AND is_current = true", employeeID).
		First(&record).Error
	return &record, err
}

func (r *repository) HistoryByEmployee(ctx context.Context, employeeID string) ([]CompensationRecord, error) {
	var records []CompensationRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("effective_from DESC, created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) Supersede(ctx context.Context, id string, effectiveTo string) error {
	return r.db.WithContext(ctx).
		Model(&CompensationRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_current":   false,
			"effective_to": effectiveTo,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&CompensationRecord{}).Error
}
