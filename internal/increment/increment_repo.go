package increment

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=increment_repo.go -destination=mock/increment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, inc *SalaryIncrement) error
	FindByID(ctx context.Context, id string) (*SalaryIncrement, error)
	FindByIDForUpdate(ctx context.Context, id string) (*SalaryIncrement, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]SalaryIncrement, error)
	FindByStatus(ctx context.Context, status string) ([]SalaryIncrement, error)
	Update(ctx context.Context, inc *SalaryIncrement) error
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

func (r *repository) Create(ctx context.Context, inc *SalaryIncrement) error {
	return r.db.WithContext(ctx).Create(inc).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalaryIncrement, error) {
	var inc SalaryIncrement
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&inc).Error
	return &inc, err
}

// FindByIDForUpdate locks the row so concurrent transitions on the same
// increment serialize.
func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*SalaryIncrement, error) {
	var inc SalaryIncrement
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&inc).Error
	return &inc, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]SalaryIncrement, error) {
	var incs []SalaryIncrement
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("effective_date DESC, created_at DESC").
		Find(&incs).Error
	return incs, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]SalaryIncrement, error) {
	var incs []SalaryIncrement
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&incs).Error
	return incs, err
}

func (r *repository) Update(ctx context.Context, inc *SalaryIncrement) error {
	return r.db.WithContext(ctx).Save(inc).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&SalaryIncrement{}).Error
}
