package employee

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindActiveByEmail(ctx context.Context, email string) (*Employee, error)
	UpdateCredential(ctx context.Context, id string, patch map[string]any) error
	RecordFailedAttempt(ctx context.Context, id string, maxAttempts int, lockUntil time.Time) (int, error)
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

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).First(&emp, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindActiveByEmail(ctx context.Context, email string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		Where("employment_status = ?", StatusActive).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) UpdateCredential(ctx context.Context, id string, patch map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Updates(patch).Error
}

// RecordFailedAttempt bumps the failed-login counter and, when the new
// count reaches maxAttempts, sets the lock fields in the same statement so
// concurrent failures never under-count. Returns the new count.
func (r *repository) RecordFailedAttempt(ctx context.Context, id string, maxAttempts int, lockUntil time.Time) (int, error) {
	var newCount int
	err := r.db.WithContext(ctx).Raw(`
		UPDATE employees
		SET failed_login_attempts = failed_login_attempts + 1,
			account_locked = (failed_login_attempts + 1 >= ?),
			locked_until = CASE WHEN failed_login_attempts + 1 >= ? THEN ? ELSE locked_until END,
			updated_at = now()
		WHERE id = ?
		RETURNING failed_login_attempts
	`, maxAttempts, maxAttempts, lockUntil, id).Scan(&newCount).Error

	if err != nil {
		return 0, err
	}

	return newCount, nil
}
