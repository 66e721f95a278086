package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusActive     = "ACTIVE"
	StatusOnLeave    = "ON_LEAVE"
	StatusResigned   = "RESIGNED"
	StatusTerminated = "TERMINATED"
)

type Employee struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName         string    `gorm:"type:varchar(255);not null"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	EmploymentStatus string    `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	Designation      string    `gorm:"type:varchar(100)"`

	// Credential record, 1:1 with the employee row. Mutated only by the
	// auth service.
	PasswordHash        string `gorm:"type:varchar(255)"`
	IsFirstLogin        bool   `gorm:"not null;default:true"`
	FailedLoginAttempts int    `gorm:"not null;default:0"`
	AccountLocked       bool   `gorm:"not null;default:false"`
	LockedUntil         *time.Time
	PasswordChangedAt   *time.Time
	LastLoginAt         *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// IsActive reports whether the employee may use self-service login.
func (e *Employee) IsActive() bool {
	return e.EmploymentStatus == StatusActive
}
