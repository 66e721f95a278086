package compensation

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompensationRecord is one row of an employee's compensation ledger. At
// most one row per employee carries IsCurrent=true; superseded rows keep
// their full breakdown and an EffectiveTo stamp for history.
type CompensationRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;index;not null"`

	BasicSalary        float64 `gorm:"type:numeric(12,2);not null"`
	HRA                float64 `gorm:"type:numeric(12,2);not null"`
	DA                 float64 `gorm:"type:numeric(12,2);not null"`
	SpecialAllowance   float64 `gorm:"type:numeric(12,2);not null"`
	TransportAllowance float64 `gorm:"type:numeric(12,2);not null"`
	MedicalAllowance   float64 `gorm:"type:numeric(12,2);not null"`
	OtherAllowances    float64 `gorm:"type:numeric(12,2);not null"`
	GrossSalary        float64 `gorm:"type:numeric(12,2);not null"`

	ProfessionalTax float64 `gorm:"type:numeric(12,2);not null"`
	ESI             float64 `gorm:"type:numeric(12,2);not null"`
	TDS             float64 `gorm:"type:numeric(12,2);not null"`
	OtherDeductions float64 `gorm:"type:numeric(12,2);not null"`
	TotalDeductions float64 `gorm:"type:numeric(12,2);not null"`
	NetSalary       float64 `gorm:"type:numeric(12,2);not null"`

	EffectiveFrom  time.Time  `gorm:"type:date;not null"`
	EffectiveTo    *time.Time `gorm:"type:date"`
	IsCurrent      bool       `gorm:"not null;default:false"`
	RevisionReason string     `gorm:"type:varchar(255)"`
	Notes          string     `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
