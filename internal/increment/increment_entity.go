package increment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeAnnual           = "ANNUAL"
	TypePromotion        = "PROMOTION"
	TypePerformance      = "PERFORMANCE"
	TypeMarketAdjustment = "MARKET_ADJUSTMENT"
	TypeRoleChange       = "ROLE_CHANGE"
	TypeSpecial          = "SPECIAL"
	TypeCorrection       = "CORRECTION"
	TypeOther            = "OTHER"
)

// Approval and application are one fused transition, so no row ever rests
// in an APPROVED status.
const (
	StatusPending  = "PENDING"
	StatusRejected = "REJECTED"
	StatusApplied  = "APPLIED"
)

type SalaryIncrement struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;index;not null"`

	IncrementType       string  `gorm:"type:varchar(30);not null"`
	PreviousBasic       float64 `gorm:"type:numeric(12,2);not null"`
	NewBasic            float64 `gorm:"type:numeric(12,2);not null"`
	IncrementAmount     float64 `gorm:"type:numeric(12,2);not null"`
	IncrementPercentage float64 `gorm:"type:numeric(7,2);not null"`

	Status          string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	EffectiveDate   time.Time `gorm:"type:date;not null"`
	RejectionReason *string   `gorm:"type:varchar(255)"`
	Remarks         string    `gorm:"type:text"`

	CompensationID *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func isValidIncrementType(t string) bool {
	switch t {
	case TypeAnnual, TypePromotion, TypePerformance, TypeMarketAdjustment,
		TypeRoleChange, TypeSpecial, TypeCorrection, TypeOther:
		return true
	}
	return false
}
