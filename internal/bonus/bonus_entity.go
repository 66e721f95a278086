package bonus

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypePerformance = "PERFORMANCE"
	TypeFestival    = "FESTIVAL"
	TypeRetention   = "RETENTION"
	TypeReferral    = "REFERRAL"
	TypeAnnual      = "ANNUAL"
	TypeSpot        = "SPOT"
	TypeOther       = "OTHER"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusPaid      = "PAID"
	StatusCancelled = "CANCELLED"
)

type EmployeeBonus struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;index;not null"`

	BonusType string  `gorm:"type:varchar(30);not null"`
	Amount    float64 `gorm:"type:numeric(12,2);not null"`
	IsTaxable bool    `gorm:"not null;default:false"`
	TaxAmount float64 `gorm:"type:numeric(12,2);not null;default:0"`
	NetAmount float64 `gorm:"type:numeric(12,2);not null"`

	PaymentStatus string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentDate   *time.Time `gorm:"type:date"`
	ApprovedAt    *time.Time
	Remarks       string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func isValidBonusType(t string) bool {
	switch t {
	case TypePerformance, TypeFestival, TypeRetention, TypeReferral,
		TypeAnnual, TypeSpot, TypeOther:
		return true
	}
	return false
}

// netAmount is recomputed whenever amount, is_taxable, or tax_amount
// changes; it is never accepted from the caller.
func netAmount(amount float64, isTaxable bool, taxAmount float64) float64 {
	if isTaxable {
		return amount - taxAmount
	}
	return amount
}
