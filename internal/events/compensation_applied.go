package events

import "time"

const CompensationTopic = "payroll.compensation.v1"

const (
	TypeCompensationApplied = "compensation.applied"
	TypeIncrementRejected   = "increment.rejected"
	TypeBonusPaid           = "bonus.paid"
)

// CompensationAppliedEvent is emitted whenever a new current compensation
// record supersedes the previous one, whether by direct entry or an
// approved increment.
type CompensationAppliedEvent struct {
	EventType      string    `json:"event_type"`
	EmployeeID     string    `json:"employee_id"`
	CompensationID string    `json:"compensation_id"`
	GrossSalary    float64   `json:"gross_salary"`
	EffectiveFrom  string    `json:"effective_from"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type IncrementRejectedEvent struct {
	EventType   string    `json:"event_type"`
	EmployeeID  string    `json:"employee_id"`
	IncrementID string    `json:"increment_id"`
	Reason      string    `json:"reason"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type BonusPaidEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	BonusID    string    `json:"bonus_id"`
	NetAmount  float64   `json:"net_amount"`
	PaidAt     string    `json:"paid_at"`
	OccurredAt time.Time `json:"occurred_at"`
}
