package increment

type CreateIncrementRequest struct {
	EmployeeID    string  `json:"employee_id" binding:"required,uuid"`
	IncrementType string  `json:"increment_type" binding:"required"`
	PreviousBasic float64 `json:"previous_basic"`
	NewBasic      float64 `json:"new_basic" binding:"required"`
	EffectiveDate string  `json:"effective_date" binding:"required"`
	Remarks       string  `json:"remarks"`
}

type UpdateIncrementRequest struct {
	IncrementType string  `json:"increment_type" binding:"required"`
	PreviousBasic float64 `json:"previous_basic"`
	NewBasic      float64 `json:"new_basic" binding:"required"`
	EffectiveDate string  `json:"effective_date" binding:"required"`
	Remarks       string  `json:"remarks"`
}

// ApproveIncrementRequest carries the compensation the approval applies.
// A zero GrossSalary derives the gross from new_basic and the default
// basic percentage.
type ApproveIncrementRequest struct {
	GrossSalary     float64 `json:"gross_salary"`
	EffectiveFrom   string  `json:"effective_from"`
	RevisionReason  string  `json:"revision_reason"`
	Notes           string  `json:"notes"`
	OtherAllowances float64 `json:"other_allowances"`
	OtherDeductions float64 `json:"other_deductions"`
}

type RejectIncrementRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type IncrementResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`

	IncrementType       string  `json:"increment_type"`
	PreviousBasic       float64 `json:"previous_basic"`
	NewBasic            float64 `json:"new_basic"`
	IncrementAmount     float64 `json:"increment_amount"`
	IncrementPercentage float64 `json:"increment_percentage"`

	Status          string `json:"status"`
	EffectiveDate   string `json:"effective_date"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	Remarks         string `json:"remarks,omitempty"`

	CompensationID string `json:"compensation_id,omitempty"`
	ApprovedAt     string `json:"approved_at,omitempty"`
}
