package compensation

type CreateCompensationRequest struct {
	EmployeeID      string  `json:"employee_id" binding:"required,uuid"`
	GrossSalary     float64 `json:"gross_salary" binding:"required"`
	EffectiveFrom   string  `json:"effective_from" binding:"required"`
	RevisionReason  string  `json:"revision_reason"`
	Notes           string  `json:"notes"`
	BasicPct        float64 `json:"basic_pct"`
	HRAPct          float64 `json:"hra_pct"`
	OtherAllowances float64 `json:"other_allowances"`
	OtherDeductions float64 `json:"other_deductions"`
}

type CompensationResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`

	BasicSalary        float64 `json:"basic_salary"`
	HRA                float64 `json:"hra"`
	DA                 float64 `json:"da"`
	SpecialAllowance   float64 `json:"special_allowance"`
	TransportAllowance float64 `json:"transport_allowance"`
	MedicalAllowance   float64 `json:"medical_allowance"`
	OtherAllowances    float64 `json:"other_allowances"`
	GrossSalary        float64 `json:"gross_salary"`

	ProfessionalTax float64 `json:"professional_tax"`
	ESI             float64 `json:"esi"`
	TDS             float64 `json:"tds"`
	OtherDeductions float64 `json:"other_deductions"`
	TotalDeductions float64 `json:"total_deductions"`
	NetSalary       float64 `json:"net_salary"`

	EffectiveFrom  string `json:"effective_from"`
	EffectiveTo    string `json:"effective_to,omitempty"`
	IsCurrent      bool   `json:"is_current"`
	RevisionReason string `json:"revision_reason,omitempty"`
	Notes          string `json:"notes,omitempty"`
}
