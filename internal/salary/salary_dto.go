package salary

type ComputeBreakdownRequest struct {
	MonthlyGross    float64 `json:"monthly_gross" binding:"required,gt=0"`
	BasicPct        float64 `json:"basic_pct" binding:"omitempty,gt=0,lte=1"`
	HRAPct          float64 `json:"hra_pct" binding:"omitempty,gt=0,lte=1"`
	OtherAllowances float64 `json:"other_allowances" binding:"omitempty,gte=0"`
	OtherDeductions float64 `json:"other_deductions" binding:"omitempty,gte=0"`
}

type BreakdownResponse struct {
	BasicSalary        float64 `json:"basic_salary"`
	HRA                float64 `json:"hra"`
	DA                 float64 `json:"da"`
	SpecialAllowance   float64 `json:"special_allowance"`
	TransportAllowance float64 `json:"transport_allowance"`
	MedicalAllowance   float64 `json:"medical_allowance"`
	OtherAllowances    float64 `json:"other_allowances"`
	GrossSalary        float64 `json:"gross_salary"`
	ProfessionalTax    float64 `json:"professional_tax"`
	ESI                float64 `json:"esi"`
	TDS                float64 `json:"tds"`
	OtherDeductions    float64 `json:"other_deductions"`
	TotalDeductions    float64 `json:"total_deductions"`
	NetSalary          float64 `json:"net_salary"`
}

func mapToResponse(b Breakdown) BreakdownResponse {
	return BreakdownResponse{
		BasicSalary:        b.BasicSalary,
		HRA:                b.HRA,
		DA:                 b.DA,
		SpecialAllowance:   b.SpecialAllowance,
		TransportAllowance: b.TransportAllowance,
		MedicalAllowance:   b.MedicalAllowance,
		OtherAllowances:    b.OtherAllowances,
		GrossSalary:        b.GrossSalary,
		ProfessionalTax:    b.ProfessionalTax,
		ESI:                b.ESI,
		TDS:                b.TDS,
		OtherDeductions:    b.OtherDeductions,
		TotalDeductions:    b.TotalDeductions,
		NetSalary:          b.NetSalary,
	}
}
