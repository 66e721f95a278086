package taxtable

// Slab is one progressive income-tax bracket. UpTo is the upper bound of
// annual income covered by the bracket; zero means open-ended.
type Slab struct {
	UpTo float64
	Rate float64
}

// Step is one professional-tax bracket. Amount is a flat monthly charge,
// not a percentage. UpTo zero means open-ended.
type Step struct {
	UpTo   float64
	Amount float64
}

// Tables holds the statutory figures for one fiscal year.
type Tables struct {
	FiscalYear string

	IncomeSlabs     []Slab
	CessRate        float64
	RebateThreshold float64
	RebateAmount    float64

	ProfessionalTaxSteps []Step

	ESIWageCeiling  float64
	ESIEmployeeRate float64
}

// FY2025 is the new-regime table for FY 2025-26.
var FY2025 = Tables{
	FiscalYear: "2025-26",
	IncomeSlabs: []Slab{
		{UpTo: 300000, Rate: 0},
		{UpTo: 700000, Rate: 0.05},
		{UpTo: 1000000, Rate: 0.10},
		{UpTo: 1200000, Rate: 0.15},
		{UpTo: 1500000, Rate: 0.20},
		{UpTo: 0, Rate: 0.30},
	},
	CessRate:        0.04,
	RebateThreshold: 700000,
	RebateAmount:    25000,
	ProfessionalTaxSteps: []Step{
		{UpTo: 7500, Amount: 0},
		{UpTo: 10000, Amount: 175},
		{UpTo: 0, Amount: 200},
	},
	ESIWageCeiling:  21000,
	ESIEmployeeRate: 0.0075,
}

// Current returns the tables in force.
func Current() Tables {
	return FY2025
}

// ProfessionalTax returns the flat monthly professional tax for the given
// monthly gross.
func (t Tables) ProfessionalTax(monthlyGross float64) float64 {
	for _, step := range t.ProfessionalTaxSteps {
		if step.UpTo == 0 || monthlyGross <= step.UpTo {
			return step.Amount
		}
	}
	return 0
}

// ESI returns the unrounded monthly employee ESI contribution. Salaries
// above the wage ceiling contribute nothing; there is no phase-out.
func (t Tables) ESI(monthlyGross float64) float64 {
	if monthlyGross > t.ESIWageCeiling {
		return 0
	}
	return monthlyGross * t.ESIEmployeeRate
}

// AnnualIncomeTax computes the unrounded annual income tax: marginal slab
// tax plus cess, less the rebate when annual gross is within the threshold,
// floored at zero.
func (t Tables) AnnualIncomeTax(annualGross float64) float64 {
	var tax float64
	lower := 0.0
	for _, slab := range t.IncomeSlabs {
		if annualGross <= lower {
			break
		}
		upper := slab.UpTo
		if upper == 0 || upper > annualGross {
			upper = annualGross
		}
		tax += (upper - lower) * slab.Rate
		lower = slab.UpTo
		if lower == 0 {
			break
		}
	}

	tax *= 1 + t.CessRate

	if annualGross <= t.RebateThreshold {
		tax -= t.RebateAmount
		if tax < 0 {
			tax = 0
		}
	}

	return tax
}
