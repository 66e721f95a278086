package salary

import (
	"math"

	salaryerrors "go-payroll/internal/salary/errors"
	"go-payroll/internal/taxtable"
)

const (
	DefaultBasicPct = 0.40
	DefaultHRAPct   = 0.40
	specialPct      = 0.20
	monthsInYear    = 12
)

// Breakdown is the full monthly earnings/deductions split derived from one
// gross figure. Earnings always reconcile to GrossSalary exactly; NetSalary
// is GrossSalary minus TotalDeductions exactly.
type Breakdown struct {
	BasicSalary        float64
	HRA                float64
	DA                 float64
	SpecialAllowance   float64
	TransportAllowance float64
	MedicalAllowance   float64
	OtherAllowances    float64
	GrossSalary        float64

	ProfessionalTax float64
	ESI             float64
	TDS             float64
	OtherDeductions float64
	TotalDeductions float64
	NetSalary       float64
}

// Options tunes the component split. Zero-valued percentages fall back to
// the defaults; allowance/deduction extras default to zero.
type Options struct {
	BasicPct        float64
	HRAPct          float64
	OtherAllowances float64
	OtherDeductions float64
}

type Engine struct {
	tables taxtable.Tables
}

func NewEngine(tables taxtable.Tables) *Engine {
	return &Engine{tables: tables}
}

// Compute derives the full breakdown for one monthly gross salary.
//
// Monthly TDS is one twelfth of the annualized slab tax, never recomputed
// from monthly gross directly.
func (e *Engine) Compute(monthlyGross float64, opts Options) (Breakdown, error) {
	if monthlyGross <= 0 || math.IsNaN(monthlyGross) || math.IsInf(monthlyGross, 0) {
		return Breakdown{}, salaryerrors.ErrInvalidGross
	}

	basicPct := opts.BasicPct
	if basicPct == 0 {
		basicPct = DefaultBasicPct
	}
	hraPct := opts.HRAPct
	if hraPct == 0 {
		hraPct = DefaultHRAPct
	}
	if basicPct < 0 || basicPct > 1 || hraPct < 0 || hraPct > 1 || basicPct+hraPct > 1 {
		return Breakdown{}, salaryerrors.ErrInvalidPercentage
	}
	if opts.OtherAllowances < 0 || opts.OtherDeductions < 0 {
		return Breakdown{}, salaryerrors.ErrNegativeAdjustment
	}

	b := Breakdown{
		BasicSalary:      round(monthlyGross * basicPct),
		HRA:              round(monthlyGross * hraPct),
		SpecialAllowance: round(monthlyGross * specialPct),
		OtherAllowances:  opts.OtherAllowances,
		GrossSalary:      monthlyGross,
	}

	// Fold the rounding residue into the special allowance so earnings
	// reconcile to gross exactly.
	earnings := b.BasicSalary + b.HRA + b.DA + b.SpecialAllowance +
		b.TransportAllowance + b.MedicalAllowance + b.OtherAllowances
	b.SpecialAllowance += monthlyGross - earnings

	b.ProfessionalTax = e.tables.ProfessionalTax(monthlyGross)
	b.ESI = round(e.tables.ESI(monthlyGross))

	annualTax := e.tables.AnnualIncomeTax(monthlyGross * monthsInYear)
	b.TDS = round(annualTax / monthsInYear)

	b.OtherDeductions = opts.OtherDeductions
	b.TotalDeductions = b.ProfessionalTax + b.ESI + b.TDS + b.OtherDeductions
	b.NetSalary = b.GrossSalary - b.TotalDeductions

	return b, nil
}

// round is the single rounding rule for every currency figure: nearest
// whole rupee, halves away from zero.
func round(v float64) float64 {
	return math.Round(v)
}
