package salary_test

import (
	"testing"

	"go-payroll/internal/salary"
	salaryerrors "go-payroll/internal/salary/errors"
	"go-payroll/internal/taxtable"

	"github.com/stretchr/testify/assert"
)

func newEngine() *salary.Engine {
	return salary.NewEngine(taxtable.Current())
}

func TestCompute_EndToEnd(t *testing.T) {
	engine := newEngine()

	// gross 50,000: basic 20,000, hra 20,000, special 10,000, PT 200,
	// ESI 0 (above ceiling), annual tax 15,600 wiped by rebate, TDS 0.
	b, err := engine.Compute(50000, salary.Options{})
	assert.NoError(t, err)

	assert.Equal(t, 20000.0, b.BasicSalary)
	assert.Equal(t, 20000.0, b.HRA)
	assert.Equal(t, 10000.0, b.SpecialAllowance)
	assert.Equal(t, 0.0, b.DA)
	assert.Equal(t, 0.0, b.TransportAllowance)
	assert.Equal(t, 0.0, b.MedicalAllowance)
	assert.Equal(t, 50000.0, b.GrossSalary)

	assert.Equal(t, 200.0, b.ProfessionalTax)
	assert.Equal(t, 0.0, b.ESI)
	assert.Equal(t, 0.0, b.TDS)
	assert.Equal(t, 200.0, b.TotalDeductions)
	assert.Equal(t, 49800.0, b.NetSalary)
}

func TestCompute_EarningsReconcileToGross(t *testing.T) {
	engine := newEngine()

	grosses := []float64{1, 999.99, 7500, 12345.67, 21000, 21001, 33333.33, 58333.34, 100000, 987654.32}
	for _, gross := range grosses {
		b, err := engine.Compute(gross, salary.Options{OtherAllowances: 750})
		assert.NoError(t, err)

		earnings := b.BasicSalary + b.HRA + b.DA + b.SpecialAllowance +
			b.TransportAllowance + b.MedicalAllowance + b.OtherAllowances
		assert.InDelta(t, gross, earnings, 1e-9, "gross %v", gross)
		assert.InDelta(t, b.GrossSalary-b.TotalDeductions, b.NetSalary, 1e-9, "gross %v", gross)
	}
}

func TestCompute_ESIBoundary(t *testing.T) {
	engine := newEngine()

	atCeiling, err := engine.Compute(21000, salary.Options{})
	assert.NoError(t, err)
	assert.Greater(t, atCeiling.ESI, 0.0)
	// 21,000 * 0.0075 = 157.5 rounds half away from zero
	assert.Equal(t, 158.0, atCeiling.ESI)

	aboveCeiling, err := engine.Compute(21001, salary.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, aboveCeiling.ESI)
}

func TestCompute_RebateBoundary(t *testing.T) {
	engine := newEngine()

	// 58,333.25 * 12 = 699,999 annual: rebate applies
	withRebate, err := engine.Compute(58333.25, salary.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, withRebate.TDS)

	// 58,334 * 12 = 700,008 annual: past the boundary, rebate is lost
	withoutRebate, err := engine.Compute(58334, salary.Options{})
	assert.NoError(t, err)
	assert.Greater(t, withoutRebate.TDS, 0.0)
}

func TestCompute_TDSIsAnnualizedNotMonthly(t *testing.T) {
	engine := newEngine()

	// monthly 100,000 = annual 1,200,000:
	// 0 + 20,000 + 30,000 + 30,000 = 80,000; cess -> 83,200; /12 -> 6,933.33
	b, err := engine.Compute(100000, salary.Options{})
	assert.NoError(t, err)
	assert.Equal(t, 6933.0, b.TDS)
}

func TestCompute_CustomSplit(t *testing.T) {
	engine := newEngine()

	b, err := engine.Compute(60000, salary.Options{BasicPct: 0.50, HRAPct: 0.30})
	assert.NoError(t, err)
	assert.Equal(t, 30000.0, b.BasicSalary)
	assert.Equal(t, 18000.0, b.HRA)
	// special holds the remainder after the residual correction
	assert.Equal(t, 12000.0, b.SpecialAllowance)
}

func TestCompute_OtherDeductions(t *testing.T) {
	engine := newEngine()

	b, err := engine.Compute(50000, salary.Options{OtherDeductions: 1500})
	assert.NoError(t, err)
	assert.Equal(t, 1700.0, b.TotalDeductions)
	assert.Equal(t, 48300.0, b.NetSalary)
}

func TestCompute_Rejections(t *testing.T) {
	engine := newEngine()

	tests := []struct {
		name    string
		gross   float64
		opts    salary.Options
		wantErr error
	}{
		{"zero gross", 0, salary.Options{}, salaryerrors.ErrInvalidGross},
		{"negative gross", -100, salary.Options{}, salaryerrors.ErrInvalidGross},
		{"percentages exceed one", 50000, salary.Options{BasicPct: 0.70, HRAPct: 0.50}, salaryerrors.ErrInvalidPercentage},
		{"negative basic pct", 50000, salary.Options{BasicPct: -0.10, HRAPct: 0.40}, salaryerrors.ErrInvalidPercentage},
		{"negative other allowances", 50000, salary.Options{OtherAllowances: -1}, salaryerrors.ErrNegativeAdjustment},
		{"negative other deductions", 50000, salary.Options{OtherDeductions: -1}, salaryerrors.ErrNegativeAdjustment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Compute(tt.gross, tt.opts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
