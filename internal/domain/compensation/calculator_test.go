package compensation

import (
	"testing"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func scenarioInput() PayslipInput {
	tax := dec("300")
	return PayslipInput{
		BaseSalary: dec("3000"),
		Unit:       record.SalaryUnitMonthly,
		Allowances: []Line{
			{Name: "transport", Amount: dec("200")},
			{Name: "meal", Amount: dec("150")},
			{Name: "medical", Amount: dec("100")},
		},
		OvertimeHours: dec("10"),
		OvertimeRate:  dec("15"),
		Bonus:         dec("500"),
		Deductions: DeductionSchedule{
			EPFRate:       dec("8"),
			InsuranceFlat: dec("75"),
			TaxFlat:       &tax,
		},
	}
}

func TestCalculate_Scenario(t *testing.T) {
	p, err := Calculate(scenarioInput())
	require.NoError(t, err)

	assertMoney(t, "3000", p.MonthlySalary, "monthly")
	assertMoney(t, "450", p.TotalAllowances, "allowances")
	assertMoney(t, "150", p.OTAmount, "ot")
	assertMoney(t, "500", p.Bonus, "bonus")
	assertMoney(t, "4100", p.GrossSalary, "gross")
	assertMoney(t, "615", p.TotalDeductions, "deductions")
	assertMoney(t, "3485", p.NetSalary, "net")
	assert.Empty(t, p.Warnings)

	byName := map[string]decimal.Decimal{}
	for _, d := range p.Deductions {
		byName[d.Name] = d.Amount
	}
	assertMoney(t, "240", byName[DeductionEPF], "epf")
	assertMoney(t, "300", byName[DeductionTax], "tax")
	assertMoney(t, "75", byName[DeductionInsurance], "insurance")
}

func TestCalculate_Identities(t *testing.T) {
	tests := []struct {
		name string
		in   PayslipInput
	}{
		{"scenario", scenarioInput()},
		{"zero allowance zero bonus", PayslipInput{BaseSalary: dec("2500"), Deductions: DeductionSchedule{EPFRate: dec("8")}}},
		{"everything zero", PayslipInput{}},
		{"annual salary with tax rate", PayslipInput{
			BaseSalary:    dec("100000"),
			Unit:          record.SalaryUnitAnnual,
			OvertimeHours: dec("3.333"),
			OvertimeRate:  dec("17.77"),
			Deductions:    DeductionSchedule{EPFRate: dec("8"), TaxRate: dec("12.5"), InsuranceFlat: dec("33.335")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Calculate(tt.in)
			require.NoError(t, err)

			gross := p.MonthlySalary.Add(p.TotalAllowances).Add(p.OTAmount).Add(p.Bonus)
			assert.True(t, gross.Equal(p.GrossSalary), "gross identity")
			assert.True(t, p.GrossSalary.Sub(p.TotalDeductions).Equal(p.NetSalary), "net identity")
			for _, v := range []decimal.Decimal{p.MonthlySalary, p.TotalAllowances, p.OTAmount, p.Bonus, p.GrossSalary, p.TotalDeductions} {
				assert.False(t, v.IsNegative())
				assert.LessOrEqual(t, -v.Exponent(), int32(2), "rounded to cents")
			}
		})
	}
}

func TestCalculate_AnnualUnit(t *testing.T) {
	p, err := Calculate(PayslipInput{BaseSalary: dec("36000"), Unit: record.SalaryUnitAnnual})
	require.NoError(t, err)
	assertMoney(t, "3000", p.MonthlySalary, "monthly")
	assertMoney(t, "3000", p.NetSalary, "net")
}

func TestCalculate_TaxRateOnGross(t *testing.T) {
	p, err := Calculate(PayslipInput{
		BaseSalary: dec("4000"),
		Deductions: DeductionSchedule{TaxRate: dec("10")},
	})
	require.NoError(t, err)
	assertMoney(t, "400", p.Deductions[1].Amount, "tax")
	assertMoney(t, "3600", p.NetSalary, "net")
}

func TestCalculate_NegativeNetIsReported(t *testing.T) {
	tax := dec("5000")
	p, err := Calculate(PayslipInput{BaseSalary: dec("1000"), Deductions: DeductionSchedule{TaxFlat: &tax}})
	require.NoError(t, err)

	assertMoney(t, "-4000", p.NetSalary, "net")
	assert.Equal(t, []string{WarningNegativeNet}, p.Warnings)
}

func TestCalculate_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		in    PayslipInput
		field string
	}{
		{"negative base", PayslipInput{BaseSalary: dec("-1")}, "base_salary"},
		{"negative hours", PayslipInput{BaseSalary: dec("1000"), OvertimeHours: dec("-2")}, "overtime_hours"},
		{"negative allowance", PayslipInput{Allowances: []Line{{Name: "meal", Amount: dec("-5")}}}, "allowances.meal"},
		{"unknown unit", PayslipInput{Unit: "weekly"}, "unit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
