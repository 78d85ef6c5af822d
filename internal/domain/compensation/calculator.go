package compensation

import (
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

func (in PayslipInput) Validate() error {
	var errs validator.ValidationErrors

	errs.NonNegative("base_salary", in.BaseSalary)
	switch in.Unit {
	case "", record.SalaryUnitMonthly, record.SalaryUnitAnnual:
	default:
		errs.Add("unit", "must be monthly or annual")
	}
	errs.NonNegative("overtime_hours", in.OvertimeHours)
	errs.NonNegative("overtime_rate", in.OvertimeRate)
	errs.NonNegative("bonus", in.Bonus)
	for _, a := range in.Allowances {
		errs.NonNegative("allowances."+a.Name, a.Amount)
	}
	errs.NonNegative("deductions.epf_rate", in.Deductions.EPFRate)
	errs.NonNegative("deductions.insurance", in.Deductions.InsuranceFlat)
	errs.NonNegative("deductions.tax_rate", in.Deductions.TaxRate)
	if in.Deductions.TaxFlat != nil {
		errs.NonNegative("deductions.tax", *in.Deductions.TaxFlat)
	}

	return errs.Err()
}

// Calculate derives a payslip. Each line is computed at full precision and rounded once to
// cents; totals are the sums of the rounded lines, so the gross and net identities hold exactly
// on what is shown.
func Calculate(in PayslipInput) (Payslip, error) {
	if err := in.Validate(); err != nil {
		return Payslip{}, err
	}

	monthly := in.BaseSalary
	if in.Unit == record.SalaryUnitAnnual {
		monthly = in.BaseSalary.Div(decimal.NewFromInt(12))
	}

	allowances := make([]Line, 0, len(in.Allowances))
	totalAllowances := decimal.Zero
	for _, a := range in.Allowances {
		amount := a.Amount.Round(moneyPlaces)
		allowances = append(allowances, Line{Name: a.Name, Amount: amount})
		totalAllowances = totalAllowances.Add(amount)
	}

	p := Payslip{
		MonthlySalary:   monthly.Round(moneyPlaces),
		Allowances:      allowances,
		TotalAllowances: totalAllowances,
		OTAmount:        in.OvertimeHours.Mul(in.OvertimeRate).Round(moneyPlaces),
		Bonus:           in.Bonus.Round(moneyPlaces),
	}
	p.GrossSalary = p.MonthlySalary.Add(p.TotalAllowances).Add(p.OTAmount).Add(p.Bonus)

	tax := p.GrossSalary.Mul(in.Deductions.TaxRate).Div(hundred)
	if in.Deductions.TaxFlat != nil {
		tax = *in.Deductions.TaxFlat
	}
	p.Deductions = []Line{
		{Name: DeductionEPF, Amount: monthly.Mul(in.Deductions.EPFRate).Div(hundred).Round(moneyPlaces)},
		{Name: DeductionTax, Amount: tax.Round(moneyPlaces)},
		{Name: DeductionInsurance, Amount: in.Deductions.InsuranceFlat.Round(moneyPlaces)},
	}
	p.TotalDeductions = decimal.Zero
	for _, d := range p.Deductions {
		p.TotalDeductions = p.TotalDeductions.Add(d.Amount)
	}

	p.NetSalary = p.GrossSalary.Sub(p.TotalDeductions)
	if p.NetSalary.IsNegative() {
		p.Warnings = append(p.Warnings, WarningNegativeNet)
	}

	return p, nil
}
