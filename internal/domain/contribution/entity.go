package contribution

import (
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Statutory rates in force when the service was written, in percent of salary.
// Deployments override them through configuration.
var (
	DefaultEmployeeEPFRate = decimal.NewFromInt(8)
	DefaultEmployerEPFRate = decimal.NewFromInt(8)
	DefaultETFRate         = decimal.NewFromFloat(2.5)
)

var hundred = decimal.NewFromInt(100)

// RateTable holds contribution rates as percentages of salary.
type RateTable struct {
	EmployeeEPFRate decimal.Decimal `json:"employee_epf_rate"`
	EmployerEPFRate decimal.Decimal `json:"employer_epf_rate"`
	ETFRate         decimal.Decimal `json:"etf_rate"`
}

func DefaultRateTable() RateTable {
	return RateTable{
		EmployeeEPFRate: DefaultEmployeeEPFRate,
		EmployerEPFRate: DefaultEmployerEPFRate,
		ETFRate:         DefaultETFRate,
	}
}

func (r RateTable) Validate() error {
	var errs validator.ValidationErrors
	errs.NonNegative("employee_epf_rate", r.EmployeeEPFRate)
	errs.NonNegative("employer_epf_rate", r.EmployerEPFRate)
	errs.NonNegative("etf_rate", r.ETFRate)
	return errs.Err()
}

type Contribution struct {
	EPFEmployee decimal.Decimal `json:"epf_employee"`
	EPFEmployer decimal.Decimal `json:"epf_employer"`
	ETF         decimal.Decimal `json:"etf"`
}

// Compute applies the rate table to salary. Each amount is rounded to cents only on the way out.
func Compute(salary decimal.Decimal, rates RateTable) (Contribution, error) {
	var errs validator.ValidationErrors
	errs.NonNegative("salary", salary)
	if err := errs.Err(); err != nil {
		return Contribution{}, err
	}
	if err := rates.Validate(); err != nil {
		return Contribution{}, err
	}

	return Contribution{
		EPFEmployee: salary.Mul(rates.EmployeeEPFRate).Div(hundred).Round(2),
		EPFEmployer: salary.Mul(rates.EmployerEPFRate).Div(hundred).Round(2),
		ETF:         salary.Mul(rates.ETFRate).Div(hundred).Round(2),
	}, nil
}
