package compensation

import (
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/shopspring/decimal"
)

// WarningNegativeNet flags a payslip whose deductions exceed gross pay. It is reported, never clamped.
const WarningNegativeNet = "negative_net"

const (
	DeductionEPF       = "epf"
	DeductionTax       = "tax"
	DeductionInsurance = "insurance"
)

var hundred = decimal.NewFromInt(100)

// Line is a named amount on a payslip.
type Line struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// DeductionSchedule describes statutory and flat deductions. Rates are percentages.
type DeductionSchedule struct {
	// EPFRate applies to the monthly basic salary.
	EPFRate       decimal.Decimal
	InsuranceFlat decimal.Decimal
	// TaxRate applies to gross salary and is ignored when TaxFlat is set.
	TaxRate decimal.Decimal
	TaxFlat *decimal.Decimal
}

// Policy is the configured allowance and deduction schedule applied to every payslip.
type Policy struct {
	Allowances []Line
	Deductions DeductionSchedule
}

// PayslipInput is the raw compensation data for one employee and one period.
// Zero values mean "none"; they are never replaced with placeholders.
type PayslipInput struct {
	BaseSalary    decimal.Decimal
	Unit          record.SalaryUnit
	Allowances    []Line
	OvertimeHours decimal.Decimal
	OvertimeRate  decimal.Decimal
	Bonus         decimal.Decimal
	Deductions    DeductionSchedule
}

type Payslip struct {
	MonthlySalary   decimal.Decimal `json:"monthly_salary"`
	Allowances      []Line          `json:"allowances"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	OTAmount        decimal.Decimal `json:"ot_amount"`
	Bonus           decimal.Decimal `json:"bonus"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	Deductions      []Line          `json:"deductions"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	Warnings        []string        `json:"warnings,omitempty"`
}
