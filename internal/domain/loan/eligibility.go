package loan

import (
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Eligibility policy defaults. Each is overridable per jurisdiction through EligibilityPolicy.
var (
	DefaultSalaryMultiple     = decimal.NewFromInt(3)
	DefaultAffordabilityRatio = decimal.RequireFromString("0.40")
)

const (
	DefaultHorizonMonths      = 36
	DefaultCreditScoreCeiling = 850
)

type EligibilityPolicy struct {
	// SalaryMultiple caps the loan at this many annual salaries.
	SalaryMultiple decimal.Decimal
	// AffordabilityRatio is the share of monthly disposable income that may go to repayments.
	AffordabilityRatio decimal.Decimal
	// HorizonMonths converts the affordable instalment into a recommended amount.
	HorizonMonths int
	// CreditScoreCeiling is the score that maps to a full eligibility score of 100.
	CreditScoreCeiling int
}

func DefaultEligibilityPolicy() EligibilityPolicy {
	return EligibilityPolicy{
		SalaryMultiple:     DefaultSalaryMultiple,
		AffordabilityRatio: DefaultAffordabilityRatio,
		HorizonMonths:      DefaultHorizonMonths,
		CreditScoreCeiling: DefaultCreditScoreCeiling,
	}
}

func (p EligibilityPolicy) Validate() error {
	var errs validator.ValidationErrors
	errs.NonNegative("salary_multiple", p.SalaryMultiple)
	errs.NonNegative("affordability_ratio", p.AffordabilityRatio)
	if p.HorizonMonths <= 0 {
		errs.Add("horizon_months", "must be greater than 0")
	}
	if p.CreditScoreCeiling <= 0 {
		errs.Add("credit_score_ceiling", "must be greater than 0")
	}
	return errs.Err()
}

type EligibilityInput struct {
	AnnualSalary            decimal.Decimal
	ExistingLoanAnnualValue decimal.Decimal
	CreditScore             int
}

type Eligibility struct {
	MaxEligibleAmount       decimal.Decimal `json:"max_eligible_amount"`
	MonthlyDisposableIncome decimal.Decimal `json:"monthly_disposable_income"`
	MaxAffordableEMI        decimal.Decimal `json:"max_affordable_emi"`
	EligibilityScore        decimal.Decimal `json:"eligibility_score"`
	RecommendedAmount       decimal.Decimal `json:"recommended_amount"`
}

// Evaluate scores loan affordability. A disposable income at or below zero yields no affordable
// instalment rather than a negative one.
func (p EligibilityPolicy) Evaluate(in EligibilityInput) (Eligibility, error) {
	if err := p.Validate(); err != nil {
		return Eligibility{}, err
	}
	var errs validator.ValidationErrors
	errs.NonNegative("annual_salary", in.AnnualSalary)
	errs.NonNegative("existing_loan_annual_value", in.ExistingLoanAnnualValue)
	if in.CreditScore < 0 {
		errs.Add("credit_score", "must be non-negative")
	}
	if err := errs.Err(); err != nil {
		return Eligibility{}, err
	}

	maxEligible := in.AnnualSalary.Mul(p.SalaryMultiple)
	disposable := in.AnnualSalary.Div(monthsPerYear).Sub(in.ExistingLoanAnnualValue.Div(monthsPerYear))
	emi := decimal.Max(decimal.Zero, disposable.Mul(p.AffordabilityRatio))

	score := decimal.NewFromInt(int64(in.CreditScore)).
		Div(decimal.NewFromInt(int64(p.CreditScoreCeiling))).
		Mul(hundred)
	score = decimal.Min(hundred, score)

	recommended := decimal.Min(maxEligible, emi.Mul(decimal.NewFromInt(int64(p.HorizonMonths))))

	return Eligibility{
		MaxEligibleAmount:       maxEligible.Round(2),
		MonthlyDisposableIncome: disposable.Round(2),
		MaxAffordableEMI:        emi.Round(2),
		EligibilityScore:        score.Round(2),
		RecommendedAmount:       recommended.Round(2),
	}, nil
}
