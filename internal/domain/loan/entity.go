package loan

import (
	"fmt"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var (
	one           = decimal.NewFromInt(1)
	hundred       = decimal.NewFromInt(100)
	monthsPerYear = decimal.NewFromInt(12)
	ratePerMonth  = hundred.Mul(monthsPerYear)
)

type Quote struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalRepayment decimal.Decimal `json:"total_repayment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}

// ComputeQuote returns the fixed monthly payment that amortizes principal over termMonths at
// annualRate percent. Totals are derived from the unrounded payment.
func ComputeQuote(principal, annualRate decimal.Decimal, termMonths int) (Quote, error) {
	var errs validator.ValidationErrors
	errs.NonNegative("principal", principal)
	errs.NonNegative("annual_rate", annualRate)
	if termMonths <= 0 {
		errs.Add("term_months", "must be greater than 0")
	}
	if err := errs.Err(); err != nil {
		return Quote{}, err
	}

	n := decimal.NewFromInt(int64(termMonths))
	payment := monthlyPayment(principal, annualRate, n)
	total := payment.Mul(n)

	return Quote{
		MonthlyPayment: payment.Round(2),
		TotalRepayment: total.Round(2),
		TotalInterest:  total.Sub(principal).Round(2),
	}, nil
}

func monthlyPayment(principal, annualRate, n decimal.Decimal) decimal.Decimal {
	monthlyRate := annualRate.Div(ratePerMonth)
	if monthlyRate.IsZero() {
		return principal.Div(n)
	}
	factor := one.Add(monthlyRate).Pow(n)
	return principal.Mul(monthlyRate).Mul(factor).Div(factor.Sub(one))
}

// CanTransition reports whether a loan request may move from one status to another.
// Pending is the only non-terminal status.
func CanTransition(from, to record.LoanStatus) bool {
	if from != record.LoanStatusPending {
		return false
	}
	return to == record.LoanStatusApproved || to == record.LoanStatusRejected
}

// ValidateAgainstType checks a requested loan against its type's limits.
func ValidateAgainstType(t record.LoanType, principal, rate decimal.Decimal, tenureMonths int) error {
	var errs validator.ValidationErrors
	if principal.GreaterThan(t.MaxAmount) {
		errs.Add("principal", fmt.Sprintf("exceeds the maximum amount of %s for %s", t.MaxAmount.StringFixed(2), t.Name))
	}
	if rate.LessThan(t.MinRate) || rate.GreaterThan(t.MaxRate) {
		errs.Add("interest_rate", fmt.Sprintf("must be between %s and %s", t.MinRate, t.MaxRate))
	}
	if tenureMonths > t.MaxTenureMonths {
		errs.Add("tenure_months", fmt.Sprintf("exceeds the maximum tenure of %d months", t.MaxTenureMonths))
	}
	return errs.Err()
}
