package loan

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

func TestComputeQuote_Annuity(t *testing.T) {
	q, err := ComputeQuote(dec("10000"), dec("8"), 12)
	require.NoError(t, err)

	assert.Equal(t, "869.88", q.MonthlyPayment.StringFixed(2))
	assert.Equal(t, "10438.61", q.TotalRepayment.StringFixed(2))
	assert.Equal(t, "438.61", q.TotalInterest.StringFixed(2))
}

func TestComputeQuote_LongerTerm(t *testing.T) {
	q, err := ComputeQuote(dec("120000"), dec("12"), 24)
	require.NoError(t, err)

	assert.Equal(t, "5648.82", q.MonthlyPayment.StringFixed(2))
	assert.Equal(t, "135571.60", q.TotalRepayment.StringFixed(2))
}

func TestComputeQuote_ZeroRate(t *testing.T) {
	q, err := ComputeQuote(dec("12000"), decimal.Zero, 12)
	require.NoError(t, err)

	assert.True(t, q.MonthlyPayment.Equal(dec("1000")))
	assert.True(t, q.TotalRepayment.Equal(dec("12000")))
	assert.True(t, q.TotalInterest.IsZero())

	q, err = ComputeQuote(dec("10000"), decimal.Zero, 12)
	require.NoError(t, err)
	assert.True(t, q.MonthlyPayment.Equal(dec("10000").Div(dec("12")).Round(2)))
	assert.Equal(t, "10000.00", q.TotalRepayment.StringFixed(2))
}

func TestComputeQuote_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		term      int
	}{
		{"negative principal", "-1", "8", 12},
		{"negative rate", "1000", "-0.5", 12},
		{"zero term", "1000", "8", 0},
		{"negative term", "1000", "8", -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeQuote(dec(tt.principal), dec(tt.rate), tt.term)
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		})
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(record.LoanStatusPending, record.LoanStatusApproved))
	assert.True(t, CanTransition(record.LoanStatusPending, record.LoanStatusRejected))
	assert.False(t, CanTransition(record.LoanStatusPending, record.LoanStatusPending))
	for _, terminal := range []record.LoanStatus{record.LoanStatusApproved, record.LoanStatusRejected} {
		assert.False(t, CanTransition(terminal, record.LoanStatusApproved))
		assert.False(t, CanTransition(terminal, record.LoanStatusRejected))
		assert.False(t, CanTransition(terminal, record.LoanStatusPending))
	}
}

func TestValidateAgainstType(t *testing.T) {
	personal := record.LoanType{
		Name:            "Personal",
		MaxAmount:       dec("50000"),
		MinRate:         dec("6"),
		MaxRate:         dec("12"),
		MaxTenureMonths: 60,
	}

	assert.NoError(t, ValidateAgainstType(personal, dec("50000"), dec("6"), 60))

	err := ValidateAgainstType(personal, dec("50000.01"), dec("12.5"), 61)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, err.Error(), "principal")
	assert.Contains(t, err.Error(), "interest_rate")
	assert.Contains(t, err.Error(), "tenure_months")
}

func TestEvaluate_Formula(t *testing.T) {
	e, err := DefaultEligibilityPolicy().Evaluate(EligibilityInput{
		AnnualSalary:            dec("60000"),
		ExistingLoanAnnualValue: dec("12000"),
		CreditScore:             680,
	})
	require.NoError(t, err)

	assert.Equal(t, "180000.00", e.MaxEligibleAmount.StringFixed(2))
	assert.Equal(t, "4000.00", e.MonthlyDisposableIncome.StringFixed(2))
	assert.Equal(t, "1600.00", e.MaxAffordableEMI.StringFixed(2))
	assert.Equal(t, "80.00", e.EligibilityScore.StringFixed(2))
	assert.Equal(t, "57600.00", e.RecommendedAmount.StringFixed(2))
}

func TestEvaluate_RecommendedCappedBySalaryMultiple(t *testing.T) {
	policy := DefaultEligibilityPolicy()
	policy.SalaryMultiple = dec("0.5")

	e, err := policy.Evaluate(EligibilityInput{AnnualSalary: dec("60000"), CreditScore: 850})
	require.NoError(t, err)
	assert.Equal(t, "30000.00", e.RecommendedAmount.StringFixed(2))
}

func TestEvaluate_ScoreBounds(t *testing.T) {
	policy := DefaultEligibilityPolicy()
	for score := 0; score <= 1200; score += 25 {
		e, err := policy.Evaluate(EligibilityInput{AnnualSalary: dec("48000"), CreditScore: score})
		require.NoError(t, err)
		assert.False(t, e.EligibilityScore.IsNegative(), "score %d", score)
		assert.True(t, e.EligibilityScore.LessThanOrEqual(dec("100")), "score %d", score)
		if score >= 850 {
			assert.True(t, e.EligibilityScore.Equal(dec("100")), "score %d clamps to 100", score)
		}
	}
}

func TestEvaluate_OverCommittedIncome(t *testing.T) {
	e, err := DefaultEligibilityPolicy().Evaluate(EligibilityInput{
		AnnualSalary:            dec("24000"),
		ExistingLoanAnnualValue: dec("30000"),
		CreditScore:             700,
	})
	require.NoError(t, err)

	assert.True(t, e.MonthlyDisposableIncome.IsNegative())
	assert.True(t, e.MaxAffordableEMI.IsZero())
	assert.True(t, e.RecommendedAmount.IsZero())
}

func TestEvaluate_RejectsInvalidInput(t *testing.T) {
	_, err := DefaultEligibilityPolicy().Evaluate(EligibilityInput{AnnualSalary: dec("-1")})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = DefaultEligibilityPolicy().Evaluate(EligibilityInput{AnnualSalary: dec("1000"), CreditScore: -5})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = EligibilityPolicy{}.Evaluate(EligibilityInput{AnnualSalary: dec("1000")})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestSubmitLoanRequest_Validate(t *testing.T) {
	ok := SubmitLoanRequest{LoanTypeID: "lt-1", Principal: dec("5000"), InterestRate: dec("8"), TenureMonths: 12, Purpose: "Home repair"}
	assert.NoError(t, ok.Validate())

	bad := SubmitLoanRequest{Principal: decimal.Zero, InterestRate: dec("-1")}
	err := bad.Validate()
	require.Error(t, err)
	for _, field := range []string{"loan_type_id", "tenure_months", "purpose", "principal", "interest_rate"} {
		assert.Contains(t, err.Error(), field)
	}
}
