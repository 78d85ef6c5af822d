package loan

import (
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type QuoteRequest struct {
	Principal  decimal.Decimal `json:"principal"`
	AnnualRate decimal.Decimal `json:"annual_rate"`
	TermMonths int             `json:"term_months"`
}

type EligibilityResponse struct {
	EmployeeID              string          `json:"employee_id"`
	AnnualSalary            decimal.Decimal `json:"annual_salary"`
	ExistingLoanAnnualValue decimal.Decimal `json:"existing_loan_annual_value"`
	CreditScore             int             `json:"credit_score"`
	CreditScoreOnFile       bool            `json:"credit_score_on_file"`
	Eligibility
}

type LoanTypeResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	MaxAmount       decimal.Decimal `json:"max_amount"`
	MinRate         decimal.Decimal `json:"min_rate"`
	MaxRate         decimal.Decimal `json:"max_rate"`
	MaxTenureMonths int             `json:"max_tenure_months"`
	Description     string          `json:"description"`
}

type SubmitLoanRequest struct {
	LoanTypeID   string          `json:"loan_type_id" validate:"required"`
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TenureMonths int             `json:"tenure_months" validate:"gt=0"`
	Purpose      string          `json:"purpose" validate:"required,max=500"`
}

func (r *SubmitLoanRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil && !errors.As(err, &errs) {
		return err
	}
	if !r.Principal.IsPositive() {
		errs.Add("principal", "must be greater than 0")
	}
	errs.NonNegative("interest_rate", r.InterestRate)
	return errs.Err()
}

type DecisionRequest struct {
	Comments string `json:"comments" validate:"max=1000"`
}

type LoanRequestResponse struct {
	ID             string            `json:"id"`
	EmployeeID     string            `json:"employee_id"`
	LoanTypeID     string            `json:"loan_type_id"`
	Principal      decimal.Decimal   `json:"principal"`
	InterestRate   decimal.Decimal   `json:"interest_rate"`
	TenureMonths   int               `json:"tenure_months"`
	Purpose        string            `json:"purpose"`
	Status         record.LoanStatus `json:"status"`
	MonthlyPayment decimal.Decimal   `json:"monthly_payment"`
	ReviewerID     *string           `json:"reviewer_id,omitempty"`
	ReviewDate     *time.Time        `json:"review_date,omitempty"`
	ReviewComments *string           `json:"review_comments,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}
