package loan

import (
	"context"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
)

type LoanService interface {
	ComputeLoanQuote(ctx context.Context, req QuoteRequest) (Quote, error)
	GetLoanEligibility(ctx context.Context, employeeID string) (EligibilityResponse, error)
	ListLoanTypes(ctx context.Context) ([]LoanTypeResponse, error)
	ListLoanRequests(ctx context.Context, scope identity.Scope, status string) ([]LoanRequestResponse, error)
	SubmitLoanRequest(ctx context.Context, scope identity.Scope, req SubmitLoanRequest) (LoanRequestResponse, error)
	// ApproveLoan and RejectLoan are the only mutators of a loan request's status.
	// Both fail with an InvalidTransition error unless the request is still pending, and with
	// identity.ErrAccessDenied when the applicant is outside the reviewer's scope.
	ApproveLoan(ctx context.Context, reviewer identity.Scope, loanID, comments string) (LoanRequestResponse, error)
	RejectLoan(ctx context.Context, reviewer identity.Scope, loanID, comments string) (LoanRequestResponse, error)
}
