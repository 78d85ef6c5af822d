package record

import "github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"

var (
	ErrEmployeeNotFound    = apperror.New(apperror.ErrNotFound, "employee not found")
	ErrLoanTypeNotFound    = apperror.New(apperror.ErrNotFound, "loan type not found")
	ErrLoanRequestNotFound = apperror.New(apperror.ErrNotFound, "loan request not found")
	// ErrLoanStatusConflict is returned when a conditional loan update finds the row no longer in the expected status.
	ErrLoanStatusConflict = apperror.New(apperror.ErrInvalidTransition, "loan request status changed concurrently")
)
