package loan

import "github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"

var (
	ErrLoanNotPending      = apperror.New(apperror.ErrInvalidTransition, "loan request has already been decided")
	ErrReviewerRequired    = apperror.New(apperror.ErrInvalidInput, "reviewer id is required")
	ErrSelfReview          = apperror.New(apperror.ErrInvalidInput, "reviewers cannot decide their own loan request")
	ErrInvalidStatusFilter = apperror.New(apperror.ErrInvalidInput, "unknown loan status filter")
	ErrApplicantTerminated = apperror.New(apperror.ErrInvalidInput, "terminated employees cannot apply for loans")
)
