package loan

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/loan"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/events"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var monthsPerYear = decimal.NewFromInt(12)

type LoanServiceImpl struct {
	employees record.EmployeeReader
	loans     record.LoanStore
	types     record.LoanTypeReader // may be a cache in front of loans
	policy    loan.EligibilityPolicy
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewLoanService(
	employees record.EmployeeReader,
	loans record.LoanStore,
	types record.LoanTypeReader,
	policy loan.EligibilityPolicy,
	publisher events.Publisher,
	logger *slog.Logger,
) loan.LoanService {
	return &LoanServiceImpl{
		employees: employees,
		loans:     loans,
		types:     types,
		policy:    policy,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ========== CALCULATORS ==========

func (s *LoanServiceImpl) ComputeLoanQuote(ctx context.Context, req loan.QuoteRequest) (loan.Quote, error) {
	return loan.ComputeQuote(req.Principal, req.AnnualRate, req.TermMonths)
}

// GetLoanEligibility scores the employee against the eligibility policy. Existing commitments are
// the annualized instalments of the employee's approved loans.
func (s *LoanServiceImpl) GetLoanEligibility(ctx context.Context, employeeID string) (loan.EligibilityResponse, error) {
	var (
		emp      record.Employee
		approved []record.LoanRequest
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		emp, err = s.employees.GetEmployee(gCtx, employeeID)
		return err
	})
	g.Go(func() error {
		filter := record.ForEmployee(employeeID)
		filter.Status = string(record.LoanStatusApproved)
		var err error
		approved, err = s.loans.ListLoanRequests(gCtx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return loan.EligibilityResponse{}, err
	}

	existing := decimal.Zero
	for _, l := range approved {
		q, err := loan.ComputeQuote(l.Principal, l.InterestRate, l.TenureMonths)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping malformed approved loan", slog.String("loan_id", l.ID), slog.Any("error", err))
			continue
		}
		existing = existing.Add(q.MonthlyPayment.Mul(monthsPerYear))
	}

	score, onFile := 0, emp.CreditScore != nil
	if onFile {
		score = *emp.CreditScore
	}

	annual := emp.AnnualSalary()
	eligibility, err := s.policy.Evaluate(loan.EligibilityInput{
		AnnualSalary:            annual,
		ExistingLoanAnnualValue: existing,
		CreditScore:             score,
	})
	if err != nil {
		return loan.EligibilityResponse{}, err
	}

	return loan.EligibilityResponse{
		EmployeeID:              emp.ID,
		AnnualSalary:            annual.Round(2),
		ExistingLoanAnnualValue: existing.Round(2),
		CreditScore:             score,
		CreditScoreOnFile:       onFile,
		Eligibility:             eligibility,
	}, nil
}

// ========== LOAN TYPES ==========

func (s *LoanServiceImpl) ListLoanTypes(ctx context.Context) ([]loan.LoanTypeResponse, error) {
	types, err := s.types.ListLoanTypes(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]loan.LoanTypeResponse, 0, len(types))
	for _, t := range types {
		resp = append(resp, loan.LoanTypeResponse{
			ID:              t.ID,
			Name:            t.Name,
			MaxAmount:       t.MaxAmount,
			MinRate:         t.MinRate,
			MaxRate:         t.MaxRate,
			MaxTenureMonths: t.MaxTenureMonths,
			Description:     t.Description,
		})
	}
	return resp, nil
}

// ========== LOAN REQUESTS ==========

// ListLoanRequests returns the requests visible to the caller. Managers also see their own.
func (s *LoanServiceImpl) ListLoanRequests(ctx context.Context, scope identity.Scope, status string) ([]loan.LoanRequestResponse, error) {
	switch record.LoanStatus(status) {
	case "", record.LoanStatusPending, record.LoanStatusApproved, record.LoanStatusRejected:
	default:
		return nil, loan.ErrInvalidStatusFilter
	}

	filter := scope.EmployeeFilter()
	if scope.Role == identity.RoleManager {
		filter.EmployeeIDs = append(filter.EmployeeIDs, scope.EmployeeID)
	}
	filter.Status = status

	rows, err := s.loans.ListLoanRequests(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := make([]loan.LoanRequestResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, toResponse(r))
	}
	return resp, nil
}

func (s *LoanServiceImpl) SubmitLoanRequest(ctx context.Context, scope identity.Scope, req loan.SubmitLoanRequest) (loan.LoanRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return loan.LoanRequestResponse{}, err
	}

	applicant, err := s.employees.GetEmployee(ctx, scope.EmployeeID)
	if err != nil {
		return loan.LoanRequestResponse{}, err
	}
	if applicant.Status == record.EmployeeStatusTerminated {
		return loan.LoanRequestResponse{}, loan.ErrApplicantTerminated
	}

	loanType, err := s.types.GetLoanType(ctx, req.LoanTypeID)
	if err != nil {
		return loan.LoanRequestResponse{}, err
	}
	if err := loan.ValidateAgainstType(loanType, req.Principal, req.InterestRate, req.TenureMonths); err != nil {
		return loan.LoanRequestResponse{}, err
	}

	created := record.LoanRequest{
		ID:           uuid.Must(uuid.NewV7()).String(),
		EmployeeID:   applicant.ID,
		LoanTypeID:   loanType.ID,
		Principal:    req.Principal,
		InterestRate: req.InterestRate,
		TenureMonths: req.TenureMonths,
		Purpose:      req.Purpose,
		Status:       record.LoanStatusPending,
		CreatedAt:    s.now(),
	}
	if err := s.loans.CreateLoanRequest(ctx, created); err != nil {
		return loan.LoanRequestResponse{}, err
	}

	s.logger.InfoContext(ctx, "loan request submitted",
		slog.String("loan_id", created.ID),
		slog.String("employee_id", created.EmployeeID),
		slog.String("loan_type_id", created.LoanTypeID),
	)
	return toResponse(created), nil
}

func (s *LoanServiceImpl) ApproveLoan(ctx context.Context, reviewer identity.Scope, loanID, comments string) (loan.LoanRequestResponse, error) {
	return s.decide(ctx, reviewer, loanID, comments, record.LoanStatusApproved)
}

func (s *LoanServiceImpl) RejectLoan(ctx context.Context, reviewer identity.Scope, loanID, comments string) (loan.LoanRequestResponse, error) {
	return s.decide(ctx, reviewer, loanID, comments, record.LoanStatusRejected)
}

// decide reads the request, checks the reviewer's scope and the state machine, then writes the
// decision conditioned on the status it read. A concurrent reviewer that wins first makes this
// write fail as a conflict.
func (s *LoanServiceImpl) decide(ctx context.Context, reviewer identity.Scope, loanID, comments string, to record.LoanStatus) (loan.LoanRequestResponse, error) {
	reviewerID := reviewer.EmployeeID
	if reviewerID == "" {
		return loan.LoanRequestResponse{}, loan.ErrReviewerRequired
	}

	current, err := s.loans.GetLoanRequest(ctx, loanID)
	if err != nil {
		return loan.LoanRequestResponse{}, err
	}
	if current.EmployeeID == reviewerID {
		return loan.LoanRequestResponse{}, loan.ErrSelfReview
	}
	if err := reviewer.Authorize(current.EmployeeID); err != nil {
		return loan.LoanRequestResponse{}, err
	}
	if !loan.CanTransition(current.Status, to) {
		return loan.LoanRequestResponse{}, loan.ErrLoanNotPending
	}

	updated, err := s.loans.TransitionLoanRequest(ctx, record.LoanTransition{
		LoanID:     current.ID,
		From:       current.Status,
		To:         to,
		ReviewerID: reviewerID,
		Comments:   comments,
		At:         s.now(),
	})
	if err != nil {
		return loan.LoanRequestResponse{}, err
	}

	s.logger.InfoContext(ctx, "loan request decided",
		slog.String("loan_id", updated.ID),
		slog.String("from", string(current.Status)),
		slog.String("to", string(updated.Status)),
		slog.String("reviewer_id", reviewerID),
	)

	err = s.publisher.Publish(ctx, events.Event{
		Topic: events.TopicLoanDecided,
		Key:   updated.ID,
		Type:  "loan.decided",
		Payload: map[string]any{
			"loan_id":     updated.ID,
			"employee_id": updated.EmployeeID,
			"status":      updated.Status,
			"reviewer_id": reviewerID,
		},
		OccurredAt: s.now(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to publish loan decision", slog.String("loan_id", updated.ID), slog.Any("error", err))
	}

	return toResponse(updated), nil
}

func toResponse(r record.LoanRequest) loan.LoanRequestResponse {
	resp := loan.LoanRequestResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		LoanTypeID:     r.LoanTypeID,
		Principal:      r.Principal,
		InterestRate:   r.InterestRate,
		TenureMonths:   r.TenureMonths,
		Purpose:        r.Purpose,
		Status:         r.Status,
		ReviewerID:     r.ReviewerID,
		ReviewDate:     r.ReviewDate,
		ReviewComments: r.ReviewComments,
		CreatedAt:      r.CreatedAt,
	}
	if q, err := loan.ComputeQuote(r.Principal, r.InterestRate, r.TenureMonths); err == nil {
		resp.MonthlyPayment = q.MonthlyPayment
	}
	return resp
}
