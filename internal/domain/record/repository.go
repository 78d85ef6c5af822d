package record

import (
	"context"
	"slices"

	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
)

// Filter scopes a list query. Reads never fail for "no rows"; they return an empty slice.
type Filter struct {
	// EmployeeIDs restricts rows to these employees. Nil means every employee, an empty non-nil slice means none.
	EmployeeIDs []string
	// Window restricts rows by the record's own timestamp.
	Window *period.Window
	// Status matches the status or approval column when set.
	Status string
	// Limit > 0 returns at most Limit rows, most recent first.
	Limit int
}

// ForEmployee scopes a filter to a single employee.
func ForEmployee(id string) Filter {
	return Filter{EmployeeIDs: []string{id}}
}

// MatchesEmployee reports whether id falls inside the employee scope.
func (f Filter) MatchesEmployee(id string) bool {
	if f.EmployeeIDs == nil {
		return true
	}
	return slices.Contains(f.EmployeeIDs, id)
}

// ScopesNobody reports whether the filter can never match a row.
func (f Filter) ScopesNobody() bool {
	return f.EmployeeIDs != nil && len(f.EmployeeIDs) == 0
}

type EmployeeReader interface {
	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context, filter Filter) ([]Employee, error)
}

type CompensationReader interface {
	ListSalaryRecords(ctx context.Context, filter Filter) ([]SalaryRecord, error)
	ListBonusRecords(ctx context.Context, filter Filter) ([]BonusRecord, error)
	ListOvertimeRecords(ctx context.Context, filter Filter) ([]OvertimeRecord, error)
}

// SalaryWriter persists pay runs. Inserts are guarded by a uniqueness check on employee and period.
type SalaryWriter interface {
	SalaryRecordExists(ctx context.Context, employeeID string, month period.Month) (bool, error)
	// InsertSalaryRecordIfAbsent reports false when a record for the same employee and period already exists.
	InsertSalaryRecordIfAbsent(ctx context.Context, rec SalaryRecord) (bool, error)
}

type ContributionStore interface {
	ListContributionRecords(ctx context.Context, filter Filter) ([]ContributionRecord, error)
	ContributionExists(ctx context.Context, employeeID string, month period.Month) (bool, error)
	// InsertContributionIfAbsent reports false when a record for the same employee and period already exists.
	InsertContributionIfAbsent(ctx context.Context, rec ContributionRecord) (bool, error)
	// MarkContributionsPaid moves pending records of the period to paid and returns how many moved.
	MarkContributionsPaid(ctx context.Context, month period.Month) (int64, error)
}

type LoanTypeReader interface {
	GetLoanType(ctx context.Context, id string) (LoanType, error)
	ListLoanTypes(ctx context.Context) ([]LoanType, error)
}

type LoanStore interface {
	LoanTypeReader
	GetLoanRequest(ctx context.Context, id string) (LoanRequest, error)
	ListLoanRequests(ctx context.Context, filter Filter) ([]LoanRequest, error)
	CreateLoanRequest(ctx context.Context, req LoanRequest) error
	// TransitionLoanRequest applies t only if the stored status still equals t.From.
	// It returns ErrLoanStatusConflict when the guard fails and ErrLoanRequestNotFound when the row is missing.
	TransitionLoanRequest(ctx context.Context, t LoanTransition) (LoanRequest, error)
}

type ActivityReader interface {
	ListAttendance(ctx context.Context, filter Filter) ([]AttendanceRecord, error)
	ListLeaveRequests(ctx context.Context, filter Filter) ([]LeaveRequest, error)
	ListTasks(ctx context.Context, filter Filter) ([]TaskRecord, error)
}

type DevelopmentReader interface {
	ListPromotions(ctx context.Context, filter Filter) ([]PromotionRecord, error)
	ListKPIRecords(ctx context.Context, filter Filter) ([]KPIRecord, error)
	ListTrainingAssignments(ctx context.Context, filter Filter) ([]TrainingAssignment, error)
}

// Transactor runs fn inside a single storage transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repository is the typed record store the computation core reads from and writes to.
type Repository interface {
	EmployeeReader
	CompensationReader
	SalaryWriter
	ContributionStore
	LoanStore
	ActivityReader
	DevelopmentReader
	Transactor
}
