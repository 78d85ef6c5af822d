package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
)

// Repository is an in-process record.Repository. It is safe for concurrent use.
type Repository struct {
	mu sync.RWMutex

	employees     []record.Employee
	salaries      []record.SalaryRecord
	bonuses       []record.BonusRecord
	overtime      []record.OvertimeRecord
	contributions []record.ContributionRecord
	loanTypes     []record.LoanType
	loans         []record.LoanRequest
	promotions    []record.PromotionRecord
	kpis          []record.KPIRecord
	trainings     []record.TrainingAssignment
	attendance    []record.AttendanceRecord
	leaves        []record.LeaveRequest
	tasks         []record.TaskRecord

	failures map[string]error
	calls    map[string]int
}

var _ record.Repository = (*Repository)(nil)

func NewRepository() *Repository {
	return &Repository{
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

// Fail makes every later call of the named method return err wrapped as an upstream failure.
// A nil err clears the injected failure.
func (r *Repository) Fail(method string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.failures, method)
		return
	}
	r.failures[method] = err
}

// Calls returns how many times the named method has been invoked.
func (r *Repository) Calls(method string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.calls[method]
}

// enter records the call and returns the injected failure, if any. Callers hold r.mu.
func (r *Repository) enter(method string) error {
	r.calls[method]++
	if err, ok := r.failures[method]; ok {
		return apperror.Upstream(method, err)
	}
	return nil
}

// read runs fn under the read lock after bookkeeping the call.
func (r *Repository) read(method string, fn func() error) error {
	r.mu.Lock()
	err := r.enter(method)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn()
}

func (r *Repository) write(method string, fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter(method); err != nil {
		return err
	}
	return fn()
}

// selectRows applies a filter: employee scope, window on ts, status, then newest-first limit.
func selectRows[T any](rows []T, f record.Filter, employee func(T) string, ts func(T) time.Time, status func(T) string) []T {
	return selectRowsBy(rows, f, employee, ts, func(a, b T) int { return ts(a).Compare(ts(b)) }, status)
}

// selectRowsBy is selectRows with a recency order separate from the window column.
func selectRowsBy[T any](rows []T, f record.Filter, employee func(T) string, ts func(T) time.Time, recency func(a, b T) int, status func(T) string) []T {
	out := make([]T, 0)
	if f.ScopesNobody() {
		return out
	}
	for _, row := range rows {
		if !f.MatchesEmployee(employee(row)) {
			continue
		}
		if f.Window != nil && !f.Window.Contains(ts(row)) {
			continue
		}
		if f.Status != "" && status != nil && status(row) != f.Status {
			continue
		}
		out = append(out, row)
	}

	if f.Limit > 0 {
		slices.SortStableFunc(out, func(a, b T) int { return recency(b, a) })
		if len(out) > f.Limit {
			out = out[:f.Limit]
		}
	} else {
		slices.SortStableFunc(out, recency)
	}
	return out
}

// ========== SEEDING ==========

func (r *Repository) AddEmployees(rows ...record.Employee) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees = append(r.employees, rows...)
}

func (r *Repository) AddSalaryRecords(rows ...record.SalaryRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.salaries = append(r.salaries, rows...)
}

func (r *Repository) AddBonusRecords(rows ...record.BonusRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bonuses = append(r.bonuses, rows...)
}

func (r *Repository) AddOvertimeRecords(rows ...record.OvertimeRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overtime = append(r.overtime, rows...)
}

func (r *Repository) AddContributionRecords(rows ...record.ContributionRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contributions = append(r.contributions, rows...)
}

func (r *Repository) AddLoanTypes(rows ...record.LoanType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loanTypes = append(r.loanTypes, rows...)
}

func (r *Repository) AddLoanRequests(rows ...record.LoanRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loans = append(r.loans, rows...)
}

func (r *Repository) AddPromotions(rows ...record.PromotionRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.promotions = append(r.promotions, rows...)
}

func (r *Repository) AddKPIRecords(rows ...record.KPIRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kpis = append(r.kpis, rows...)
}

func (r *Repository) AddTrainingAssignments(rows ...record.TrainingAssignment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trainings = append(r.trainings, rows...)
}

func (r *Repository) AddAttendance(rows ...record.AttendanceRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attendance = append(r.attendance, rows...)
}

func (r *Repository) AddLeaveRequests(rows ...record.LeaveRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaves = append(r.leaves, rows...)
}

func (r *Repository) AddTasks(rows ...record.TaskRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, rows...)
}

// ========== EMPLOYEES ==========

func (r *Repository) GetEmployee(ctx context.Context, id string) (record.Employee, error) {
	var out record.Employee
	err := r.read("GetEmployee", func() error {
		for _, e := range r.employees {
			if e.ID == id {
				out = e
				return nil
			}
		}
		return record.ErrEmployeeNotFound
	})
	return out, err
}

func (r *Repository) ListEmployees(ctx context.Context, filter record.Filter) ([]record.Employee, error) {
	var out []record.Employee
	err := r.read("ListEmployees", func() error {
		out = selectRows(r.employees, filter,
			func(e record.Employee) string { return e.ID },
			func(e record.Employee) time.Time { return e.CreatedAt },
			func(e record.Employee) string { return string(e.Status) })
		return nil
	})
	return out, err
}

// ========== COMPENSATION ==========

func (r *Repository) ListSalaryRecords(ctx context.Context, filter record.Filter) ([]record.SalaryRecord, error) {
	var out []record.SalaryRecord
	err := r.read("ListSalaryRecords", func() error {
		out = selectRowsBy(r.salaries, filter,
			func(s record.SalaryRecord) string { return s.EmployeeID },
			func(s record.SalaryRecord) time.Time { return s.EffectiveDate },
			func(a, b record.SalaryRecord) int {
				if c := a.EffectiveDate.Compare(b.EffectiveDate); c != 0 {
					return c
				}
				return a.CreatedAt.Compare(b.CreatedAt)
			},
			nil)
		return nil
	})
	return out, err
}

func (r *Repository) ListBonusRecords(ctx context.Context, filter record.Filter) ([]record.BonusRecord, error) {
	var out []record.BonusRecord
	err := r.read("ListBonusRecords", func() error {
		out = selectRows(r.bonuses, filter,
			func(b record.BonusRecord) string { return b.EmployeeID },
			func(b record.BonusRecord) time.Time { return b.PaidAt },
			nil)
		return nil
	})
	return out, err
}

func (r *Repository) ListOvertimeRecords(ctx context.Context, filter record.Filter) ([]record.OvertimeRecord, error) {
	var out []record.OvertimeRecord
	err := r.read("ListOvertimeRecords", func() error {
		out = selectRows(r.overtime, filter,
			func(o record.OvertimeRecord) string { return o.EmployeeID },
			func(o record.OvertimeRecord) time.Time { return o.WorkDate },
			func(o record.OvertimeRecord) string { return string(o.Approval) })
		return nil
	})
	return out, err
}

func (r *Repository) SalaryRecordExists(ctx context.Context, employeeID string, month period.Month) (bool, error) {
	var exists bool
	err := r.read("SalaryRecordExists", func() error {
		exists = slices.ContainsFunc(r.salaries, func(s record.SalaryRecord) bool {
			return s.EmployeeID == employeeID && s.Period == month
		})
		return nil
	})
	return exists, err
}

func (r *Repository) InsertSalaryRecordIfAbsent(ctx context.Context, rec record.SalaryRecord) (bool, error) {
	var inserted bool
	err := r.write("InsertSalaryRecordIfAbsent", func() error {
		if slices.ContainsFunc(r.salaries, func(s record.SalaryRecord) bool {
			return s.EmployeeID == rec.EmployeeID && s.Period == rec.Period
		}) {
			return nil
		}
		r.salaries = append(r.salaries, rec)
		inserted = true
		return nil
	})
	return inserted, err
}

// ========== CONTRIBUTIONS ==========

func (r *Repository) ListContributionRecords(ctx context.Context, filter record.Filter) ([]record.ContributionRecord, error) {
	var out []record.ContributionRecord
	err := r.read("ListContributionRecords", func() error {
		out = selectRows(r.contributions, filter,
			func(c record.ContributionRecord) string { return c.EmployeeID },
			func(c record.ContributionRecord) time.Time { return c.AppliedDate },
			func(c record.ContributionRecord) string { return string(c.Status) })
		return nil
	})
	return out, err
}

func (r *Repository) ContributionExists(ctx context.Context, employeeID string, month period.Month) (bool, error) {
	var exists bool
	err := r.read("ContributionExists", func() error {
		exists = slices.ContainsFunc(r.contributions, func(c record.ContributionRecord) bool {
			return c.EmployeeID == employeeID && c.Period == month
		})
		return nil
	})
	return exists, err
}

func (r *Repository) InsertContributionIfAbsent(ctx context.Context, rec record.ContributionRecord) (bool, error) {
	var inserted bool
	err := r.write("InsertContributionIfAbsent", func() error {
		if slices.ContainsFunc(r.contributions, func(c record.ContributionRecord) bool {
			return c.EmployeeID == rec.EmployeeID && c.Period == rec.Period
		}) {
			return nil
		}
		r.contributions = append(r.contributions, rec)
		inserted = true
		return nil
	})
	return inserted, err
}

func (r *Repository) MarkContributionsPaid(ctx context.Context, month period.Month) (int64, error) {
	var moved int64
	err := r.write("MarkContributionsPaid", func() error {
		for i := range r.contributions {
			c := &r.contributions[i]
			if c.Period == month && c.Status == record.ContributionPending {
				c.Status = record.ContributionPaid
				moved++
			}
		}
		return nil
	})
	return moved, err
}

// ========== LOANS ==========

func (r *Repository) GetLoanType(ctx context.Context, id string) (record.LoanType, error) {
	var out record.LoanType
	err := r.read("GetLoanType", func() error {
		for _, t := range r.loanTypes {
			if t.ID == id {
				out = t
				return nil
			}
		}
		return record.ErrLoanTypeNotFound
	})
	return out, err
}

func (r *Repository) ListLoanTypes(ctx context.Context) ([]record.LoanType, error) {
	var out []record.LoanType
	err := r.read("ListLoanTypes", func() error {
		out = slices.Clone(r.loanTypes)
		slices.SortFunc(out, func(a, b record.LoanType) int {
			if a.Name < b.Name {
				return -1
			}
			if a.Name > b.Name {
				return 1
			}
			return 0
		})
		return nil
	})
	return out, err
}

func (r *Repository) GetLoanRequest(ctx context.Context, id string) (record.LoanRequest, error) {
	var out record.LoanRequest
	err := r.read("GetLoanRequest", func() error {
		for _, l := range r.loans {
			if l.ID == id {
				out = l
				return nil
			}
		}
		return record.ErrLoanRequestNotFound
	})
	return out, err
}

func (r *Repository) ListLoanRequests(ctx context.Context, filter record.Filter) ([]record.LoanRequest, error) {
	var out []record.LoanRequest
	err := r.read("ListLoanRequests", func() error {
		out = selectRows(r.loans, filter,
			func(l record.LoanRequest) string { return l.EmployeeID },
			func(l record.LoanRequest) time.Time { return l.CreatedAt },
			func(l record.LoanRequest) string { return string(l.Status) })
		return nil
	})
	return out, err
}

func (r *Repository) CreateLoanRequest(ctx context.Context, req record.LoanRequest) error {
	return r.write("CreateLoanRequest", func() error {
		r.loans = append(r.loans, req)
		return nil
	})
}

// TransitionLoanRequest checks the expected status and writes the decision under one lock.
func (r *Repository) TransitionLoanRequest(ctx context.Context, t record.LoanTransition) (record.LoanRequest, error) {
	var out record.LoanRequest
	err := r.write("TransitionLoanRequest", func() error {
		for i := range r.loans {
			l := &r.loans[i]
			if l.ID != t.LoanID {
				continue
			}
			if l.Status != t.From {
				return record.ErrLoanStatusConflict
			}
			reviewer, comments, at := t.ReviewerID, t.Comments, t.At
			l.Status = t.To
			l.ReviewerID = &reviewer
			l.ReviewComments = &comments
			l.ReviewDate = &at
			out = *l
			return nil
		}
		return record.ErrLoanRequestNotFound
	})
	return out, err
}

// ========== ACTIVITY ==========

func (r *Repository) ListAttendance(ctx context.Context, filter record.Filter) ([]record.AttendanceRecord, error) {
	var out []record.AttendanceRecord
	err := r.read("ListAttendance", func() error {
		out = selectRowsBy(r.attendance, filter,
			func(a record.AttendanceRecord) string { return a.EmployeeID },
			func(a record.AttendanceRecord) time.Time { return a.Date },
			func(a, b record.AttendanceRecord) int { return a.MarkedAt.Compare(b.MarkedAt) },
			func(a record.AttendanceRecord) string { return string(a.Status) })
		return nil
	})
	return out, err
}

func (r *Repository) ListLeaveRequests(ctx context.Context, filter record.Filter) ([]record.LeaveRequest, error) {
	var out []record.LeaveRequest
	err := r.read("ListLeaveRequests", func() error {
		out = selectRows(r.leaves, filter,
			func(l record.LeaveRequest) string { return l.EmployeeID },
			func(l record.LeaveRequest) time.Time { return l.UpdatedAt },
			func(l record.LeaveRequest) string { return string(l.Approval) })
		return nil
	})
	return out, err
}

func (r *Repository) ListTasks(ctx context.Context, filter record.Filter) ([]record.TaskRecord, error) {
	var out []record.TaskRecord
	err := r.read("ListTasks", func() error {
		out = selectRows(r.tasks, filter,
			func(t record.TaskRecord) string { return t.EmployeeID },
			func(t record.TaskRecord) time.Time { return t.UpdatedAt },
			func(t record.TaskRecord) string { return string(t.Status) })
		return nil
	})
	return out, err
}

// ========== DEVELOPMENT ==========

func (r *Repository) ListPromotions(ctx context.Context, filter record.Filter) ([]record.PromotionRecord, error) {
	var out []record.PromotionRecord
	err := r.read("ListPromotions", func() error {
		out = selectRows(r.promotions, filter,
			func(p record.PromotionRecord) string { return p.EmployeeID },
			func(p record.PromotionRecord) time.Time { return p.PromotionDate },
			nil)
		return nil
	})
	return out, err
}

func (r *Repository) ListKPIRecords(ctx context.Context, filter record.Filter) ([]record.KPIRecord, error) {
	var out []record.KPIRecord
	err := r.read("ListKPIRecords", func() error {
		out = selectRows(r.kpis, filter,
			func(k record.KPIRecord) string { return k.EmployeeID },
			func(k record.KPIRecord) time.Time { return k.CalculatedAt },
			nil)
		return nil
	})
	return out, err
}

func (r *Repository) ListTrainingAssignments(ctx context.Context, filter record.Filter) ([]record.TrainingAssignment, error) {
	var out []record.TrainingAssignment
	err := r.read("ListTrainingAssignments", func() error {
		out = selectRows(r.trainings, filter,
			func(t record.TrainingAssignment) string { return t.EmployeeID },
			func(t record.TrainingAssignment) time.Time { return t.StartTime },
			nil)
		return nil
	})
	return out, err
}

// ========== TRANSACTIONS ==========

// WithinTransaction runs fn directly. Individual writes are atomic; a failing fn does not roll back
// writes it already made.
func (r *Repository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
