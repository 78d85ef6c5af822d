package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTimeout     = 5 * time.Second
	DefaultRecentLimit = 5
)

// Store is the read side of the record repository the reporter aggregates over.
type Store interface {
	record.EmployeeReader
	record.CompensationReader
	record.ActivityReader
	record.DevelopmentReader
	ListContributionRecords(ctx context.Context, filter record.Filter) ([]record.ContributionRecord, error)
	ListLoanRequests(ctx context.Context, filter record.Filter) ([]record.LoanRequest, error)
}

type Options struct {
	// Timeout bounds every fan-out. Zero means DefaultTimeout.
	Timeout time.Duration
	// RecentLimit is the size of the recent-activity feed. Zero means DefaultRecentLimit.
	RecentLimit int
}

type DashboardServiceImpl struct {
	store  Store
	opts   Options
	logger *slog.Logger
	group  singleflight.Group
}

func NewDashboardService(store Store, opts Options, logger *slog.Logger) dashboard.DashboardService {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = DefaultRecentLimit
	}
	return &DashboardServiceImpl{
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

// sections collects which sections failed during one fan-out. Safe for concurrent use.
type sections struct {
	mu     sync.Mutex
	failed map[string]error
}

func (s *sections) fail(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed == nil {
		s.failed = make(map[string]error)
	}
	if _, ok := s.failed[name]; !ok {
		s.failed[name] = err
	}
}

func (s *sections) ok(name string) bool {
	_, failed := s.failed[name]
	return !failed
}

// names returns the failed sections, ordered as in order.
func (s *sections) names(order ...string) []string {
	out := make([]string, 0, len(s.failed))
	for _, name := range order {
		if !s.ok(name) {
			out = append(out, name)
		}
	}
	return out
}

func (s *DashboardServiceImpl) logDegraded(ctx context.Context, op string, secs *sections, order ...string) {
	for _, name := range order {
		if err, failed := secs.failed[name]; failed {
			s.logger.WarnContext(ctx, "dashboard section degraded",
				slog.String("operation", op),
				slog.String("section", name),
				slog.Any("error", err),
			)
		}
	}
}

// ========== ROLLUP ==========

// GetDashboardRollup reads every source concurrently and aggregates once all reads return.
// Only the caller's own employee record is load-bearing; any other failed read empties its
// section and names it in DegradedSections. Identical concurrent calls share one fan-out, which
// outlives any single caller's cancellation and is bounded by Options.Timeout.
func (s *DashboardServiceImpl) GetDashboardRollup(ctx context.Context, scope identity.Scope, month period.Month) (*dashboard.RollupResponse, error) {
	if scope.EmployeeID == "" || !scope.Role.IsValid() {
		return nil, identity.ErrInvalidScope
	}
	if month.IsZero() {
		return nil, dashboard.ErrPeriodRequired
	}

	ch := s.group.DoChan(rollupKey(scope, month), func() (any, error) {
		return s.rollup(context.WithoutCancel(ctx), scope, month)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*dashboard.RollupResponse), nil
	}
}

func rollupKey(scope identity.Scope, month period.Month) string {
	subs := slices.Clone(scope.SubordinateIDs)
	slices.Sort(subs)
	return fmt.Sprintf("%s|%s|%s|%s", scope.Role, scope.EmployeeID, strings.Join(subs, ","), month)
}

func (s *DashboardServiceImpl) rollup(ctx context.Context, scope identity.Scope, month period.Month) (*dashboard.RollupResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	window := month.Window()
	inScope := scope.EmployeeFilter()
	inMonth := inScope
	inMonth.Window = &window
	pending := func(status string) record.Filter {
		f := inScope
		f.Status = status
		return f
	}
	recent := func(status string) record.Filter {
		f := inScope
		f.Status = status
		f.Limit = s.opts.RecentLimit
		return f
	}

	var (
		secs sections

		salaries      []record.SalaryRecord
		bonuses       []record.BonusRecord
		contributions []record.ContributionRecord

		pendingLeaves        []record.LeaveRequest
		pendingOvertime      []record.OvertimeRecord
		pendingLoans         []record.LoanRequest
		pendingContributions []record.ContributionRecord

		recentAttendance    []record.AttendanceRecord
		recentLeaves        []record.LeaveRequest
		recentTasks         []record.TaskRecord
		recentSalaries      []record.SalaryRecord
		recentBonuses       []record.BonusRecord
		recentContributions []record.ContributionRecord

		employees []record.Employee
	)

	g, gCtx := errgroup.WithContext(ctx)

	// Caller record: load-bearing.
	g.Go(func() error {
		_, err := s.store.GetEmployee(gCtx, scope.EmployeeID)
		return err
	})

	read := func(section string, fn func(ctx context.Context) error) {
		g.Go(func() error {
			if err := fn(gCtx); err != nil {
				secs.fail(section, err)
			}
			return nil
		})
	}

	// 1. Month sums
	read(dashboard.SectionSums, func(ctx context.Context) (err error) {
		salaries, err = s.store.ListSalaryRecords(ctx, inMonth)
		return err
	})
	read(dashboard.SectionSums, func(ctx context.Context) (err error) {
		bonuses, err = s.store.ListBonusRecords(ctx, inMonth)
		return err
	})
	read(dashboard.SectionSums, func(ctx context.Context) (err error) {
		contributions, err = s.store.ListContributionRecords(ctx, inMonth)
		return err
	})

	// 2. Pending counts
	read(dashboard.SectionPendingCounts, func(ctx context.Context) (err error) {
		pendingLeaves, err = s.store.ListLeaveRequests(ctx, pending(string(record.ApprovalPending)))
		return err
	})
	read(dashboard.SectionPendingCounts, func(ctx context.Context) (err error) {
		pendingOvertime, err = s.store.ListOvertimeRecords(ctx, pending(string(record.ApprovalPending)))
		return err
	})
	read(dashboard.SectionPendingCounts, func(ctx context.Context) (err error) {
		pendingLoans, err = s.store.ListLoanRequests(ctx, pending(string(record.LoanStatusPending)))
		return err
	})
	read(dashboard.SectionPendingCounts, func(ctx context.Context) (err error) {
		pendingContributions, err = s.store.ListContributionRecords(ctx, pending(string(record.ContributionPending)))
		return err
	})

	// 3. Recent activity, newest rows of every source
	read(dashboard.SectionRecentActivity, func(ctx context.Context) (err error) {
		recentAttendance, err = s.store.ListAttendance(ctx, recent(""))
		return err
	})
	read(dashboard.SectionRecentActivity, func(ctx context.Context) (err error) {
		recentLeaves, err = s.store.ListLeaveRequests(ctx, recent(""))
		return err
	})
	read(dashboard.SectionRecentActivity, func(ctx context.Context) (err error) {
		recentTasks, err = s.store.ListTasks(ctx, recent(string(record.TaskCompleted)))
		return err
	})
	read(dashboard.SectionRecentActivity, func(ctx context.Context) (err error) {
		recentSalaries, err = s.store.ListSalaryRecords(ctx, recent(""))
		return err
	})
	read(dashboard.SectionRecentActivity, func(ctx context.Context) (err error) {
		recentBonuses, err = s.store.ListBonusRecords(ctx, recent(""))
		return err
	})
	read(dashboard.SectionRecentActivity, func(ctx context.Context) (err error) {
		recentContributions, err = s.store.ListContributionRecords(ctx, recent(""))
		return err
	})

	// 4. Department counts
	read(dashboard.SectionDepartmentCounts, func(ctx context.Context) (err error) {
		employees, err = s.store.ListEmployees(ctx, inScope)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	order := []string{dashboard.SectionSums, dashboard.SectionPendingCounts, dashboard.SectionRecentActivity, dashboard.SectionDepartmentCounts}
	s.logDegraded(ctx, "rollup", &secs, order...)

	resp := &dashboard.RollupResponse{
		Scope:            scopeSummary(scope),
		Period:           month,
		Sums:             zeroSums(),
		RecentActivity:   []dashboard.ActivityEvent{},
		DepartmentCounts: []dashboard.DepartmentCount{},
		DegradedSections: secs.names(order...),
	}

	if secs.ok(dashboard.SectionSums) {
		resp.Sums = dashboard.MonthSums{
			Payroll: dashboard.SumWindow(salaries, window,
				func(r record.SalaryRecord) time.Time { return r.EffectiveDate },
				func(r record.SalaryRecord) decimal.Decimal { return r.TotalSalary }),
			Overtime: dashboard.SumWindow(salaries, window,
				func(r record.SalaryRecord) time.Time { return r.EffectiveDate },
				func(r record.SalaryRecord) decimal.Decimal { return r.OvertimePay }),
			Bonus: dashboard.SumWindow(bonuses, window,
				func(b record.BonusRecord) time.Time { return b.PaidAt },
				func(b record.BonusRecord) decimal.Decimal { return b.Amount }),
			EPF: dashboard.SumWindow(contributions, window,
				func(c record.ContributionRecord) time.Time { return c.AppliedDate },
				func(c record.ContributionRecord) decimal.Decimal { return c.EmployeeEPF.Add(c.EmployerEPF) }),
			ETF: dashboard.SumWindow(contributions, window,
				func(c record.ContributionRecord) time.Time { return c.AppliedDate },
				func(c record.ContributionRecord) decimal.Decimal { return c.ETF }),
		}
	}

	if secs.ok(dashboard.SectionPendingCounts) {
		resp.PendingCounts = dashboard.PendingCounts{
			LeaveApprovals: dashboard.CountWhere(pendingLeaves, func(l record.LeaveRequest) bool {
				return l.Approval == record.ApprovalPending
			}),
			OvertimeApprovals: dashboard.CountWhere(pendingOvertime, func(o record.OvertimeRecord) bool {
				return o.Approval == record.ApprovalPending
			}),
			LoanRequests: dashboard.CountWhere(pendingLoans, func(l record.LoanRequest) bool {
				return l.Status == record.LoanStatusPending
			}),
			Contributions: dashboard.CountWhere(pendingContributions, func(c record.ContributionRecord) bool {
				return c.Status == record.ContributionPending
			}),
		}
	}

	if secs.ok(dashboard.SectionRecentActivity) {
		resp.RecentActivity = dashboard.MergeRecent(s.opts.RecentLimit,
			dashboard.MapEvents(recentAttendance, dashboard.AttendanceEvent),
			dashboard.MapEvents(recentLeaves, dashboard.LeaveEvent),
			dashboard.MapEvents(dashboard.TaskCompletions(recentTasks), dashboard.TaskEvent),
			dashboard.MapEvents(recentSalaries, dashboard.SalaryEvent),
			dashboard.MapEvents(recentBonuses, dashboard.BonusEvent),
			dashboard.MapEvents(recentContributions, dashboard.ContributionEvent),
		)
	}

	if secs.ok(dashboard.SectionDepartmentCounts) {
		resp.DepartmentCounts = dashboard.CountByDepartment(employees)
	}

	return resp, nil
}

func scopeSummary(scope identity.Scope) dashboard.ScopeSummary {
	summary := dashboard.ScopeSummary{EmployeeID: scope.EmployeeID, Role: scope.Role}
	if !scope.SeesEveryone() {
		n := len(scope.EmployeeFilter().EmployeeIDs)
		summary.EmployeeCount = &n
	}
	return summary
}

func zeroSums() dashboard.MonthSums {
	return dashboard.MonthSums{
		Payroll:  decimal.Zero,
		Bonus:    decimal.Zero,
		Overtime: decimal.Zero,
		EPF:      decimal.Zero,
		ETF:      decimal.Zero,
	}
}

// ========== PERFORMANCE ==========

// GetPerformanceSnapshot joins the month's attendance with the current KPI. The employee record is
// load-bearing; attendance and KPI degrade independently.
func (s *DashboardServiceImpl) GetPerformanceSnapshot(ctx context.Context, employeeID string, month period.Month) (*dashboard.PerformanceResponse, error) {
	if month.IsZero() {
		return nil, dashboard.ErrPeriodRequired
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	window := month.Window()
	attendanceFilter := record.ForEmployee(employeeID)
	attendanceFilter.Window = &window
	kpiFilter := record.ForEmployee(employeeID)
	kpiFilter.Limit = 1

	var (
		secs       sections
		attendance []record.AttendanceRecord
		kpis       []record.KPIRecord
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.store.GetEmployee(gCtx, employeeID)
		return err
	})
	g.Go(func() error {
		var err error
		if attendance, err = s.store.ListAttendance(gCtx, attendanceFilter); err != nil {
			secs.fail(dashboard.SectionAttendance, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if kpis, err = s.store.ListKPIRecords(gCtx, kpiFilter); err != nil {
			secs.fail(dashboard.SectionKPI, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	order := []string{dashboard.SectionAttendance, dashboard.SectionKPI}
	s.logDegraded(ctx, "performance", &secs, order...)

	resp := &dashboard.PerformanceResponse{
		EmployeeID:       employeeID,
		Period:           month,
		KPI:              dashboard.CurrentKPI(nil),
		DegradedSections: secs.names(order...),
	}
	if secs.ok(dashboard.SectionAttendance) {
		resp.Attendance = dashboard.SummarizeAttendance(attendance, window)
	}
	if secs.ok(dashboard.SectionKPI) {
		resp.KPI = dashboard.CurrentKPI(kpis)
	}
	return resp, nil
}
