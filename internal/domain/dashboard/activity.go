package dashboard

import (
	"fmt"
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
)

// ActivityKind discriminates the ActivityEvent variants.
type ActivityKind string

const (
	KindAttendanceMarked    ActivityKind = "attendance_marked"
	KindLeaveStatusChanged  ActivityKind = "leave_status_changed"
	KindTaskCompleted       ActivityKind = "task_completed"
	KindSalaryProcessed     ActivityKind = "salary_processed"
	KindBonusPaid           ActivityKind = "bonus_paid"
	KindContributionApplied ActivityKind = "contribution_applied"
)

// ActivityEvent is a derived, never persisted, entry of the recent-activity feed.
type ActivityEvent struct {
	ID          string       `json:"id"`
	Kind        ActivityKind `json:"kind"`
	EmployeeID  string       `json:"employee_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
}

func AttendanceEvent(a record.AttendanceRecord) ActivityEvent {
	return ActivityEvent{
		ID:          a.ID,
		Kind:        KindAttendanceMarked,
		EmployeeID:  a.EmployeeID,
		Title:       "Attendance marked",
		Description: fmt.Sprintf("Marked %s for %s", a.Status, a.Date.Format(time.DateOnly)),
		Timestamp:   a.MarkedAt,
	}
}

func LeaveEvent(l record.LeaveRequest) ActivityEvent {
	return ActivityEvent{
		ID:          l.ID,
		Kind:        KindLeaveStatusChanged,
		EmployeeID:  l.EmployeeID,
		Title:       "Leave " + string(l.Approval),
		Description: fmt.Sprintf("%s leave %s to %s", l.LeaveType, l.StartDate.Format(time.DateOnly), l.EndDate.Format(time.DateOnly)),
		Timestamp:   l.UpdatedAt,
	}
}

func TaskEvent(t record.TaskRecord) ActivityEvent {
	return ActivityEvent{
		ID:          t.ID,
		Kind:        KindTaskCompleted,
		EmployeeID:  t.EmployeeID,
		Title:       "Task completed",
		Description: t.Title,
		Timestamp:   t.UpdatedAt,
	}
}

func SalaryEvent(s record.SalaryRecord) ActivityEvent {
	return ActivityEvent{
		ID:          s.ID,
		Kind:        KindSalaryProcessed,
		EmployeeID:  s.EmployeeID,
		Title:       "Salary processed",
		Description: fmt.Sprintf("Net salary %s for %s", s.TotalSalary.StringFixed(2), s.Period),
		Timestamp:   s.EffectiveDate,
	}
}

func BonusEvent(b record.BonusRecord) ActivityEvent {
	return ActivityEvent{
		ID:          b.ID,
		Kind:        KindBonusPaid,
		EmployeeID:  b.EmployeeID,
		Title:       "Bonus paid",
		Description: fmt.Sprintf("%s: %s", b.Reason, b.Amount.StringFixed(2)),
		Timestamp:   b.PaidAt,
	}
}

func ContributionEvent(c record.ContributionRecord) ActivityEvent {
	return ActivityEvent{
		ID:          c.ID,
		Kind:        KindContributionApplied,
		EmployeeID:  c.EmployeeID,
		Title:       "EPF/ETF applied",
		Description: fmt.Sprintf("EPF %s + %s, ETF %s for %s", c.EmployeeEPF.StringFixed(2), c.EmployerEPF.StringFixed(2), c.ETF.StringFixed(2), c.Period),
		Timestamp:   c.AppliedDate,
	}
}

// MapEvents converts one record stream into activity events, keeping its order.
func MapEvents[T any](rows []T, fn func(T) ActivityEvent) []ActivityEvent {
	events := make([]ActivityEvent, 0, len(rows))
	for _, r := range rows {
		events = append(events, fn(r))
	}
	return events
}

// MergeRecent concatenates the sources in the given order, sorts newest first and keeps the first
// limit events. Events with equal timestamps keep their source order. A limit <= 0 keeps everything.
func MergeRecent(limit int, sources ...[]ActivityEvent) []ActivityEvent {
	merged := make([]ActivityEvent, 0)
	for _, src := range sources {
		merged = append(merged, src...)
	}

	slices.SortStableFunc(merged, func(a, b ActivityEvent) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// TaskCompletions keeps only completed tasks.
func TaskCompletions(tasks []record.TaskRecord) []record.TaskRecord {
	return slices.DeleteFunc(slices.Clone(tasks), func(t record.TaskRecord) bool {
		return t.Status != record.TaskCompleted
	})
}
