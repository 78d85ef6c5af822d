package postgresql

import (
	"context"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/jackc/pgx/v5"
)

var (
	attendanceList = listQuery{
		columns: "id, employee_id, date, status, marked_at",
		table:   "attendance_records",
		ts:      "date",
		dateTS:  true,
		order:   []string{"marked_at"},
		status:  "status",
	}
	leaveList = listQuery{
		columns: "id, employee_id, leave_type, start_date, end_date, approval, updated_at",
		table:   "leave_requests",
		ts:      "updated_at",
		status:  "approval",
	}
	taskList = listQuery{
		columns: "id, employee_id, title, status, completed_at, updated_at",
		table:   "task_records",
		ts:      "updated_at",
		status:  "status",
	}
)

// ListAttendance implements record.ActivityReader.
func (r *Repository) ListAttendance(ctx context.Context, filter record.Filter) ([]record.AttendanceRecord, error) {
	return list(ctx, r, "list attendance", attendanceList, filter, func(row pgx.Row, a *record.AttendanceRecord) error {
		return row.Scan(&a.ID, &a.EmployeeID, &a.Date, &a.Status, &a.MarkedAt)
	})
}

// ListLeaveRequests implements record.ActivityReader.
func (r *Repository) ListLeaveRequests(ctx context.Context, filter record.Filter) ([]record.LeaveRequest, error) {
	return list(ctx, r, "list leave requests", leaveList, filter, func(row pgx.Row, l *record.LeaveRequest) error {
		return row.Scan(&l.ID, &l.EmployeeID, &l.LeaveType, &l.StartDate, &l.EndDate, &l.Approval, &l.UpdatedAt)
	})
}

// ListTasks implements record.ActivityReader.
func (r *Repository) ListTasks(ctx context.Context, filter record.Filter) ([]record.TaskRecord, error) {
	return list(ctx, r, "list tasks", taskList, filter, func(row pgx.Row, t *record.TaskRecord) error {
		return row.Scan(&t.ID, &t.EmployeeID, &t.Title, &t.Status, &t.CompletedAt, &t.UpdatedAt)
	})
}
