package postgresql

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/stretchr/testify/assert"
)

func TestListQuery_Build(t *testing.T) {
	w := period.Month{Year: 2026, Month: time.March}.Window()

	tests := []struct {
		name      string
		lq        listQuery
		filter    record.Filter
		wantQuery string
		wantArgs  []interface{}
	}{
		{
			name:      "no filter sorts oldest first",
			lq:        taskList,
			filter:    record.Filter{},
			wantQuery: "SELECT id, employee_id, title, status, completed_at, updated_at FROM task_records WHERE 1=1 ORDER BY updated_at ASC, id ASC",
			wantArgs:  []interface{}{},
		},
		{
			name:      "attendance windows on date but takes the newest by marked_at",
			lq:        attendanceList,
			filter:    record.Filter{Window: &w, Limit: 5},
			wantQuery: "SELECT id, employee_id, date, status, marked_at FROM attendance_records WHERE 1=1 AND date >= $1::date AND date < $2::date ORDER BY marked_at DESC, id DESC LIMIT $3",
			wantArgs:  []interface{}{"2026-03-01", "2026-04-01", 5},
		},
		{
			name:      "salary ties on effective date break on created_at",
			lq:        salaryList,
			filter:    record.Filter{EmployeeIDs: []string{"e1"}, Limit: 3},
			wantQuery: "SELECT " + salaryList.columns + " FROM salary_records WHERE 1=1 AND employee_id = ANY($1::uuid[]) ORDER BY effective_date DESC, created_at DESC, id DESC LIMIT $2",
			wantArgs:  []interface{}{[]string{"e1"}, 3},
		},
		{
			name:      "status filter",
			lq:        leaveList,
			filter:    record.Filter{Status: "pending"},
			wantQuery: "SELECT id, employee_id, leave_type, start_date, end_date, approval, updated_at FROM leave_requests WHERE 1=1 AND approval = $1 ORDER BY updated_at ASC, id ASC",
			wantArgs:  []interface{}{"pending"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := tt.lq.build(tt.filter)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
