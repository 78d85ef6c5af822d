package dashboard

import (
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

// Section names reported in DegradedSections.
const (
	SectionSums             = "sums"
	SectionPendingCounts    = "pending_counts"
	SectionRecentActivity   = "recent_activity"
	SectionDepartmentCounts = "department_counts"
	SectionAttendance       = "attendance"
	SectionKPI              = "kpi"
)

// ========== ROLLUP ==========

// RollupResponse is the combined response for the role-scoped dashboard.
// Sections that could not be loaded are zero or empty and listed in DegradedSections.
type RollupResponse struct {
	Scope            ScopeSummary      `json:"scope"`
	Period           period.Month      `json:"period"`
	Sums             MonthSums         `json:"sums"`
	PendingCounts    PendingCounts     `json:"pending_counts"`
	RecentActivity   []ActivityEvent   `json:"recent_activity"`
	DepartmentCounts []DepartmentCount `json:"department_counts"`
	DegradedSections []string          `json:"degraded_sections"`
}

// ScopeSummary echoes whose data the rollup covers.
type ScopeSummary struct {
	EmployeeID    string        `json:"employee_id"`
	Role          identity.Role `json:"role"`
	EmployeeCount *int          `json:"employee_count,omitempty"` // nil for organisation-wide scopes
}

// MonthSums are totals over the calendar month.
type MonthSums struct {
	Payroll  decimal.Decimal `json:"payroll"`
	Bonus    decimal.Decimal `json:"bonus"`
	Overtime decimal.Decimal `json:"overtime"`
	EPF      decimal.Decimal `json:"epf"` // employee and employer share
	ETF      decimal.Decimal `json:"etf"`
}

// PendingCounts are items waiting on a decision within the caller's scope.
type PendingCounts struct {
	LeaveApprovals    int `json:"leave_approvals"`
	OvertimeApprovals int `json:"overtime_approvals"`
	LoanRequests      int `json:"loan_requests"`
	Contributions     int `json:"contributions"`
}

type DepartmentCount struct {
	Department string `json:"department"`
	Count      int    `json:"count"`
}

// ========== PERFORMANCE ==========

// PerformanceResponse joins monthly attendance with the current KPI evaluation.
type PerformanceResponse struct {
	EmployeeID       string            `json:"employee_id"`
	Period           period.Month      `json:"period"`
	Attendance       AttendanceSummary `json:"attendance"`
	KPI              KPISummary        `json:"kpi"`
	DegradedSections []string          `json:"degraded_sections"`
}

type AttendanceSummary struct {
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	Total          int     `json:"total"`
	AttendanceRate float64 `json:"attendance_rate"` // percent of days present or late
}

type KPISummary struct {
	Value        float64    `json:"value"`
	Rank         string     `json:"rank"`
	CalculatedAt *time.Time `json:"calculated_at,omitempty"`
}
