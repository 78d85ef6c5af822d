package dashboard

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

// RankNotRated is reported when an employee has no KPI history.
const RankNotRated = "Not rated"

// SumWindow filters rows to the window by their timestamp and sums a numeric field.
// No matching rows sums to zero.
func SumWindow[T any](rows []T, w period.Window, ts func(T) time.Time, field func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		if w.Contains(ts(r)) {
			total = total.Add(field(r))
		}
	}
	return total
}

// CountWhere counts rows matching pred.
func CountWhere[T any](rows []T, pred func(T) bool) int {
	n := 0
	for _, r := range rows {
		if pred(r) {
			n++
		}
	}
	return n
}

// CountByDepartment counts active employees per department, largest first, then by name.
func CountByDepartment(employees []record.Employee) []DepartmentCount {
	counts := map[string]int{}
	for _, e := range employees {
		if e.Status == record.EmployeeStatusTerminated {
			continue
		}
		counts[e.Department]++
	}

	out := make([]DepartmentCount, 0, len(counts))
	for dept, n := range counts {
		out = append(out, DepartmentCount{Department: dept, Count: n})
	}
	slices.SortFunc(out, func(a, b DepartmentCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Department, b.Department)
	})
	return out
}

// CurrentKPI returns the most recent KPI evaluation, or a zero "Not rated" value without history.
func CurrentKPI(history []record.KPIRecord) KPISummary {
	if len(history) == 0 {
		return KPISummary{Value: 0, Rank: RankNotRated}
	}
	sorted := slices.Clone(history)
	slices.SortStableFunc(sorted, func(a, b record.KPIRecord) int {
		return b.CalculatedAt.Compare(a.CalculatedAt)
	})
	current := sorted[0]
	return KPISummary{Value: current.Value, Rank: current.Rank, CalculatedAt: &current.CalculatedAt}
}

// SummarizeAttendance counts attendance rows inside the window by status.
func SummarizeAttendance(rows []record.AttendanceRecord, w period.Window) AttendanceSummary {
	var s AttendanceSummary
	for _, a := range rows {
		if !w.Contains(a.Date) {
			continue
		}
		switch a.Status {
		case record.AttendancePresent:
			s.Present++
		case record.AttendanceAbsent:
			s.Absent++
		case record.AttendanceLate:
			s.Late++
		}
	}
	s.Total = s.Present + s.Absent + s.Late
	if s.Total > 0 {
		s.AttendanceRate = roundPercent(float64(s.Present+s.Late) / float64(s.Total) * 100)
	}
	return s
}

func roundPercent(v float64) float64 {
	return math.Round(v*100) / 100
}
