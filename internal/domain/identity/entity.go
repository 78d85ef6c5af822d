package identity

import (
	"slices"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
)

type Role string

const (
	RoleEmployee   Role = "employee"   // Sees own records only
	RoleManager    Role = "manager"    // Sees direct and indirect subordinates
	RoleHR         Role = "hr"         // Sees every employee
	RoleAccountant Role = "accountant" // Sees every employee, runs payroll
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHR, RoleAccountant:
		return true
	}
	return false
}

// Scope is the pre-resolved caller identity. It is trusted as given.
type Scope struct {
	EmployeeID     string
	Role           Role
	SubordinateIDs []string
}

// SeesEveryone reports whether the role is organisation-wide.
func (s Scope) SeesEveryone() bool {
	return s.Role == RoleHR || s.Role == RoleAccountant
}

// EmployeeFilter returns the record filter matching the caller's authority:
// self for employees, subordinates for managers, everyone for HR and accountants.
func (s Scope) EmployeeFilter() record.Filter {
	switch s.Role {
	case RoleHR, RoleAccountant:
		return record.Filter{}
	case RoleManager:
		ids := make([]string, len(s.SubordinateIDs))
		copy(ids, s.SubordinateIDs)
		return record.Filter{EmployeeIDs: ids}
	default:
		return record.ForEmployee(s.EmployeeID)
	}
}

// CanAccess reports whether the caller may read records of employeeID.
func (s Scope) CanAccess(employeeID string) bool {
	if employeeID == s.EmployeeID || s.SeesEveryone() {
		return true
	}
	return s.Role == RoleManager && slices.Contains(s.SubordinateIDs, employeeID)
}

// Authorize returns ErrAccessDenied unless the caller may read records of employeeID.
func (s Scope) Authorize(employeeID string) error {
	if !s.CanAccess(employeeID) {
		return ErrAccessDenied
	}
	return nil
}
