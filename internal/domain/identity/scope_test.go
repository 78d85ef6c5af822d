package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScope_EmployeeFilter(t *testing.T) {
	employee := Scope{EmployeeID: "e1", Role: RoleEmployee}
	assert.Equal(t, []string{"e1"}, employee.EmployeeFilter().EmployeeIDs)

	manager := Scope{EmployeeID: "m1", Role: RoleManager, SubordinateIDs: []string{"e1", "e2"}}
	assert.Equal(t, []string{"e1", "e2"}, manager.EmployeeFilter().EmployeeIDs)

	lonelyManager := Scope{EmployeeID: "m2", Role: RoleManager}
	assert.True(t, lonelyManager.EmployeeFilter().ScopesNobody())

	for _, role := range []Role{RoleHR, RoleAccountant} {
		s := Scope{EmployeeID: "h1", Role: role}
		assert.Nil(t, s.EmployeeFilter().EmployeeIDs, role)
	}
}

func TestScope_EmployeeFilterDoesNotAlias(t *testing.T) {
	manager := Scope{EmployeeID: "m1", Role: RoleManager, SubordinateIDs: []string{"e1"}}
	f := manager.EmployeeFilter()
	f.EmployeeIDs[0] = "changed"
	assert.Equal(t, "e1", manager.SubordinateIDs[0])
}

func TestScope_CanAccess(t *testing.T) {
	manager := Scope{EmployeeID: "m1", Role: RoleManager, SubordinateIDs: []string{"e1"}}
	assert.True(t, manager.CanAccess("m1"))
	assert.True(t, manager.CanAccess("e1"))
	assert.False(t, manager.CanAccess("e9"))
	assert.ErrorIs(t, manager.Authorize("e9"), ErrAccessDenied)

	employee := Scope{EmployeeID: "e1", Role: RoleEmployee, SubordinateIDs: []string{"e2"}}
	assert.False(t, employee.CanAccess("e2"))

	hr := Scope{EmployeeID: "h1", Role: RoleHR}
	assert.NoError(t, hr.Authorize("anyone"))
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAccountant, PermissionPayrollProcess))
	assert.False(t, HasPermission(RoleHR, PermissionPayrollProcess))
	assert.True(t, HasPermission(RoleManager, PermissionLoanReview))
	assert.False(t, HasPermission(RoleEmployee, PermissionLoanReview))
	assert.False(t, HasPermission(Role("pending"), PermissionDashboardView))
	assert.True(t, RoleHR.IsValid())
	assert.False(t, Role("owner").IsValid())
}
