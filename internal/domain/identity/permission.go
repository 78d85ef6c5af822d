package identity

import "slices"

type Permission string

const (
	PermissionPayslipViewOwn Permission = "payslip.view_own"
	PermissionPayslipViewAll Permission = "payslip.view_all"
	PermissionPayrollProcess Permission = "payroll.process"
	PermissionLoanApply      Permission = "loan.apply"
	PermissionLoanReview     Permission = "loan.review"
	PermissionDashboardView  Permission = "dashboard.view"
	PermissionReadinessView  Permission = "promotion.readiness_view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleEmployee: {
		PermissionPayslipViewOwn,
		PermissionLoanApply,
		PermissionDashboardView,
		PermissionReadinessView,
	},
	RoleManager: {
		PermissionPayslipViewOwn,
		PermissionLoanApply,
		PermissionLoanReview,
		PermissionDashboardView,
		PermissionReadinessView,
	},
	RoleHR: {
		PermissionPayslipViewOwn,
		PermissionPayslipViewAll,
		PermissionLoanApply,
		PermissionLoanReview,
		PermissionDashboardView,
		PermissionReadinessView,
	},
	RoleAccountant: {
		PermissionPayslipViewOwn,
		PermissionPayslipViewAll,
		PermissionPayrollProcess,
		PermissionLoanApply,
		PermissionDashboardView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}
	return slices.Contains(permissions, permission)
}
