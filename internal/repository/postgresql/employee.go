package postgresql

import (
	"context"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, name, department, position, base_salary, salary_unit, overtime_rate, bonus_to_date,
	manager_id, role, status, hire_date, credit_score, leadership_flag, created_at, updated_at`

func scanEmployee(row pgx.Row, e *record.Employee) error {
	return row.Scan(
		&e.ID, &e.Name, &e.Department, &e.Position, &e.BaseSalary, &e.SalaryUnit, &e.OvertimeRate, &e.BonusToDate,
		&e.ManagerID, &e.Role, &e.Status, &e.HireDate, &e.CreditScore, &e.LeadershipFlag, &e.CreatedAt, &e.UpdatedAt,
	)
}

// GetEmployee implements record.EmployeeReader.
func (r *Repository) GetEmployee(ctx context.Context, id string) (record.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + employeeColumns + " FROM employees WHERE id = $1"

	var e record.Employee
	if err := scanEmployee(q.QueryRow(ctx, query, id), &e); err != nil {
		if err == pgx.ErrNoRows {
			return record.Employee{}, record.ErrEmployeeNotFound
		}
		return record.Employee{}, apperror.Upstream("get employee", err)
	}
	return e, nil
}

// ListEmployees implements record.EmployeeReader.
func (r *Repository) ListEmployees(ctx context.Context, filter record.Filter) ([]record.Employee, error) {
	lq := listQuery{columns: employeeColumns, table: "employees", employee: "id", ts: "created_at", status: "status"}
	return list(ctx, r, "list employees", lq, filter, scanEmployee)
}
