package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/jackc/pgx/v5"
)

// ========== SALARY RECORDS ==========

var salaryList = listQuery{
	columns: `id, employee_id, period, basic_salary, allowances, overtime_pay, bonus_pay, deductions,
	total_salary, effective_date, created_at`,
	table:  "salary_records",
	ts:     "effective_date",
	dateTS: true,
	order:  []string{"effective_date", "created_at"},
}

func scanSalaryRecord(row pgx.Row, s *record.SalaryRecord) error {
	var p time.Time
	if err := row.Scan(
		&s.ID, &s.EmployeeID, &p, &s.BasicSalary, &s.Allowances, &s.OvertimePay, &s.BonusPay, &s.Deductions,
		&s.TotalSalary, &s.EffectiveDate, &s.CreatedAt,
	); err != nil {
		return err
	}
	s.Period = period.Of(p)
	return nil
}

// ListSalaryRecords implements record.CompensationReader.
func (r *Repository) ListSalaryRecords(ctx context.Context, filter record.Filter) ([]record.SalaryRecord, error) {
	return list(ctx, r, "list salary records", salaryList, filter, scanSalaryRecord)
}

// SalaryRecordExists implements record.SalaryWriter.
func (r *Repository) SalaryRecordExists(ctx context.Context, employeeID string, month period.Month) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM salary_records WHERE employee_id = $1 AND period = $2::date)`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, month.FirstDay().Format(dateLayout)).Scan(&exists); err != nil {
		return false, apperror.Upstream("check salary record", err)
	}
	return exists, nil
}

// InsertSalaryRecordIfAbsent implements record.SalaryWriter.
func (r *Repository) InsertSalaryRecordIfAbsent(ctx context.Context, rec record.SalaryRecord) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_records (
			id, employee_id, period, basic_salary, allowances, overtime_pay, bonus_pay, deductions,
			total_salary, effective_date, created_at
		) VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10::date, $11)
		ON CONFLICT (employee_id, period) DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		rec.ID, rec.EmployeeID, rec.Period.FirstDay().Format(dateLayout),
		rec.BasicSalary, rec.Allowances, rec.OvertimePay, rec.BonusPay, rec.Deductions,
		rec.TotalSalary, rec.EffectiveDate.UTC().Format(dateLayout), rec.CreatedAt,
	)
	if err != nil {
		return false, apperror.Upstream("insert salary record", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ========== BONUS & OVERTIME ==========

var bonusList = listQuery{
	columns: "id, employee_id, amount, reason, paid_at",
	table:   "bonus_records",
	ts:      "paid_at",
}

// ListBonusRecords implements record.CompensationReader.
func (r *Repository) ListBonusRecords(ctx context.Context, filter record.Filter) ([]record.BonusRecord, error) {
	return list(ctx, r, "list bonus records", bonusList, filter, func(row pgx.Row, b *record.BonusRecord) error {
		return row.Scan(&b.ID, &b.EmployeeID, &b.Amount, &b.Reason, &b.PaidAt)
	})
}

var overtimeList = listQuery{
	columns: "id, employee_id, hours, work_date, approval",
	table:   "overtime_records",
	ts:      "work_date",
	dateTS:  true,
	status:  "approval",
}

// ListOvertimeRecords implements record.CompensationReader.
func (r *Repository) ListOvertimeRecords(ctx context.Context, filter record.Filter) ([]record.OvertimeRecord, error) {
	return list(ctx, r, "list overtime records", overtimeList, filter, func(row pgx.Row, o *record.OvertimeRecord) error {
		return row.Scan(&o.ID, &o.EmployeeID, &o.Hours, &o.WorkDate, &o.Approval)
	})
}
