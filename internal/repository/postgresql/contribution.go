package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/jackc/pgx/v5"
)

var contributionList = listQuery{
	columns: "id, employee_id, period, salary, employee_epf, employer_epf, etf, applied_date, status",
	table:   "contribution_records",
	ts:      "applied_date",
	dateTS:  true,
	status:  "status",
}

func scanContribution(row pgx.Row, c *record.ContributionRecord) error {
	var p time.Time
	if err := row.Scan(
		&c.ID, &c.EmployeeID, &p, &c.Salary, &c.EmployeeEPF, &c.EmployerEPF, &c.ETF, &c.AppliedDate, &c.Status,
	); err != nil {
		return err
	}
	c.Period = period.Of(p)
	return nil
}

// ListContributionRecords implements record.ContributionStore.
func (r *Repository) ListContributionRecords(ctx context.Context, filter record.Filter) ([]record.ContributionRecord, error) {
	return list(ctx, r, "list contribution records", contributionList, filter, scanContribution)
}

// ContributionExists implements record.ContributionStore.
func (r *Repository) ContributionExists(ctx context.Context, employeeID string, month period.Month) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS (SELECT 1 FROM contribution_records WHERE employee_id = $1 AND period = $2::date)`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, month.FirstDay().Format(dateLayout)).Scan(&exists); err != nil {
		return false, apperror.Upstream("check contribution record", err)
	}
	return exists, nil
}

// InsertContributionIfAbsent implements record.ContributionStore.
func (r *Repository) InsertContributionIfAbsent(ctx context.Context, rec record.ContributionRecord) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO contribution_records (
			id, employee_id, period, salary, employee_epf, employer_epf, etf, applied_date, status
		) VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8::date, $9)
		ON CONFLICT (employee_id, period) DO NOTHING
	`

	tag, err := q.Exec(ctx, query,
		rec.ID, rec.EmployeeID, rec.Period.FirstDay().Format(dateLayout),
		rec.Salary, rec.EmployeeEPF, rec.EmployerEPF, rec.ETF,
		rec.AppliedDate.UTC().Format(dateLayout), rec.Status,
	)
	if err != nil {
		return false, apperror.Upstream("insert contribution record", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkContributionsPaid implements record.ContributionStore.
func (r *Repository) MarkContributionsPaid(ctx context.Context, month period.Month) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE contribution_records SET status = $1 WHERE period = $2::date AND status = $3`

	tag, err := q.Exec(ctx, query, record.ContributionPaid, month.FirstDay().Format(dateLayout), record.ContributionPending)
	if err != nil {
		return 0, apperror.Upstream("mark contributions paid", err)
	}
	return tag.RowsAffected(), nil
}
