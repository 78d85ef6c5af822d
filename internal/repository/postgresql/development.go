package postgresql

import (
	"context"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/jackc/pgx/v5"
)

var (
	promotionList = listQuery{
		columns: "id, employee_id, old_position, new_position, promotion_date, salary_increase, reason",
		table:   "promotion_records",
		ts:      "promotion_date",
		dateTS:  true,
	}
	kpiList = listQuery{
		columns: "id, employee_id, value, rank, calculated_at",
		table:   "kpi_records",
		ts:      "calculated_at",
	}
	trainingList = listQuery{
		columns: "id, employee_id, training_id, title, category, start_time, end_time",
		table:   "training_assignments",
		ts:      "start_time",
	}
)

// ListPromotions implements record.DevelopmentReader.
func (r *Repository) ListPromotions(ctx context.Context, filter record.Filter) ([]record.PromotionRecord, error) {
	return list(ctx, r, "list promotions", promotionList, filter, func(row pgx.Row, p *record.PromotionRecord) error {
		return row.Scan(&p.ID, &p.EmployeeID, &p.OldPosition, &p.NewPosition, &p.PromotionDate, &p.SalaryIncrease, &p.Reason)
	})
}

// ListKPIRecords implements record.DevelopmentReader.
func (r *Repository) ListKPIRecords(ctx context.Context, filter record.Filter) ([]record.KPIRecord, error) {
	return list(ctx, r, "list kpi records", kpiList, filter, func(row pgx.Row, k *record.KPIRecord) error {
		return row.Scan(&k.ID, &k.EmployeeID, &k.Value, &k.Rank, &k.CalculatedAt)
	})
}

// ListTrainingAssignments implements record.DevelopmentReader.
func (r *Repository) ListTrainingAssignments(ctx context.Context, filter record.Filter) ([]record.TrainingAssignment, error) {
	return list(ctx, r, "list training assignments", trainingList, filter, func(row pgx.Row, t *record.TrainingAssignment) error {
		return row.Scan(&t.ID, &t.EmployeeID, &t.TrainingID, &t.Title, &t.Category, &t.StartTime, &t.EndTime)
	})
}
