package postgresql

import (
	"context"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"
	"github.com/jackc/pgx/v5"
)

// ========== LOAN TYPES ==========

const loanTypeColumns = "id, name, max_amount, min_rate, max_rate, max_tenure_months, description"

func scanLoanType(row pgx.Row, t *record.LoanType) error {
	return row.Scan(&t.ID, &t.Name, &t.MaxAmount, &t.MinRate, &t.MaxRate, &t.MaxTenureMonths, &t.Description)
}

// GetLoanType implements record.LoanTypeReader.
func (r *Repository) GetLoanType(ctx context.Context, id string) (record.LoanType, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + loanTypeColumns + " FROM loan_types WHERE id = $1"

	var t record.LoanType
	if err := scanLoanType(q.QueryRow(ctx, query, id), &t); err != nil {
		if err == pgx.ErrNoRows {
			return record.LoanType{}, record.ErrLoanTypeNotFound
		}
		return record.LoanType{}, apperror.Upstream("get loan type", err)
	}
	return t, nil
}

// ListLoanTypes implements record.LoanTypeReader.
func (r *Repository) ListLoanTypes(ctx context.Context) ([]record.LoanType, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT "+loanTypeColumns+" FROM loan_types ORDER BY name ASC")
	if err != nil {
		return nil, apperror.Upstream("list loan types", err)
	}
	defer rows.Close()

	types := []record.LoanType{}
	for rows.Next() {
		var t record.LoanType
		if err := scanLoanType(rows, &t); err != nil {
			return nil, apperror.Upstream("list loan types", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Upstream("list loan types", err)
	}
	return types, nil
}

// ========== LOAN REQUESTS ==========

const loanRequestColumns = `id, employee_id, loan_type_id, principal, interest_rate, tenure_months, purpose, status,
	reviewer_id, review_date, review_comments, created_at`

func scanLoanRequest(row pgx.Row, l *record.LoanRequest) error {
	return row.Scan(
		&l.ID, &l.EmployeeID, &l.LoanTypeID, &l.Principal, &l.InterestRate, &l.TenureMonths, &l.Purpose, &l.Status,
		&l.ReviewerID, &l.ReviewDate, &l.ReviewComments, &l.CreatedAt,
	)
}

// GetLoanRequest implements record.LoanStore.
func (r *Repository) GetLoanRequest(ctx context.Context, id string) (record.LoanRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := "SELECT " + loanRequestColumns + " FROM loan_requests WHERE id = $1"

	var l record.LoanRequest
	if err := scanLoanRequest(q.QueryRow(ctx, query, id), &l); err != nil {
		if err == pgx.ErrNoRows {
			return record.LoanRequest{}, record.ErrLoanRequestNotFound
		}
		return record.LoanRequest{}, apperror.Upstream("get loan request", err)
	}
	return l, nil
}

// ListLoanRequests implements record.LoanStore.
func (r *Repository) ListLoanRequests(ctx context.Context, filter record.Filter) ([]record.LoanRequest, error) {
	lq := listQuery{columns: loanRequestColumns, table: "loan_requests", ts: "created_at", status: "status"}
	return list(ctx, r, "list loan requests", lq, filter, scanLoanRequest)
}

// CreateLoanRequest implements record.LoanStore.
func (r *Repository) CreateLoanRequest(ctx context.Context, req record.LoanRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO loan_requests (
			id, employee_id, loan_type_id, principal, interest_rate, tenure_months, purpose, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.Exec(ctx, query,
		req.ID, req.EmployeeID, req.LoanTypeID, req.Principal, req.InterestRate, req.TenureMonths,
		req.Purpose, req.Status, req.CreatedAt,
	)
	if err != nil {
		return apperror.Upstream("create loan request", err)
	}
	return nil
}

// TransitionLoanRequest implements record.LoanStore. The status guard lives in the
// UPDATE itself so two reviewers racing on one pending request cannot both win.
func (r *Repository) TransitionLoanRequest(ctx context.Context, t record.LoanTransition) (record.LoanRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loan_requests
		SET status = $3, reviewer_id = $4, review_comments = $5, review_date = $6
		WHERE id = $1 AND status = $2
		RETURNING ` + loanRequestColumns

	var l record.LoanRequest
	err := scanLoanRequest(q.QueryRow(ctx, query, t.LoanID, t.From, t.To, t.ReviewerID, t.Comments, t.At), &l)
	if err == nil {
		return l, nil
	}
	if err != pgx.ErrNoRows {
		return record.LoanRequest{}, apperror.Upstream("transition loan request", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM loan_requests WHERE id = $1)", t.LoanID).Scan(&exists); err != nil {
		return record.LoanRequest{}, apperror.Upstream("transition loan request", err)
	}
	if !exists {
		return record.LoanRequest{}, record.ErrLoanRequestNotFound
	}
	return record.LoanRequest{}, record.ErrLoanStatusConflict
}
