package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// Repository is the pgx-backed record.Repository.
type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

var _ record.Repository = (*Repository)(nil)

const dateLayout = "2006-01-02"

// listQuery names the columns a record.Filter applies to for one table.
type listQuery struct {
	columns string
	table   string

	// employee defaults to employee_id.
	employee string

	// ts is the column the window applies to.
	ts string

	// dateTS marks ts as a DATE column; window bounds are then sent as calendar dates.
	dateTS bool

	// order lists the recency columns rows are sorted by. Empty means ts.
	order []string

	// status is empty when the table has no status column.
	status string
}

// build renders the SELECT for f. The caller checks f.ScopesNobody first.
func (lq listQuery) build(f record.Filter) (string, []interface{}) {
	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	// Employee scope
	if f.EmployeeIDs != nil {
		col := lq.employee
		if col == "" {
			col = "employee_id"
		}
		baseWhere += fmt.Sprintf(" AND %s = ANY($%d::uuid[])", col, argIdx)
		args = append(args, f.EmployeeIDs)
		argIdx++
	}

	// Window filters
	if f.Window != nil {
		cast := ""
		var from, to interface{} = f.Window.From, f.Window.To
		if lq.dateTS {
			cast = "::date"
			from, to = f.Window.From.UTC().Format(dateLayout), f.Window.To.UTC().Format(dateLayout)
		}
		baseWhere += fmt.Sprintf(" AND %s >= $%d%s AND %s < $%d%s", lq.ts, argIdx, cast, lq.ts, argIdx+1, cast)
		args = append(args, from, to)
		argIdx += 2
	}

	// Status filter
	if f.Status != "" && lq.status != "" {
		baseWhere += fmt.Sprintf(" AND %s = $%d", lq.status, argIdx)
		args = append(args, f.Status)
		argIdx++
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s WHERE %s", lq.columns, lq.table, baseWhere)
	if f.Limit > 0 {
		fmt.Fprintf(&sb, " ORDER BY %s LIMIT $%d", lq.orderBy("DESC"), argIdx)
		args = append(args, f.Limit)
	} else {
		fmt.Fprintf(&sb, " ORDER BY %s", lq.orderBy("ASC"))
	}
	return sb.String(), args
}

func (lq listQuery) orderBy(dir string) string {
	cols := lq.order
	if len(cols) == 0 {
		cols = []string{lq.ts}
	}
	terms := make([]string, 0, len(cols)+1)
	for _, c := range cols {
		terms = append(terms, c+" "+dir)
	}
	terms = append(terms, "id "+dir)
	return strings.Join(terms, ", ")
}

func list[T any](ctx context.Context, r *Repository, op string, lq listQuery, f record.Filter, scan func(row pgx.Row, v *T) error) ([]T, error) {
	if f.ScopesNobody() {
		return []T{}, nil
	}
	q := GetQuerier(ctx, r.db)

	query, args := lq.build(f)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperror.Upstream(op, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var v T
		if err := scan(rows, &v); err != nil {
			return nil, apperror.Upstream(op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Upstream(op, err)
	}
	return out, nil
}
