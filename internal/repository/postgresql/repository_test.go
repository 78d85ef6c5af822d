package postgresql

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/cmlabs-hris/hris-compensation-go/migrations"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepository connects to TEST_DATABASE_URL, resets the schema and returns a repository over it.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	sqlDB, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Reset(sqlDB, "."))
	require.NoError(t, goose.Up(sqlDB, "."))

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolConfig{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	return NewRepository(db)
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func seedEmployee(t *testing.T, r *Repository, name string) string {
	t.Helper()
	id := newID()
	_, err := r.db.Exec(context.Background(),
		`INSERT INTO employees (id, name, department, position, base_salary, overtime_rate) VALUES ($1, $2, 'Engineering', 'Engineer', 3000, 15)`,
		id, name)
	require.NoError(t, err)
	return id
}

func TestRepository_Employees(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	a := seedEmployee(t, r, "Ada")
	seedEmployee(t, r, "Brian")

	emp, err := r.GetEmployee(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, "Ada", emp.Name)
	assert.True(t, emp.BaseSalary.Equal(decimal.NewFromInt(3000)))
	assert.Nil(t, emp.CreditScore)

	_, err = r.GetEmployee(ctx, newID())
	assert.ErrorIs(t, err, record.ErrEmployeeNotFound)

	all, err := r.ListEmployees(ctx, record.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := r.ListEmployees(ctx, record.ForEmployee(a))
	require.NoError(t, err)
	assert.Len(t, one, 1)

	none, err := r.ListEmployees(ctx, record.Filter{EmployeeIDs: []string{}})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_SalaryInsertIfAbsent(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	emp := seedEmployee(t, r, "Ada")
	month := period.Month{Year: 2026, Month: time.September}

	rec := record.SalaryRecord{
		ID: newID(), EmployeeID: emp, Period: month,
		BasicSalary: decimal.NewFromInt(3000), TotalSalary: decimal.NewFromInt(3000),
		EffectiveDate: month.LastDay(), CreatedAt: time.Now(),
	}
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		inserted, err := r.InsertSalaryRecordIfAbsent(ctx, rec)
		require.NoError(t, err)
		assert.True(t, inserted)
		return nil
	})
	require.NoError(t, err)

	rec.ID = newID()
	inserted, err := r.InsertSalaryRecordIfAbsent(ctx, rec)
	require.NoError(t, err)
	assert.False(t, inserted)

	exists, err := r.SalaryRecordExists(ctx, emp, month)
	require.NoError(t, err)
	assert.True(t, exists)

	w := month.Window()
	rows, err := r.ListSalaryRecords(ctx, record.Filter{Window: &w})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, month, rows[0].Period)
}

func TestRepository_ContributionsMarkPaid(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	emp := seedEmployee(t, r, "Ada")
	month := period.Month{Year: 2026, Month: time.September}

	inserted, err := r.InsertContributionIfAbsent(ctx, record.ContributionRecord{
		ID: newID(), EmployeeID: emp, Period: month, Salary: decimal.NewFromInt(3000),
		EmployeeEPF: decimal.NewFromInt(240), EmployerEPF: decimal.NewFromInt(360), ETF: decimal.NewFromInt(90),
		AppliedDate: month.LastDay(), Status: record.ContributionPending,
	})
	require.NoError(t, err)
	assert.True(t, inserted)

	moved, err := r.MarkContributionsPaid(ctx, month)
	require.NoError(t, err)
	assert.Equal(t, int64(1), moved)

	moved, err = r.MarkContributionsPaid(ctx, month)
	require.NoError(t, err)
	assert.Zero(t, moved)

	paid, err := r.ListContributionRecords(ctx, record.Filter{Status: string(record.ContributionPaid)})
	require.NoError(t, err)
	assert.Len(t, paid, 1)
}

func TestRepository_TransitionLoanRequest(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	emp := seedEmployee(t, r, "Ada")
	reviewer := seedEmployee(t, r, "Grace")

	typeID := newID()
	_, err := r.db.Exec(ctx,
		`INSERT INTO loan_types (id, name, max_amount, min_rate, max_rate, max_tenure_months) VALUES ($1, 'Personal', 10000, 5, 12, 36)`,
		typeID)
	require.NoError(t, err)

	loanID := newID()
	require.NoError(t, r.CreateLoanRequest(ctx, record.LoanRequest{
		ID: loanID, EmployeeID: emp, LoanTypeID: typeID, Principal: decimal.NewFromInt(5000),
		InterestRate: decimal.NewFromInt(10), TenureMonths: 12, Status: record.LoanStatusPending, CreatedAt: time.Now(),
	}))

	move := record.LoanTransition{
		LoanID: loanID, From: record.LoanStatusPending, To: record.LoanStatusApproved,
		ReviewerID: reviewer, Comments: "ok", At: time.Now(),
	}
	l, err := r.TransitionLoanRequest(ctx, move)
	require.NoError(t, err)
	assert.Equal(t, record.LoanStatusApproved, l.Status)
	require.NotNil(t, l.ReviewerID)
	assert.Equal(t, reviewer, *l.ReviewerID)

	_, err = r.TransitionLoanRequest(ctx, move)
	assert.ErrorIs(t, err, record.ErrLoanStatusConflict)

	move.LoanID = newID()
	_, err = r.TransitionLoanRequest(ctx, move)
	assert.ErrorIs(t, err, record.ErrLoanRequestNotFound)

	types, err := r.ListLoanTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 1)
}
