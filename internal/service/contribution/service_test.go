package contribution

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/contribution"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/cmlabs-hris/hris-compensation-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march = period.Month{Year: 2026, Month: time.March}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func setup(pub events.Publisher) (*ContributionServiceImpl, *memory.Repository) {
	repo := memory.NewRepository()
	repo.AddEmployees(
		record.Employee{ID: "e1", BaseSalary: dec("3000"), SalaryUnit: record.SalaryUnitMonthly},
		record.Employee{ID: "e2", BaseSalary: dec("60000"), SalaryUnit: record.SalaryUnitAnnual},
		record.Employee{ID: "e3", BaseSalary: dec("4567.89"), SalaryUnit: record.SalaryUnitMonthly},
	)
	svc := NewContributionService(repo, contribution.DefaultRateTable(), pub, slog.New(slog.NewTextHandler(io.Discard, nil))).(*ContributionServiceImpl)
	return svc, repo
}

func batch(ids ...string) contribution.BatchRequest {
	return contribution.BatchRequest{Period: "2026-03", EmployeeIDs: ids}
}

func TestComputeContribution(t *testing.T) {
	svc, _ := setup(events.NoopPublisher{})
	ctx := context.Background()

	c, err := svc.ComputeContribution(ctx, contribution.ComputeRequest{Salary: dec("3000")})
	require.NoError(t, err)
	assert.Equal(t, "240.00", c.EPFEmployee.StringFixed(2))
	assert.Equal(t, "240.00", c.EPFEmployer.StringFixed(2))
	assert.Equal(t, "75.00", c.ETF.StringFixed(2))

	override := contribution.RateTable{EmployeeEPFRate: dec("10"), EmployerEPFRate: dec("12"), ETFRate: dec("3")}
	c, err = svc.ComputeContribution(ctx, contribution.ComputeRequest{Salary: dec("3000"), Rates: &override})
	require.NoError(t, err)
	assert.Equal(t, "300.00", c.EPFEmployee.StringFixed(2))
	assert.Equal(t, "360.00", c.EPFEmployer.StringFixed(2))
	assert.Equal(t, "90.00", c.ETF.StringFixed(2))

	_, err = svc.ComputeContribution(ctx, contribution.ComputeRequest{Salary: dec("-1")})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestProcessMonthlyContributions_Idempotent(t *testing.T) {
	pub := &events.Recorder{}
	svc, repo := setup(pub)
	ctx := context.Background()

	resp, err := svc.ProcessMonthlyContributions(ctx, batch("e1", "e2", "e3"))
	require.NoError(t, err)
	assert.Equal(t, 3, resp.ProcessedCount)

	_, err = svc.ProcessMonthlyContributions(ctx, batch("e1", "e2", "e3"))
	assert.ErrorIs(t, err, apperror.ErrAlreadyProcessed)

	rows, err := repo.ListContributionRecords(ctx, record.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, record.ContributionPending, r.Status)
		assert.Equal(t, march, r.Period)
		if r.EmployeeID == "e2" {
			assert.True(t, r.Salary.Equal(dec("5000")), "annual salary normalized to monthly")
			assert.Equal(t, "400.00", r.EmployeeEPF.StringFixed(2))
		}
	}
	assert.Equal(t, []string{events.TopicContributionBatchProcessed}, pub.Topics())
}

func TestProcessMonthlyContributions_ConcurrentRuns(t *testing.T) {
	svc, repo := setup(events.NoopPublisher{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.ProcessMonthlyContributions(ctx, batch("e1", "e2", "e3"))
		}()
	}
	wg.Wait()

	rows, err := repo.ListContributionRecords(ctx, record.Filter{})
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestProcessMonthlyContributions_ExtendsRoster(t *testing.T) {
	svc, _ := setup(events.NoopPublisher{})
	ctx := context.Background()

	_, err := svc.ProcessMonthlyContributions(ctx, batch("e1"))
	require.NoError(t, err)

	resp, err := svc.ProcessMonthlyContributions(ctx, batch("e1", "e2"))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedCount)
	assert.Equal(t, []string{"e1"}, resp.SkippedEmployeeIDs)
}

func TestProcessMonthlyContributions_Errors(t *testing.T) {
	svc, repo := setup(events.NoopPublisher{})
	ctx := context.Background()

	_, err := svc.ProcessMonthlyContributions(ctx, contribution.BatchRequest{Period: "2026-13", EmployeeIDs: []string{"e1"}})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = svc.ProcessMonthlyContributions(ctx, batch("ghost"))
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	repo.Fail("ContributionExists", errors.New("connection refused"))
	_, err = svc.ProcessMonthlyContributions(ctx, batch("e1"))
	assert.ErrorIs(t, err, apperror.ErrUpstreamFailure)
}

func TestMarkContributionsPaid(t *testing.T) {
	pub := &events.Recorder{}
	svc, repo := setup(pub)
	ctx := context.Background()

	_, err := svc.ProcessMonthlyContributions(ctx, batch("e1", "e2"))
	require.NoError(t, err)

	resp, err := svc.MarkContributionsPaid(ctx, march)
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.PaidCount)

	resp, err = svc.MarkContributionsPaid(ctx, march)
	require.NoError(t, err)
	assert.EqualValues(t, 0, resp.PaidCount)

	rows, err := repo.ListContributionRecords(ctx, record.Filter{Status: string(record.ContributionPaid)})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = svc.MarkContributionsPaid(ctx, period.Month{})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, []string{events.TopicContributionBatchProcessed, events.TopicContributionsPaid}, pub.Topics())
}
