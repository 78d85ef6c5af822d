package compensation

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/compensation"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/cmlabs-hris/hris-compensation-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	march   = period.Month{Year: 2026, Month: time.March}
	fixedAt = time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testPolicy() compensation.Policy {
	tax := dec("300")
	return compensation.Policy{
		Allowances: []compensation.Line{
			{Name: "transport", Amount: dec("200")},
			{Name: "meal", Amount: dec("150")},
			{Name: "medical", Amount: dec("100")},
		},
		Deductions: compensation.DeductionSchedule{
			EPFRate:       dec("8"),
			InsuranceFlat: dec("75"),
			TaxFlat:       &tax,
		},
	}
}

func seededRepo() *memory.Repository {
	repo := memory.NewRepository()
	repo.AddEmployees(
		record.Employee{ID: "e1", Name: "Amara Perera", Department: "Finance", Position: "Analyst", BaseSalary: dec("3000"), SalaryUnit: record.SalaryUnitMonthly, OvertimeRate: dec("15"), Status: record.EmployeeStatusActive},
		record.Employee{ID: "e2", Name: "Kasun Silva", Department: "Engineering", Position: "Engineer", BaseSalary: dec("48000"), SalaryUnit: record.SalaryUnitAnnual, Status: record.EmployeeStatusActive},
	)
	repo.AddOvertimeRecords(
		record.OvertimeRecord{ID: "o1", EmployeeID: "e1", Hours: dec("6"), WorkDate: time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC), Approval: record.ApprovalApproved},
		record.OvertimeRecord{ID: "o2", EmployeeID: "e1", Hours: dec("4"), WorkDate: time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC), Approval: record.ApprovalApproved},
		record.OvertimeRecord{ID: "o3", EmployeeID: "e1", Hours: dec("5"), WorkDate: time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC), Approval: record.ApprovalPending},
		record.OvertimeRecord{ID: "o4", EmployeeID: "e1", Hours: dec("3"), WorkDate: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), Approval: record.ApprovalApproved},
	)
	repo.AddBonusRecords(
		record.BonusRecord{ID: "b1", EmployeeID: "e1", Amount: dec("500"), PaidAt: time.Date(2026, time.March, 25, 0, 0, 0, 0, time.UTC)},
		record.BonusRecord{ID: "b2", EmployeeID: "e1", Amount: dec("900"), PaidAt: time.Date(2026, time.February, 25, 0, 0, 0, 0, time.UTC)},
	)
	return repo
}

func newTestService(repo *memory.Repository, pub events.Publisher) *CompensationServiceImpl {
	svc := NewCompensationService(repo, testPolicy(), pub, slog.New(slog.NewTextHandler(io.Discard, nil))).(*CompensationServiceImpl)
	svc.now = func() time.Time { return fixedAt }
	return svc
}

func TestGetPayslip_FromRecords(t *testing.T) {
	svc := newTestService(seededRepo(), events.NoopPublisher{})

	slip, err := svc.GetPayslip(context.Background(), "e1", march)
	require.NoError(t, err)

	assert.Equal(t, "Amara Perera", slip.EmployeeName)
	assert.Equal(t, march, slip.Period)
	assert.True(t, slip.OTAmount.Equal(dec("150")), "only approved March overtime counts")
	assert.True(t, slip.Bonus.Equal(dec("500")))
	assert.True(t, slip.GrossSalary.Equal(dec("4100")))
	assert.True(t, slip.TotalDeductions.Equal(dec("615")))
	assert.True(t, slip.NetSalary.Equal(dec("3485")))
}

func TestGetPayslip_AnnualSalaryWithoutActivity(t *testing.T) {
	svc := newTestService(seededRepo(), events.NoopPublisher{})

	slip, err := svc.GetPayslip(context.Background(), "e2", march)
	require.NoError(t, err)
	assert.True(t, slip.MonthlySalary.Equal(dec("4000")))
	assert.True(t, slip.OTAmount.IsZero())
	assert.True(t, slip.Bonus.IsZero())
}

func TestGetPayslip_Errors(t *testing.T) {
	repo := seededRepo()
	svc := newTestService(repo, events.NoopPublisher{})
	ctx := context.Background()

	_, err := svc.GetPayslip(ctx, "ghost", march)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	repo.Fail("ListBonusRecords", errors.New("timeout"))
	_, err = svc.GetPayslip(ctx, "e1", march)
	assert.ErrorIs(t, err, apperror.ErrUpstreamFailure)
}

func TestRecordPayRun_Idempotent(t *testing.T) {
	repo := seededRepo()
	pub := &events.Recorder{}
	svc := newTestService(repo, pub)
	ctx := context.Background()
	req := compensation.PayRunRequest{Period: "2026-03", EmployeeIDs: []string{"e1", "e2", "e1"}}

	resp, err := svc.RecordPayRun(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.ProcessedCount)
	assert.Empty(t, resp.SkippedEmployeeIDs)

	w := march.Window()
	rows, err := repo.ListSalaryRecords(ctx, record.Filter{Window: &w})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		if r.EmployeeID == "e1" {
			assert.True(t, r.TotalSalary.Equal(dec("3485")))
			assert.True(t, r.OvertimePay.Equal(dec("150")))
		}
		assert.Equal(t, march.LastDay(), r.EffectiveDate)
	}

	_, err = svc.RecordPayRun(ctx, req)
	assert.ErrorIs(t, err, apperror.ErrAlreadyProcessed)
	assert.ErrorIs(t, err, compensation.ErrPayRunAlreadyProcessed)

	rows, err = repo.ListSalaryRecords(ctx, record.Filter{Window: &w})
	require.NoError(t, err)
	assert.Len(t, rows, 2, "second run writes nothing")
	assert.Equal(t, []string{events.TopicPayRunRecorded}, pub.Topics())
}

func TestRecordPayRun_PartialRosterSkipsProcessed(t *testing.T) {
	repo := seededRepo()
	svc := newTestService(repo, events.NoopPublisher{})
	ctx := context.Background()

	_, err := svc.RecordPayRun(ctx, compensation.PayRunRequest{Period: "2026-03", EmployeeIDs: []string{"e1"}})
	require.NoError(t, err)

	resp, err := svc.RecordPayRun(ctx, compensation.PayRunRequest{Period: "2026-03", EmployeeIDs: []string{"e1", "e2"}})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedCount)
	assert.Equal(t, []string{"e1"}, resp.SkippedEmployeeIDs)
}

func TestRecordPayRun_PublishFailureDoesNotFailRun(t *testing.T) {
	svc := newTestService(seededRepo(), &events.Recorder{Err: errors.New("broker down")})

	resp, err := svc.RecordPayRun(context.Background(), compensation.PayRunRequest{Period: "2026-03", EmployeeIDs: []string{"e2"}})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedCount)
}

func TestRecordPayRun_InvalidRequest(t *testing.T) {
	svc := newTestService(seededRepo(), events.NoopPublisher{})
	ctx := context.Background()

	_, err := svc.RecordPayRun(ctx, compensation.PayRunRequest{Period: "March", EmployeeIDs: []string{"e1"}})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = svc.RecordPayRun(ctx, compensation.PayRunRequest{Period: "2026-03"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestRenderPayslipPDF(t *testing.T) {
	svc := newTestService(seededRepo(), events.NoopPublisher{})

	doc, err := svc.RenderPayslipPDF(context.Background(), "e1", march)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))

	_, err = svc.RenderPayslipPDF(context.Background(), "ghost", march)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
