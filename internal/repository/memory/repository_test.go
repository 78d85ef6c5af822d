package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march = period.Month{Year: 2026, Month: time.March}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 9, 0, 0, 0, time.UTC)
}

func TestListBonusRecords_FilterAndLimit(t *testing.T) {
	repo := NewRepository()
	repo.AddBonusRecords(
		record.BonusRecord{ID: "b1", EmployeeID: "e1", Amount: decimal.NewFromInt(100), PaidAt: day(2)},
		record.BonusRecord{ID: "b2", EmployeeID: "e2", Amount: decimal.NewFromInt(200), PaidAt: day(5)},
		record.BonusRecord{ID: "b3", EmployeeID: "e1", Amount: decimal.NewFromInt(300), PaidAt: day(9)},
		record.BonusRecord{ID: "b4", EmployeeID: "e1", Amount: decimal.NewFromInt(400), PaidAt: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)},
	)
	ctx := context.Background()
	w := march.Window()

	all, err := repo.ListBonusRecords(ctx, record.Filter{Window: &w})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := repo.ListBonusRecords(ctx, record.Filter{EmployeeIDs: []string{"e1"}, Window: &w})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "b1", mine[0].ID)

	latest, err := repo.ListBonusRecords(ctx, record.Filter{EmployeeIDs: []string{"e1"}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "b4", latest[0].ID)

	none, err := repo.ListBonusRecords(ctx, record.Filter{EmployeeIDs: []string{}})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestInsertContributionIfAbsent(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()
	rec := record.ContributionRecord{ID: "c1", EmployeeID: "e1", Period: march, Status: record.ContributionPending}

	inserted, err := repo.InsertContributionIfAbsent(ctx, rec)
	require.NoError(t, err)
	assert.True(t, inserted)

	rec.ID = "c2"
	inserted, err = repo.InsertContributionIfAbsent(ctx, rec)
	require.NoError(t, err)
	assert.False(t, inserted)

	exists, err := repo.ContributionExists(ctx, "e1", march)
	require.NoError(t, err)
	assert.True(t, exists)

	moved, err := repo.MarkContributionsPaid(ctx, march)
	require.NoError(t, err)
	assert.EqualValues(t, 1, moved)

	moved, err = repo.MarkContributionsPaid(ctx, march)
	require.NoError(t, err)
	assert.EqualValues(t, 0, moved)
}

func TestTransitionLoanRequest_CompareAndSet(t *testing.T) {
	repo := NewRepository()
	repo.AddLoanRequests(record.LoanRequest{ID: "l1", EmployeeID: "e1", Status: record.LoanStatusPending})
	ctx := context.Background()

	const racers = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		wins     int
		conflict int
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			to := record.LoanStatusApproved
			if i%2 == 1 {
				to = record.LoanStatusRejected
			}
			_, err := repo.TransitionLoanRequest(ctx, record.LoanTransition{
				LoanID: "l1", From: record.LoanStatusPending, To: to, ReviewerID: "m1", At: day(3),
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, record.ErrLoanStatusConflict):
				conflict++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, conflict)

	stored, err := repo.GetLoanRequest(ctx, "l1")
	require.NoError(t, err)
	assert.NotEqual(t, record.LoanStatusPending, stored.Status)
	require.NotNil(t, stored.ReviewerID)
	assert.Equal(t, "m1", *stored.ReviewerID)

	_, err = repo.TransitionLoanRequest(ctx, record.LoanTransition{LoanID: "missing", From: record.LoanStatusPending, To: record.LoanStatusApproved})
	assert.ErrorIs(t, err, record.ErrLoanRequestNotFound)
}

func TestFail_InjectsUpstreamFailure(t *testing.T) {
	repo := NewRepository()
	repo.Fail("ListTasks", errors.New("connection reset"))
	ctx := context.Background()

	_, err := repo.ListTasks(ctx, record.Filter{})
	assert.ErrorIs(t, err, apperror.ErrUpstreamFailure)
	assert.Equal(t, 1, repo.Calls("ListTasks"))

	repo.Fail("ListTasks", nil)
	_, err = repo.ListTasks(ctx, record.Filter{})
	assert.NoError(t, err)
}

func TestGetEmployee_NotFound(t *testing.T) {
	_, err := NewRepository().GetEmployee(context.Background(), "ghost")
	assert.ErrorIs(t, err, record.ErrEmployeeNotFound)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
