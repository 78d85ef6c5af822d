package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/contribution"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
)

// ContributionJobs triggers the monthly contribution batch from outside the core.
type ContributionJobs struct {
	contributionSvc contribution.ContributionService
	employees       record.EmployeeReader
	batchDay        int
	now             func() time.Time
	logger          *slog.Logger
}

func NewContributionJobs(contributionSvc contribution.ContributionService, employees record.EmployeeReader, batchDay int, logger *slog.Logger) *ContributionJobs {
	return &ContributionJobs{
		contributionSvc: contributionSvc,
		employees:       employees,
		batchDay:        batchDay,
		now:             time.Now,
		logger:          logger,
	}
}

func (j *ContributionJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("process_monthly_contributions", interval, j.ProcessPreviousMonth)
}

// ProcessPreviousMonth runs the batch for last month's active roster on the configured day.
// It fires on every tick of that day; repeats end in AlreadyProcessed, which counts as success.
func (j *ContributionJobs) ProcessPreviousMonth(ctx context.Context) error {
	today := j.now().UTC()
	if today.Day() != j.batchDay {
		return nil
	}
	month := period.Of(today).Previous()

	active, err := j.employees.ListEmployees(ctx, record.Filter{Status: string(record.EmployeeStatusActive)})
	if err != nil {
		return err
	}
	if len(active) == 0 {
		j.logger.Info("Cron: no active employees, skipping contribution batch", "period", month.String())
		return nil
	}
	roster := make([]string, 0, len(active))
	for _, e := range active {
		roster = append(roster, e.ID)
	}

	result, err := j.contributionSvc.ProcessMonthlyContributions(ctx, contribution.BatchRequest{
		Period:      month.String(),
		EmployeeIDs: roster,
	})
	if errors.Is(err, apperror.ErrAlreadyProcessed) {
		j.logger.Debug("Cron: contribution batch already processed", "period", month.String())
		return nil
	}
	if err != nil {
		return err
	}

	j.logger.Info("Cron: contribution batch processed",
		"period", month.String(),
		"processed", result.ProcessedCount,
		"skipped", len(result.SkippedEmployeeIDs),
	)
	return nil
}
