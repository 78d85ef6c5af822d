package contribution

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/contribution"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/events"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/google/uuid"
)

type Store interface {
	record.EmployeeReader
	record.ContributionStore
	record.Transactor
}

type ContributionServiceImpl struct {
	store     Store
	rates     contribution.RateTable
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewContributionService(
	store Store,
	rates contribution.RateTable,
	publisher events.Publisher,
	logger *slog.Logger,
) contribution.ContributionService {
	return &ContributionServiceImpl{
		store:     store,
		rates:     rates,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// ComputeContribution applies the configured rate table, or the request's override when present.
func (s *ContributionServiceImpl) ComputeContribution(ctx context.Context, req contribution.ComputeRequest) (contribution.Contribution, error) {
	rates := s.rates
	if req.Rates != nil {
		rates = *req.Rates
	}
	return contribution.Compute(req.Salary, rates)
}

// ========== BATCH ==========

func (s *ContributionServiceImpl) ProcessMonthlyContributions(ctx context.Context, req contribution.BatchRequest) (contribution.BatchResponse, error) {
	month, err := req.Validate()
	if err != nil {
		return contribution.BatchResponse{}, err
	}

	resp := contribution.BatchResponse{Period: month, SkippedEmployeeIDs: []string{}}
	var inserted []record.ContributionRecord

	err = s.store.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, id := range dedupe(req.EmployeeIDs) {
			exists, err := s.store.ContributionExists(txCtx, id, month)
			if err != nil {
				return err
			}
			if exists {
				resp.SkippedEmployeeIDs = append(resp.SkippedEmployeeIDs, id)
				continue
			}

			emp, err := s.store.GetEmployee(txCtx, id)
			if err != nil {
				return err
			}
			salary := emp.MonthlySalary().Round(2)
			amounts, err := contribution.Compute(salary, s.rates)
			if err != nil {
				return err
			}

			rec := record.ContributionRecord{
				ID:          uuid.Must(uuid.NewV7()).String(),
				EmployeeID:  id,
				Period:      month,
				Salary:      salary,
				EmployeeEPF: amounts.EPFEmployee,
				EmployerEPF: amounts.EPFEmployer,
				ETF:         amounts.ETF,
				AppliedDate: month.LastDay(),
				Status:      record.ContributionPending,
			}
			ok, err := s.store.InsertContributionIfAbsent(txCtx, rec)
			if err != nil {
				return err
			}
			if !ok {
				resp.SkippedEmployeeIDs = append(resp.SkippedEmployeeIDs, id)
				continue
			}
			inserted = append(inserted, rec)
		}

		if len(inserted) == 0 {
			return contribution.ErrAlreadyProcessed
		}
		return nil
	})
	if err != nil {
		return contribution.BatchResponse{}, err
	}

	resp.ProcessedCount = len(inserted)
	s.logger.InfoContext(ctx, "contribution batch processed",
		slog.String("period", month.String()),
		slog.Int("processed", resp.ProcessedCount),
		slog.Int("skipped", len(resp.SkippedEmployeeIDs)),
	)
	s.publish(ctx, events.Event{
		Topic: events.TopicContributionBatchProcessed,
		Key:   month.String(),
		Type:  "contribution.batch_processed",
		Payload: map[string]any{
			"period":          month.String(),
			"processed_count": resp.ProcessedCount,
			"skipped":         resp.SkippedEmployeeIDs,
		},
		OccurredAt: s.now(),
	})
	return resp, nil
}

// MarkContributionsPaid moves the period's pending records to paid. Paid records never move back.
func (s *ContributionServiceImpl) MarkContributionsPaid(ctx context.Context, month period.Month) (contribution.MarkPaidResponse, error) {
	if month.IsZero() {
		return contribution.MarkPaidResponse{}, contribution.ErrPeriodRequired
	}

	moved, err := s.store.MarkContributionsPaid(ctx, month)
	if err != nil {
		return contribution.MarkPaidResponse{}, err
	}

	s.logger.InfoContext(ctx, "contributions marked paid", slog.String("period", month.String()), slog.Int64("count", moved))
	if moved > 0 {
		s.publish(ctx, events.Event{
			Topic:      events.TopicContributionsPaid,
			Key:        month.String(),
			Type:       "contribution.paid",
			Payload:    map[string]any{"period": month.String(), "paid_count": moved},
			OccurredAt: s.now(),
		})
	}
	return contribution.MarkPaidResponse{Period: month, PaidCount: moved}, nil
}

func (s *ContributionServiceImpl) publish(ctx context.Context, e events.Event) {
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event", slog.String("type", e.Type), slog.Any("error", err))
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
