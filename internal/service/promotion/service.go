package promotion

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/promotion"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/record"
	"golang.org/x/sync/errgroup"
)

type Store interface {
	record.EmployeeReader
	record.DevelopmentReader
}

type PromotionServiceImpl struct {
	store    Store
	criteria []promotion.Criterion
	now      func() time.Time
}

func NewPromotionService(store Store, thresholds promotion.Thresholds) promotion.PromotionService {
	return &PromotionServiceImpl{
		store:    store,
		criteria: promotion.DefaultCriteria(thresholds),
		now:      time.Now,
	}
}

// GetPromotionReadiness reads the employee's latest KPI, latest promotion and training history
// concurrently. Every read is load-bearing: a partial snapshot would misreport readiness.
func (s *PromotionServiceImpl) GetPromotionReadiness(ctx context.Context, employeeID string) (promotion.ReadinessResponse, error) {
	latest := record.ForEmployee(employeeID)
	latest.Limit = 1

	var (
		emp        record.Employee
		kpis       []record.KPIRecord
		promotions []record.PromotionRecord
		trainings  []record.TrainingAssignment
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		emp, err = s.store.GetEmployee(gCtx, employeeID)
		return err
	})
	g.Go(func() (err error) {
		kpis, err = s.store.ListKPIRecords(gCtx, latest)
		return err
	})
	g.Go(func() (err error) {
		promotions, err = s.store.ListPromotions(gCtx, latest)
		return err
	})
	g.Go(func() (err error) {
		trainings, err = s.store.ListTrainingAssignments(gCtx, record.ForEmployee(employeeID))
		return err
	})
	if err := g.Wait(); err != nil {
		return promotion.ReadinessResponse{}, err
	}

	snap := promotion.Snapshot{
		Employee:  emp,
		Trainings: trainings,
		Now:       s.now(),
	}
	if len(kpis) > 0 {
		snap.LatestKPI = &kpis[0]
	}
	if len(promotions) > 0 {
		snap.LatestPromotion = &promotions[0]
	}

	return promotion.ReadinessResponse{
		EmployeeID:      emp.ID,
		CurrentPosition: snap.CurrentPosition(),
		Training:        promotion.Summarize(trainings, snap.Now),
		Readiness:       promotion.Evaluate(s.criteria, snap),
	}, nil
}
