package contribution

import (
	"context"

	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
)

type ContributionService interface {
	ComputeContribution(ctx context.Context, req ComputeRequest) (Contribution, error)
	// ProcessMonthlyContributions inserts one pending record per roster employee for the period if absent.
	// Employees that already have a record for the period are skipped and listed in
	// SkippedEmployeeIDs rather than failing the batch, so a partly processed roster can be
	// completed. It fails with ErrAlreadyProcessed only when every roster employee already has a record.
	ProcessMonthlyContributions(ctx context.Context, req BatchRequest) (BatchResponse, error)
	MarkContributionsPaid(ctx context.Context, month period.Month) (MarkPaidResponse, error)
}
