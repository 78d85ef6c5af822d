package dashboard

import (
	"context"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboardRollup returns month sums, pending counts, recent activity and
	// department counts for the caller's scope, reading every source concurrently
	GetDashboardRollup(ctx context.Context, scope identity.Scope, month period.Month) (*RollupResponse, error)

	// GetPerformanceSnapshot returns monthly attendance counts joined with the current KPI
	GetPerformanceSnapshot(ctx context.Context, employeeID string, month period.Month) (*PerformanceResponse, error)
}
