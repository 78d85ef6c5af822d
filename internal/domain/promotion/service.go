package promotion

import "context"

type PromotionService interface {
	// GetPromotionReadiness evaluates the configured criteria against the employee's current records.
	GetPromotionReadiness(ctx context.Context, employeeID string) (ReadinessResponse, error)
}
