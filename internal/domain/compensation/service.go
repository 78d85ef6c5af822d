package compensation

import (
	"context"

	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
)

type CompensationService interface {
	// GetPayslip derives the payslip of one employee for one month from raw records.
	GetPayslip(ctx context.Context, employeeID string, month period.Month) (PayslipResponse, error)
	// RecordPayRun persists one salary record per roster employee, skipping those already paid for the period.
	RecordPayRun(ctx context.Context, req PayRunRequest) (PayRunResponse, error)
	// RenderPayslipPDF renders GetPayslip as a PDF document.
	RenderPayslipPDF(ctx context.Context, employeeID string, month period.Month) ([]byte, error)
}
