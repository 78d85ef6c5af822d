package compensation

import "github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"

var (
	ErrPayRunAlreadyProcessed = apperror.New(apperror.ErrAlreadyProcessed, "pay run already recorded for every employee in this period")
	ErrPayslipRenderFailed    = apperror.New(apperror.ErrUpstreamFailure, "failed to render payslip document")
)
