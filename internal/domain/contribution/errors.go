package contribution

import "github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"

var (
	ErrAlreadyProcessed = apperror.New(apperror.ErrAlreadyProcessed, "contributions already processed for every employee in this period")
	ErrPeriodRequired   = apperror.New(apperror.ErrInvalidInput, "period is required")
)
