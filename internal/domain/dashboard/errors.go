package dashboard

import "github.com/cmlabs-hris/hris-compensation-go/internal/pkg/apperror"

var ErrPeriodRequired = apperror.New(apperror.ErrInvalidInput, "period is required")
