package contribution

import (
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ComputeRequest struct {
	Salary decimal.Decimal `json:"salary"`
	// Rates overrides the configured rate table when set.
	Rates *RateTable `json:"rates,omitempty"`
}

type BatchRequest struct {
	Period      string   `json:"period" validate:"required"`
	EmployeeIDs []string `json:"employee_ids" validate:"required,min=1,dive,required"`
}

func (r *BatchRequest) Validate() (period.Month, error) {
	if err := validator.Struct(r); err != nil {
		return period.Month{}, err
	}
	m, err := period.Parse(r.Period)
	if err != nil {
		return period.Month{}, validator.ValidationErrors{{Field: "period", Message: "must be in YYYY-MM format"}}
	}
	return m, nil
}

type BatchResponse struct {
	Period             period.Month `json:"period"`
	ProcessedCount     int          `json:"processed_count"`
	SkippedEmployeeIDs []string     `json:"skipped_employee_ids"`
}

type MarkPaidResponse struct {
	Period    period.Month `json:"period"`
	PaidCount int64        `json:"paid_count"`
}
