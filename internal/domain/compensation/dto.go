package compensation

import (
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/validator"
)

type PayslipResponse struct {
	EmployeeID   string       `json:"employee_id"`
	EmployeeName string       `json:"employee_name"`
	Department   string       `json:"department"`
	Position     string       `json:"position"`
	Period       period.Month `json:"period"`
	Payslip
}

type PayRunRequest struct {
	Period      string   `json:"period" validate:"required"`
	EmployeeIDs []string `json:"employee_ids" validate:"required,min=1,dive,required"`
}

func (r *PayRunRequest) Validate() (period.Month, error) {
	if err := validator.Struct(r); err != nil {
		return period.Month{}, err
	}
	m, err := period.Parse(r.Period)
	if err != nil {
		return period.Month{}, validator.ValidationErrors{{Field: "period", Message: "must be in YYYY-MM format"}}
	}
	return m, nil
}

type PayRunResponse struct {
	Period             period.Month `json:"period"`
	ProcessedCount     int          `json:"processed_count"`
	SkippedEmployeeIDs []string     `json:"skipped_employee_ids"`
}
