package http

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/compensation"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
	"github.com/cmlabs-hris/hris-compensation-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CompensationHandler interface {
	GetPayslip(w http.ResponseWriter, r *http.Request)
	GetPayslipPDF(w http.ResponseWriter, r *http.Request)
	RecordPayRun(w http.ResponseWriter, r *http.Request)
}

type compensationHandlerImpl struct {
	compensationService compensation.CompensationService
}

func NewCompensationHandler(compensationService compensation.CompensationService) CompensationHandler {
	return &compensationHandlerImpl{compensationService: compensationService}
}

// GetPayslip handles GET /payslips/{employeeID}
func (h *compensationHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	if !authorizeEmployee(w, scope, employeeID, identity.PermissionPayslipViewAll) {
		return
	}
	month, ok := periodParam(w, r)
	if !ok {
		return
	}

	result, err := h.compensationService.GetPayslip(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPayslipPDF handles GET /payslips/{employeeID}/pdf
func (h *compensationHandlerImpl) GetPayslipPDF(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	if !authorizeEmployee(w, scope, employeeID, identity.PermissionPayslipViewAll) {
		return
	}
	month, ok := periodParam(w, r)
	if !ok {
		return
	}

	doc, err := h.compensationService.RenderPayslipPDF(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.PDF(w, fmt.Sprintf("payslip-%s-%s.pdf", employeeID, month), doc)
}

// RecordPayRun handles POST /payroll/runs
func (h *compensationHandlerImpl) RecordPayRun(w http.ResponseWriter, r *http.Request) {
	var req compensation.PayRunRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.compensationService.RecordPayRun(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay run recorded", result)
}
