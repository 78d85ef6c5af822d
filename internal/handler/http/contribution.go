package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/contribution"
	"github.com/cmlabs-hris/hris-compensation-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type ContributionHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
	ProcessBatch(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
}

type contributionHandlerImpl struct {
	contributionService contribution.ContributionService
}

func NewContributionHandler(contributionService contribution.ContributionService) ContributionHandler {
	return &contributionHandlerImpl{contributionService: contributionService}
}

// Compute handles POST /contributions/compute
func (h *contributionHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	var req contribution.ComputeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.contributionService.ComputeContribution(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ProcessBatch handles POST /contributions/batches
func (h *contributionHandlerImpl) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	var req contribution.BatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.contributionService.ProcessMonthlyContributions(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Contribution batch processed", result)
}

// MarkPaid handles POST /contributions/batches/{period}/paid
func (h *contributionHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	month, err := period.Parse(chi.URLParam(r, "period"))
	if err != nil {
		response.HandleError(w, validator.ValidationErrors{{Field: "period", Message: "must be in YYYY-MM format"}})
		return
	}

	result, err := h.contributionService.MarkContributionsPaid(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
