package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/loan"
	"github.com/cmlabs-hris/hris-compensation-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type LoanHandler interface {
	Quote(w http.ResponseWriter, r *http.Request)
	GetEligibility(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type loanHandlerImpl struct {
	loanService loan.LoanService
}

func NewLoanHandler(loanService loan.LoanService) LoanHandler {
	return &loanHandlerImpl{loanService: loanService}
}

// Quote handles POST /loans/quote
func (h *loanHandlerImpl) Quote(w http.ResponseWriter, r *http.Request) {
	var req loan.QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.loanService.ComputeLoanQuote(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEligibility handles GET /loans/eligibility/{employeeID}
func (h *loanHandlerImpl) GetEligibility(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	if !authorizeEmployee(w, scope, employeeID, identity.PermissionLoanReview) {
		return
	}

	result, err := h.loanService.GetLoanEligibility(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListTypes handles GET /loans/types
func (h *loanHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	result, err := h.loanService.ListLoanTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListRequests handles GET /loans
func (h *loanHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	result, err := h.loanService.ListLoanRequests(r.Context(), scope, r.URL.Query().Get("status"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Submit handles POST /loans
func (h *loanHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(w, r)
	if !ok {
		return
	}
	var req loan.SubmitLoanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.loanService.SubmitLoanRequest(r.Context(), scope, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Loan request submitted", result)
}

// Approve handles POST /loans/{id}/approve
func (h *loanHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.loanService.ApproveLoan)
}

// Reject handles POST /loans/{id}/reject
func (h *loanHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.loanService.RejectLoan)
}

type decisionFunc func(ctx context.Context, reviewer identity.Scope, loanID, comments string) (loan.LoanRequestResponse, error)

func (h *loanHandlerImpl) decide(w http.ResponseWriter, r *http.Request, fn decisionFunc) {
	scope, ok := scopeFrom(w, r)
	if !ok {
		return
	}

	// The body is optional; an empty one means no comments.
	var req loan.DecisionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := validator.Struct(&req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := fn(r.Context(), scope, chi.URLParam(r, "id"), req.Comments)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
