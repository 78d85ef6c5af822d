package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
	"github.com/cmlabs-hris/hris-compensation-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DashboardHandler interface {
	// GetRollup returns the role-scoped month rollup
	GetRollup(w http.ResponseWriter, r *http.Request)
	// GetPerformance returns monthly attendance joined with the current KPI
	GetPerformance(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetRollup handles GET /dashboard/rollup
func (h *dashboardHandlerImpl) GetRollup(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(w, r)
	if !ok {
		return
	}
	month, ok := periodParam(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetDashboardRollup(r.Context(), scope, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPerformance handles GET /dashboard/performance/{employeeID}
func (h *dashboardHandlerImpl) GetPerformance(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	if !authorizeEmployee(w, scope, employeeID, identity.PermissionDashboardView) {
		return
	}
	month, ok := periodParam(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetPerformanceSnapshot(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
