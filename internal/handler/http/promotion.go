package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/promotion"
	"github.com/cmlabs-hris/hris-compensation-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PromotionHandler interface {
	GetReadiness(w http.ResponseWriter, r *http.Request)
}

type promotionHandlerImpl struct {
	promotionService promotion.PromotionService
}

func NewPromotionHandler(promotionService promotion.PromotionService) PromotionHandler {
	return &promotionHandlerImpl{promotionService: promotionService}
}

// GetReadiness handles GET /promotions/readiness/{employeeID}
func (h *promotionHandlerImpl) GetReadiness(w http.ResponseWriter, r *http.Request) {
	scope, ok := scopeFrom(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	if !authorizeEmployee(w, scope, employeeID, identity.PermissionReadinessView) {
		return
	}

	result, err := h.promotionService.GetPromotionReadiness(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
