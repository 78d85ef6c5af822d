package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
	"github.com/cmlabs-hris/hris-compensation-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/period"
	"github.com/cmlabs-hris/hris-compensation-go/internal/pkg/validator"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// periodParam reads ?period=YYYY-MM, defaulting to the current month.
func periodParam(w http.ResponseWriter, r *http.Request) (period.Month, bool) {
	m, err := period.ParseOrCurrent(r.URL.Query().Get("period"), time.Now())
	if err != nil {
		response.HandleError(w, validator.ValidationErrors{{Field: "period", Message: "must be in YYYY-MM format"}})
		return period.Month{}, false
	}
	return m, true
}

func scopeFrom(w http.ResponseWriter, r *http.Request) (identity.Scope, bool) {
	scope, err := identity.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return identity.Scope{}, false
	}
	return scope, true
}

// authorizeEmployee allows the caller's own records, and records inside the caller's scope
// when their role holds perm.
func authorizeEmployee(w http.ResponseWriter, scope identity.Scope, employeeID string, perm identity.Permission) bool {
	if employeeID == scope.EmployeeID || (identity.HasPermission(scope.Role, perm) && scope.CanAccess(employeeID)) {
		return true
	}
	response.HandleError(w, identity.ErrAccessDenied)
	return false
}
