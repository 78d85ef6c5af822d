package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
	"github.com/cmlabs-hris/hris-compensation-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired turns the verified bearer token into an identity.Scope on the request context.
// The token must carry employee_id and role; subordinate_ids is optional.
func AuthRequired(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.HandleError(w, identity.ErrMissingScope)
			return
		}

		scope, err := scopeFromClaims(claims)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.WithScope(r.Context(), scope)))
	}
	return http.HandlerFunc(hfn)
}

func scopeFromClaims(claims map[string]interface{}) (identity.Scope, error) {
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return identity.Scope{}, identity.ErrInvalidScope
	}
	roleStr, ok := claims["role"].(string)
	role := identity.Role(roleStr)
	if !ok || !role.IsValid() {
		return identity.Scope{}, identity.ErrInvalidScope
	}

	var subordinates []string
	switch raw := claims["subordinate_ids"].(type) {
	case nil:
	case []interface{}:
		subordinates = make([]string, 0, len(raw))
		for _, v := range raw {
			id, ok := v.(string)
			if !ok {
				return identity.Scope{}, identity.ErrInvalidScope
			}
			subordinates = append(subordinates, id)
		}
	case []string:
		subordinates = raw
	default:
		return identity.Scope{}, identity.ErrInvalidScope
	}

	return identity.Scope{EmployeeID: employeeID, Role: role, SubordinateIDs: subordinates}, nil
}
