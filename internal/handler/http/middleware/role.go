package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hris-compensation-go/internal/domain/identity"
	"github.com/cmlabs-hris/hris-compensation-go/internal/handler/http/response"
)

// RequirePermission checks if the caller's role has a specific permission
func RequirePermission(permission identity.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope, err := identity.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !identity.HasPermission(scope.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, scope.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
