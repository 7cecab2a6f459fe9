package middleware

import (
	"fmt"
	"net/http"

	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"github.com/gestionpro/erp-backend-go/internal/handler/http/response"
	"github.com/gestionpro/erp-backend-go/internal/pkg/authctx"
)

// RequirePermission gates a route on exact membership of one permission in
// the session's set. No session or a missing permission both yield 403; the
// route stays visible in neither case.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authctx.HasPermission(r.Context(), permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRoles gates a route on the session's role being one of roles.
func RequireRoles(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authctx.HasRole(r.Context(), roles...) {
				response.Forbidden(w, "Insufficient role for this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
