package middleware

import (
	"net/http"

	"github.com/gestionpro/erp-backend-go/internal/handler/http/response"
	"github.com/gestionpro/erp-backend-go/internal/pkg/authctx"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired verifies the access token and installs the session in the
// request context. The 401 payload echoes the requested path so the client
// can return there after login.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			deny := func(message string) {
				response.UnauthorizedWithDetails(w, message, map[string]string{
					"path": r.URL.Path,
				})
			}

			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				deny(err.Error())
				return
			}
			if token == nil {
				deny("Missing or invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				deny("Missing or invalid token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				deny("Missing or invalid token")
				return
			}

			session, ok := authctx.FromClaims(claims)
			if !ok {
				deny("Missing or invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(authctx.WithSession(r.Context(), session)))
		}
		return http.HandlerFunc(hfn)
	}
}
