package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"github.com/gestionpro/erp-backend-go/internal/handler/http/middleware"
	"github.com/gestionpro/erp-backend-go/internal/pkg/authctx"
	"github.com/gestionpro/erp-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestToken(t *testing.T, jwtService jwt.Service, role user.Role, permissions ...user.Permission) string {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken(user.User{
		ID:    "user-1",
		Email: "sales@gestionpro.fr",
		Role:  role,
	}, permissions)
	require.NoError(t, err)
	return token
}

func protectedChain(jwtService jwt.Service, next http.Handler) http.Handler {
	ja := jwtService.JWTAuth()
	return jwtauth.Verifier(ja)(middleware.AuthRequired(ja)(next))
}

func TestAuthRequiredRejectsMissingToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	handler := protectedChain(jwtService, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"path":"/api/v1/quotes"`)
}

func TestAuthRequiredRejectsGarbageToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	handler := protectedChain(jwtService, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequiredRejectsTokenSignedWithOtherSecret(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	other := jwt.NewJWTService("other-secret", "1h")
	handler := protectedChain(jwtService, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a foreign token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+newTestToken(t, other, user.RoleEmployee))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequiredInstallsSession(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")

	var seen authctx.Session
	handler := protectedChain(jwtService, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := authctx.FromContext(r.Context())
		require.True(t, ok)
		seen = session
		w.WriteHeader(http.StatusOK)
	}))

	token := newTestToken(t, jwtService, user.RoleServiceManager, user.PermissionQuotesRead, user.PermissionQuotesApproveService)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", seen.UserID)
	assert.Equal(t, user.RoleServiceManager, seen.Role)
	assert.True(t, seen.HasPermission(user.PermissionQuotesApproveService))
	assert.False(t, seen.HasPermission(user.PermissionQuotesApproveDG))
}

func TestRequirePermissionForbidsWithoutPermission(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	guarded := middleware.RequirePermission(user.PermissionQuotesApproveDG)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without the permission")
	}))
	handler := protectedChain(jwtService, guarded)

	token := newTestToken(t, jwtService, user.RoleServiceManager, user.PermissionQuotesApproveService)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/q1/actions/approve_dg", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "quotes.approve_dg")
}

func TestRequirePermissionPassesWithPermission(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	guarded := middleware.RequirePermission(user.PermissionQuotesRead)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler := protectedChain(jwtService, guarded)

	token := newTestToken(t, jwtService, user.RoleEmployee, user.PermissionQuotesRead)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// No session at all means RequirePermission fails closed, even if the
// middleware is misordered and AuthRequired never ran.
func TestRequirePermissionFailsClosedWithoutSession(t *testing.T) {
	guarded := middleware.RequirePermission(user.PermissionQuotesRead)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a session")
	}))

	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/quotes", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h")
	guarded := middleware.RequireRoles(user.RoleAdmin, user.RoleGeneralDirector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler := protectedChain(jwtService, guarded)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+newTestToken(t, jwtService, user.RoleEmployee))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/reports/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+newTestToken(t, jwtService, user.RoleGeneralDirector))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRateLimiterThrottlesPerIP(t *testing.T) {
	limiter := middleware.NewLoginRateLimiter(0, 2)
	handler := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, request("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, request("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1:1234"))

	// A different client keeps its own budget.
	assert.Equal(t, http.StatusOK, request("10.0.0.2:1234"))
}
