package authctx

import (
	"context"

	"github.com/gestionpro/erp-backend-go/internal/domain/user"
)

// Session is the per-request pairing of an authenticated user with their
// resolved permission set. It is built once by the auth middleware from
// verified token claims and read everywhere else; no other code writes it.
type Session struct {
	UserID      string
	Email       string
	Role        user.Role
	ServiceID   *string
	permissions map[user.Permission]struct{}
}

func NewSession(userID, email string, role user.Role, serviceID *string, permissions []user.Permission) Session {
	set := make(map[user.Permission]struct{}, len(permissions))
	for _, p := range permissions {
		set[p] = struct{}{}
	}
	return Session{
		UserID:      userID,
		Email:       email,
		Role:        role,
		ServiceID:   serviceID,
		permissions: set,
	}
}

// FromClaims rebuilds a Session from JWT claims. Returns false when the
// claims do not carry a usable identity.
func FromClaims(claims map[string]interface{}) (Session, bool) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Session{}, false
	}
	email, _ := claims["email"].(string)
	roleStr, ok := claims["role"].(string)
	if !ok || !user.IsValidRole(roleStr) {
		return Session{}, false
	}

	var serviceID *string
	if s, ok := claims["service_id"].(string); ok && s != "" {
		serviceID = &s
	}

	var permissions []user.Permission
	if raw, ok := claims["permissions"].([]interface{}); ok {
		for _, item := range raw {
			if name, ok := item.(string); ok {
				permissions = append(permissions, user.Permission(name))
			}
		}
	}

	return NewSession(userID, email, user.Role(roleStr), serviceID, permissions), true
}

// HasPermission reports exact membership of name in the session's permission
// set. No wildcard or prefix matching.
func (s Session) HasPermission(name user.Permission) bool {
	_, ok := s.permissions[name]
	return ok
}

// HasRole reports whether the session's role is one of roles.
func (s Session) HasRole(roles ...user.Role) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

// Permissions returns the permission names as a list, for API responses.
func (s Session) Permissions() []string {
	out := make([]string, 0, len(s.permissions))
	for p := range s.permissions {
		out = append(out, string(p))
	}
	return out
}

type ctxKey struct{}

// WithSession attaches a session to the context. Called only by the auth
// middleware.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext retrieves the session, reporting absence explicitly.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// HasPermission evaluates the predicate against the context's session.
// Fails closed: no session means false for every name.
func HasPermission(ctx context.Context, name user.Permission) bool {
	s, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return s.HasPermission(name)
}

// HasRole evaluates the role predicate against the context's session.
// Fails closed when no session is present.
func HasRole(ctx context.Context, roles ...user.Role) bool {
	s, ok := FromContext(ctx)
	if !ok {
		return false
	}
	return s.HasRole(roles...)
}
