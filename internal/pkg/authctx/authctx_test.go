package authctx

import (
	"context"
	"testing"

	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicates_FailClosedWithoutSession(t *testing.T) {
	ctx := context.Background()

	for _, p := range user.AllPermissions {
		assert.False(t, HasPermission(ctx, p))
	}
	for _, r := range user.ValidRoles {
		assert.False(t, HasRole(ctx, r))
	}
}

func TestHasPermission_ExactMembershipOnly(t *testing.T) {
	s := NewSession("u-1", "u@example.com", user.RoleEmployee, nil, []user.Permission{
		user.PermissionQuotesRead,
	})

	assert.True(t, s.HasPermission(user.PermissionQuotesRead))

	// No prefix or substring matching: quotes.read must not satisfy
	// quotes.approve_dg or any other quotes.* check.
	assert.False(t, s.HasPermission(user.PermissionQuotesApproveDG))
	assert.False(t, s.HasPermission(user.PermissionQuotesApproveService))
	assert.False(t, s.HasPermission(user.Permission("quotes")))
	assert.False(t, s.HasPermission(user.Permission("quotes.read.all")))
}

func TestHasRole(t *testing.T) {
	s := NewSession("u-1", "u@example.com", user.RoleServiceManager, nil, nil)

	assert.True(t, s.HasRole(user.RoleServiceManager))
	assert.True(t, s.HasRole(user.RoleAdmin, user.RoleServiceManager))
	assert.False(t, s.HasRole(user.RoleAdmin))
	assert.False(t, s.HasRole())
}

func TestZeroSession_FailsClosed(t *testing.T) {
	var s Session

	assert.False(t, s.HasPermission(user.PermissionQuotesRead))
	assert.False(t, s.HasRole(user.RoleAdmin))
	assert.Empty(t, s.Permissions())
}

func TestFromClaims(t *testing.T) {
	claims := map[string]interface{}{
		"user_id":     "0190cdb3-4aef-7cc1-9ab8-7a2f6e5d4c3b",
		"email":       "dg@example.com",
		"role":        "GENERAL_DIRECTOR",
		"service_id":  "0190cdb3-4aef-7cc1-9ab8-7a2f6e5d4c3c",
		"permissions": []interface{}{"quotes.read", "quotes.approve_dg"},
	}

	s, ok := FromClaims(claims)
	require.True(t, ok)
	assert.Equal(t, "0190cdb3-4aef-7cc1-9ab8-7a2f6e5d4c3b", s.UserID)
	assert.Equal(t, user.RoleGeneralDirector, s.Role)
	require.NotNil(t, s.ServiceID)
	assert.True(t, s.HasPermission(user.PermissionQuotesApproveDG))
	assert.False(t, s.HasPermission(user.PermissionQuotesCreate))
}

func TestFromClaims_RejectsBadIdentity(t *testing.T) {
	_, ok := FromClaims(map[string]interface{}{"role": "ADMIN"})
	assert.False(t, ok)

	_, ok = FromClaims(map[string]interface{}{"user_id": "u-1", "role": "SUPERUSER"})
	assert.False(t, ok)

	_, ok = FromClaims(map[string]interface{}{"user_id": "", "role": "ADMIN"})
	assert.False(t, ok)
}

func TestContextRoundTrip(t *testing.T) {
	s := NewSession("u-1", "u@example.com", user.RoleAccountant, nil, []user.Permission{
		user.PermissionInvoicesRead,
	})
	ctx := WithSession(context.Background(), s)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u-1", got.UserID)
	assert.True(t, HasPermission(ctx, user.PermissionInvoicesRead))
	assert.False(t, HasPermission(ctx, user.PermissionInvoicesCreate))
	assert.True(t, HasRole(ctx, user.RoleAccountant))
}
