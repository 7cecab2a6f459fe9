package navigation

import (
	"testing"

	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"github.com/gestionpro/erp-backend-go/internal/pkg/authctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session(perms ...user.Permission) authctx.Session {
	return authctx.NewSession("u-1", "u@example.com", user.RoleEmployee, nil, perms)
}

func names(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

func TestFilter_UngatedItemsAlwaysVisible(t *testing.T) {
	got := Filter(Tree(), session())
	assert.Equal(t, []string{"Dashboard", "Messages"}, names(got))
}

func TestFilter_LeafRequiresExactPermission(t *testing.T) {
	got := Filter(Tree(), session(user.PermissionCustomersRead))

	require.Contains(t, names(got), "Commercial")
	for _, item := range got {
		if item.Name == "Commercial" {
			assert.Equal(t, []string{"Customers"}, names(item.Children))
		}
	}
}

func TestFilter_EmptyCategoryPruned(t *testing.T) {
	// No admin permission at all: the Administration category must vanish,
	// not render empty.
	got := Filter(Tree(), session(user.PermissionCustomersRead, user.PermissionQuotesRead))
	assert.NotContains(t, names(got), "Administration")
	assert.NotContains(t, names(got), "Human Resources")
}

func TestFilter_CategoryKeptWhenOneChildSurvives(t *testing.T) {
	got := Filter(Tree(), session(user.PermissionUsersManagePermissions))

	require.Contains(t, names(got), "Administration")
	for _, item := range got {
		if item.Name == "Administration" {
			assert.Equal(t, []string{"Permissions"}, names(item.Children))
		}
	}
}

func TestFilter_OrderPreserved(t *testing.T) {
	s := session(
		user.PermissionCustomersRead,
		user.PermissionQuotesRead,
		user.PermissionInvoicesRead,
		user.PermissionMissionsRead,
		user.PermissionMaterialsRead,
		user.PermissionEmployeesRead,
		user.PermissionLeavesApprove,
		user.PermissionLoansApprove,
		user.PermissionReportsView,
		user.PermissionUsersRead,
		user.PermissionUsersManagePermissions,
	)
	got := Filter(Tree(), s)
	assert.Equal(t, []string{
		"Dashboard", "Messages", "Commercial", "Operations",
		"Human Resources", "Reports", "Administration",
	}, names(got))
}

func TestFilter_NoSessionSeesOnlyUngated(t *testing.T) {
	var empty authctx.Session
	got := Filter(Tree(), empty)
	assert.Equal(t, []string{"Dashboard", "Messages"}, names(got))
}

func TestFilter_GatedCategory(t *testing.T) {
	tree := []Item{
		{
			Name:       "Restricted",
			Permission: user.PermissionUsersManage,
			Children: []Item{
				{Name: "Child", Href: "/c", Permission: user.PermissionCustomersRead},
			},
		},
	}

	// Child permission alone is not enough when the category itself is gated.
	got := Filter(tree, session(user.PermissionCustomersRead))
	assert.Empty(t, got)

	got = Filter(tree, session(user.PermissionCustomersRead, user.PermissionUsersManage))
	require.Len(t, got, 1)
	assert.Equal(t, "Restricted", got[0].Name)
}
