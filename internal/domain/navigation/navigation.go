package navigation

import (
	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"github.com/gestionpro/erp-backend-go/internal/pkg/authctx"
)

// Item is a static navigation node. A leaf has an Href; a category has
// Children. Permission, when set, gates visibility.
type Item struct {
	Name       string          `json:"name"`
	Href       string          `json:"href,omitempty"`
	Icon       string          `json:"icon,omitempty"`
	Permission user.Permission `json:"-"`
	Children   []Item          `json:"children,omitempty"`
}

// Filter prunes the tree to nodes the session may see. Children are filtered
// first; a category survives only if its own permission (when any) passes and
// at least one child remains. Source order is preserved.
func Filter(items []Item, s authctx.Session) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Permission != "" && !s.HasPermission(item.Permission) {
			continue
		}
		if len(item.Children) > 0 {
			children := Filter(item.Children, s)
			if len(children) == 0 {
				continue
			}
			item.Children = children
		}
		out = append(out, item)
	}
	return out
}

// Tree is the full menu before per-session filtering. Kept static: the
// filtered result only changes when the permission set does.
func Tree() []Item {
	return []Item{
		{Name: "Dashboard", Href: "/dashboard", Icon: "home"},
		{Name: "Messages", Href: "/messages", Icon: "mail"},
		{
			Name: "Commercial",
			Icon: "briefcase",
			Children: []Item{
				{Name: "Customers", Href: "/customers", Icon: "users", Permission: user.PermissionCustomersRead},
				{Name: "Quotes", Href: "/quotes", Icon: "file-text", Permission: user.PermissionQuotesRead},
				{Name: "Invoices", Href: "/invoices", Icon: "credit-card", Permission: user.PermissionInvoicesRead},
			},
		},
		{
			Name: "Operations",
			Icon: "tool",
			Children: []Item{
				{Name: "Missions", Href: "/missions", Icon: "map", Permission: user.PermissionMissionsRead},
				{Name: "Materials", Href: "/materials", Icon: "package", Permission: user.PermissionMaterialsRead},
			},
		},
		{
			Name: "Human Resources",
			Icon: "user-check",
			Children: []Item{
				{Name: "Employees", Href: "/employees", Icon: "users", Permission: user.PermissionEmployeesRead},
				{Name: "Leaves", Href: "/leaves", Icon: "calendar", Permission: user.PermissionLeavesApprove},
				{Name: "Loans", Href: "/loans", Icon: "dollar-sign", Permission: user.PermissionLoansApprove},
			},
		},
		{Name: "Reports", Href: "/reports", Icon: "bar-chart", Permission: user.PermissionReportsView},
		{
			Name: "Administration",
			Icon: "settings",
			Children: []Item{
				{Name: "Users", Href: "/admin/users", Icon: "users", Permission: user.PermissionUsersRead},
				{Name: "Permissions", Href: "/admin/permissions", Icon: "lock", Permission: user.PermissionUsersManagePermissions},
			},
		},
	}
}
