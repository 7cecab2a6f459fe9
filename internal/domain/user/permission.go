package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Customers & Prospects
	PermissionCustomersRead   Permission = "customers.read"
	PermissionCustomersManage Permission = "customers.manage"

	// Quotes
	PermissionQuotesRead                 Permission = "quotes.read"
	PermissionQuotesCreate               Permission = "quotes.create"
	PermissionQuotesUpdate               Permission = "quotes.update"
	PermissionQuotesSubmitForApproval    Permission = "quotes.submit_for_approval"
	PermissionQuotesApproveService       Permission = "quotes.approve_service"
	PermissionQuotesApproveDG            Permission = "quotes.approve_dg"
	PermissionQuotesRecordClientDecision Permission = "quotes.record_client_decision"

	// Invoicing
	PermissionInvoicesRead          Permission = "invoices.read"
	PermissionInvoicesCreate        Permission = "invoices.create"
	PermissionInvoicesRecordPayment Permission = "invoices.record_payment"

	// HR
	PermissionEmployeesRead   Permission = "employees.read"
	PermissionEmployeesManage Permission = "employees.manage"
	PermissionLeavesCreate    Permission = "leaves.create"
	PermissionLeavesApprove   Permission = "leaves.approve"
	PermissionLoansRequest    Permission = "loans.request"
	PermissionLoansApprove    Permission = "loans.approve"

	// Field Service
	PermissionMissionsRead          Permission = "missions.read"
	PermissionMissionsManage        Permission = "missions.manage"
	PermissionInterventionsSchedule Permission = "interventions.schedule"
	PermissionInterventionsComplete Permission = "interventions.complete"

	// Stock
	PermissionMaterialsRead   Permission = "materials.read"
	PermissionMaterialsManage Permission = "materials.manage"

	// Reports
	PermissionReportsView Permission = "reports.view"

	// User Administration
	PermissionUsersRead              Permission = "users.read"
	PermissionUsersManage            Permission = "users.manage"
	PermissionUsersManagePermissions Permission = "users.manage_permissions"
)

// AllPermissions is the closed catalog. PUT /users/{id}/permissions rejects
// names outside it.
var AllPermissions = []Permission{
	PermissionViewOwnProfile,
	PermissionEditOwnProfile,
	PermissionCustomersRead,
	PermissionCustomersManage,
	PermissionQuotesRead,
	PermissionQuotesCreate,
	PermissionQuotesUpdate,
	PermissionQuotesSubmitForApproval,
	PermissionQuotesApproveService,
	PermissionQuotesApproveDG,
	PermissionQuotesRecordClientDecision,
	PermissionInvoicesRead,
	PermissionInvoicesCreate,
	PermissionInvoicesRecordPayment,
	PermissionEmployeesRead,
	PermissionEmployeesManage,
	PermissionLeavesCreate,
	PermissionLeavesApprove,
	PermissionLoansRequest,
	PermissionLoansApprove,
	PermissionMissionsRead,
	PermissionMissionsManage,
	PermissionInterventionsSchedule,
	PermissionInterventionsComplete,
	PermissionMaterialsRead,
	PermissionMaterialsManage,
	PermissionReportsView,
	PermissionUsersRead,
	PermissionUsersManage,
	PermissionUsersManagePermissions,
}

func IsKnownPermission(name string) bool {
	for _, p := range AllPermissions {
		if Permission(name) == p {
			return true
		}
	}
	return false
}

// RolePermissions maps roles to their default permissions. Per-user grants
// stored in user_permissions replace these defaults entirely when present.
var RolePermissions = map[Role][]Permission{
	RoleAdmin: AllPermissions,
	RoleGeneralDirector: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionCustomersRead,
		PermissionCustomersManage,
		PermissionQuotesRead,
		PermissionQuotesApproveDG,
		PermissionQuotesRecordClientDecision,
		PermissionInvoicesRead,
		PermissionEmployeesRead,
		PermissionLeavesApprove,
		PermissionLoansApprove,
		PermissionMissionsRead,
		PermissionMaterialsRead,
		PermissionReportsView,
		PermissionUsersRead,
	},
	RoleServiceManager: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionCustomersRead,
		PermissionCustomersManage,
		PermissionQuotesRead,
		PermissionQuotesCreate,
		PermissionQuotesUpdate,
		PermissionQuotesSubmitForApproval,
		PermissionQuotesApproveService,
		PermissionEmployeesRead,
		PermissionLeavesApprove,
		PermissionMissionsRead,
		PermissionMissionsManage,
		PermissionInterventionsSchedule,
		PermissionInterventionsComplete,
		PermissionMaterialsRead,
		PermissionMaterialsManage,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionCustomersRead,
		PermissionQuotesRead,
		PermissionQuotesCreate,
		PermissionQuotesUpdate,
		PermissionQuotesSubmitForApproval,
		PermissionLeavesCreate,
		PermissionLoansRequest,
		PermissionMissionsRead,
		PermissionMaterialsRead,
	},
	RoleAccountant: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionCustomersRead,
		PermissionQuotesRead,
		PermissionInvoicesRead,
		PermissionInvoicesCreate,
		PermissionInvoicesRecordPayment,
		PermissionReportsView,
	},
}

// DefaultPermissions returns the default permission set for a role.
func DefaultPermissions(role Role) []Permission {
	permissions, exists := RolePermissions[role]
	if !exists {
		return nil
	}
	out := make([]Permission, len(permissions))
	copy(out, permissions)
	return out
}
