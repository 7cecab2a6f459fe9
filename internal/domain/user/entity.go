package user

import "time"

type Role string

const (
	RoleAdmin           Role = "ADMIN"            // Full access, user administration
	RoleGeneralDirector Role = "GENERAL_DIRECTOR" // Final quote approval tier
	RoleServiceManager  Role = "SERVICE_MANAGER"  // First quote approval tier, operations
	RoleEmployee        Role = "EMPLOYEE"         // Regular staff
	RoleAccountant      Role = "ACCOUNTANT"       // Invoicing and payments
)

// ValidRoles lists every assignable role.
var ValidRoles = []Role{
	RoleAdmin,
	RoleGeneralDirector,
	RoleServiceManager,
	RoleEmployee,
	RoleAccountant,
}

func IsValidRole(r string) bool {
	for _, role := range ValidRoles {
		if Role(r) == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	ServiceID    *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsDirector checks if user sits at the final approval tier.
func (u *User) IsDirector() bool {
	return u.Role == RoleGeneralDirector || u.Role == RoleAdmin
}

// IsServiceManager checks if user sits at the first approval tier.
func (u *User) IsServiceManager() bool {
	return u.Role == RoleServiceManager || u.Role == RoleAdmin
}
