package user

import (
	"github.com/gestionpro/erp-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Role      string  `json:"role"`
	ServiceID *string `json:"service_id,omitempty"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		ServiceID: u.ServiceID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: u.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// CreateUserRequest represents an admin request to create a new user
type CreateUserRequest struct {
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	ServiceID *string `json:"service_id,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name is required",
		})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{
			Field:   "last_name",
			Message: "last_name is required",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	} else if !IsValidRole(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of ADMIN, GENERAL_DIRECTOR, SERVICE_MANAGER, EMPLOYEE, ACCOUNTANT",
		})
	}

	if r.ServiceID != nil && !validator.IsValidUUID(*r.ServiceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "service_id",
			Message: "service_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateUserRequest represents a partial user update
type UpdateUserRequest struct {
	ID        string  `json:"-"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Role      *string `json:"role,omitempty"`
	ServiceID *string `json:"service_id,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}
	if r.Role != nil && !IsValidRole(*r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of ADMIN, GENERAL_DIRECTOR, SERVICE_MANAGER, EMPLOYEE, ACCOUNTANT",
		})
	}
	if r.ServiceID != nil && *r.ServiceID != "" && !validator.IsValidUUID(*r.ServiceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "service_id",
			Message: "service_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListUsersRequest carries list filters
type ListUsersRequest struct {
	Page   int
	Limit  int
	Search string
	Role   *string
}

// ReplacePermissionsRequest is the body of PUT /users/{id}/permissions
type ReplacePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

func (r *ReplacePermissionsRequest) Validate() error {
	var errs validator.ValidationErrors

	for _, name := range r.Permissions {
		if !validator.IsValidPermissionName(name) || !IsKnownPermission(name) {
			errs = append(errs, validator.ValidationError{
				Field:   "permissions",
				Message: "unknown permission: " + name,
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
