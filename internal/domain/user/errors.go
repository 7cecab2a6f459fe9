package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrUserDeactivated         = errors.New("user account is deactivated")
	ErrInvalidRole             = errors.New("invalid role")
	ErrUnknownPermission       = errors.New("unknown permission name")
	ErrAdminAccessRequired     = errors.New("admin access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrCannotDeleteUser        = errors.New("users are deactivated, never deleted")
)
