package user

import "context"

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context, req ListUsersRequest) ([]User, int64, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	Deactivate(ctx context.Context, id string) error
	Activate(ctx context.Context, id string) error

	// Permissions returns the effective set: the explicit override when one
	// exists, otherwise the role defaults.
	Permissions(ctx context.Context, userID string) ([]Permission, bool, error)
	ReplacePermissions(ctx context.Context, userID string, req ReplacePermissionsRequest) error
	ResetPermissions(ctx context.Context, userID string) error
}
