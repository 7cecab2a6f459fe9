package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	SetActive(ctx context.Context, userID string, active bool) error
	List(ctx context.Context, req ListUsersRequest) ([]User, int64, error)

	// Permission overrides. An empty result means no override row exists and
	// role defaults apply; ReplacePermissions with an empty list clears the
	// override.
	GetPermissions(ctx context.Context, userID string) ([]Permission, error)
	ReplacePermissions(ctx context.Context, userID string, permissions []Permission) error
}
