package user

import (
	"context"
	"fmt"

	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	userRepo user.UserRepository
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return user.User{}, user.ErrUserEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepo.Create(ctx, user.User{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Role:         user.Role(req.Role),
		ServiceID:    req.ServiceID,
	})
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, req user.ListUsersRequest) ([]user.User, int64, error) {
	return s.userRepo.List(ctx, req)
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.userRepo.Update(ctx, req)
}

// Deactivate implements user.UserService. The access token keeps working
// until it expires; the refresh path re-checks is_active and stops the
// session there.
func (s *UserServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.userRepo.SetActive(ctx, id, false)
}

// Activate implements user.UserService.
func (s *UserServiceImpl) Activate(ctx context.Context, id string) error {
	return s.userRepo.SetActive(ctx, id, true)
}

// Permissions implements user.UserService. The boolean reports whether an
// explicit override exists.
func (s *UserServiceImpl) Permissions(ctx context.Context, userID string) ([]user.Permission, bool, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	overrides, err := s.userRepo.GetPermissions(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load user permissions: %w", err)
	}
	if len(overrides) > 0 {
		return overrides, true, nil
	}
	return user.DefaultPermissions(u.Role), false, nil
}

// ReplacePermissions implements user.UserService. The new set takes effect at
// the next token issuance, not on tokens already in the wild.
func (s *UserServiceImpl) ReplacePermissions(ctx context.Context, userID string, req user.ReplacePermissionsRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	permissions := make([]user.Permission, 0, len(req.Permissions))
	for _, name := range req.Permissions {
		permissions = append(permissions, user.Permission(name))
	}
	return s.userRepo.ReplacePermissions(ctx, userID, permissions)
}

// ResetPermissions implements user.UserService. Clearing the override makes
// role defaults apply again.
func (s *UserServiceImpl) ResetPermissions(ctx context.Context, userID string) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.ReplacePermissions(ctx, userID, nil)
}
