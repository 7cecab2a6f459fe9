package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/gestionpro/erp-backend-go/internal/domain/auth"
	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"github.com/gestionpro/erp-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// TokenStore abstracts the refresh token storage (Redis in production).
type TokenStore interface {
	Save(ctx context.Context, hash, userID string) error
	UserFor(ctx context.Context, hash string) (string, error)
	Delete(ctx context.Context, hash string) error
}

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
	tokens     TokenStore
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service, tokens TokenStore) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokens:     tokens,
	}
}

// resolvePermissions returns the explicit per-user set when one exists,
// otherwise the role defaults. An empty override set means "no override".
func (s *AuthServiceImpl) resolvePermissions(ctx context.Context, u user.User) ([]user.Permission, error) {
	overrides, err := s.userRepo.GetPermissions(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user permissions: %w", err)
	}
	if len(overrides) > 0 {
		return overrides, nil
	}
	return user.DefaultPermissions(u.Role), nil
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if !u.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountDeactivated
	}

	permissions, err := s.resolvePermissions(ctx, u)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u, permissions)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	rawRefresh, hashedRefresh, err := jwt.GenerateRefreshToken()
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	if err := s.tokens.Save(ctx, hashedRefresh, u.ID); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	names := make([]string, 0, len(permissions))
	for _, p := range permissions {
		names = append(names, string(p))
	}

	return auth.LoginResponse{
		User:                 user.ToResponse(u),
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
		RefreshToken:         rawRefresh,
		Permissions:          names,
	}, nil
}

// Logout implements auth.AuthService. Revoking an already-revoked token is
// not an error.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokens.Delete(ctx, jwt.HashRefreshToken(refreshToken))
}

// Profile implements auth.AuthService.
func (s *AuthServiceImpl) Profile(ctx context.Context, userID string) (auth.ProfileResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ProfileResponse{}, auth.ErrUserNotFound
		}
		return auth.ProfileResponse{}, fmt.Errorf("failed to get user by ID: %w", err)
	}

	permissions, err := s.resolvePermissions(ctx, u)
	if err != nil {
		return auth.ProfileResponse{}, err
	}

	names := make([]string, 0, len(permissions))
	for _, p := range permissions {
		names = append(names, string(p))
	}

	return auth.ProfileResponse{
		User:        user.ToResponse(u),
		Permissions: names,
	}, nil
}

// RefreshToken implements auth.AuthService. Permission changes made since
// login take effect here, because the new token embeds a freshly resolved set.
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	userID, err := s.tokens.UserFor(ctx, jwt.HashRefreshToken(req.RefreshToken))
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if userID == "" {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenInvalid
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrRefreshTokenInvalid
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user by ID: %w", err)
	}
	if !u.IsActive {
		return auth.AccessTokenResponse{}, auth.ErrAccountDeactivated
	}

	permissions, err := s.resolvePermissions(ctx, u)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(u, permissions)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.AccessTokenResponse{
		AccessToken:          accessToken,
		AccessTokenExpiresIn: expiresAt,
	}, nil
}
