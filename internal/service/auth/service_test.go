package auth

import (
	"context"
	"testing"

	"github.com/gestionpro/erp-backend-go/internal/domain/auth"
	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"github.com/gestionpro/erp-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users       map[string]user.User
	permissions map[string][]user.Permission
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:       map[string]user.User{},
		permissions: map[string][]user.Permission{},
	}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, newUser user.User) (user.User, error) {
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ user.UpdateUserRequest) error { return nil }

func (f *fakeUserRepo) UpdatePassword(_ context.Context, _, _ string) error { return nil }

func (f *fakeUserRepo) SetActive(_ context.Context, userID string, active bool) error {
	u, ok := f.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsActive = active
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _ user.ListUsersRequest) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) GetPermissions(_ context.Context, userID string) ([]user.Permission, error) {
	return f.permissions[userID], nil
}

func (f *fakeUserRepo) ReplacePermissions(_ context.Context, userID string, permissions []user.Permission) error {
	f.permissions[userID] = permissions
	return nil
}

type fakeTokenStore struct {
	byHash map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{byHash: map[string]string{}}
}

func (f *fakeTokenStore) Save(_ context.Context, hash, userID string) error {
	f.byHash[hash] = userID
	return nil
}

func (f *fakeTokenStore) UserFor(_ context.Context, hash string) (string, error) {
	return f.byHash[hash], nil
}

func (f *fakeTokenStore) Delete(_ context.Context, hash string) error {
	delete(f.byHash, hash)
	return nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, role user.Role, password string) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := user.User{
		ID:           "0191d2a0-0000-7000-8000-000000000001",
		Email:        "jane@example.com",
		FirstName:    "Jane",
		LastName:     "Doe",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	repo.users[u.ID] = u
	return u
}

func newService(repo *fakeUserRepo, tokens *fakeTokenStore) auth.AuthService {
	return NewAuthService(repo, jwt.NewJWTService("test-secret", "1h"), tokens)
}

func TestLoginSuccessEmbedsRolePermissions(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenStore()
	seedUser(t, repo, user.RoleServiceManager, "password123")

	resp, err := newService(repo, tokens).Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Contains(t, resp.Permissions, string(user.PermissionQuotesApproveService))
	assert.NotContains(t, resp.Permissions, string(user.PermissionQuotesApproveDG))
	assert.Len(t, tokens.byHash, 1)
}

func TestLoginOverridesReplaceRoleDefaults(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenStore()
	u := seedUser(t, repo, user.RoleServiceManager, "password123")
	repo.permissions[u.ID] = []user.Permission{user.PermissionQuotesRead}

	resp, err := newService(repo, tokens).Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{string(user.PermissionQuotesRead)}, resp.Permissions)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, user.RoleEmployee, "password123")

	_, err := newService(repo, newFakeTokenStore()).Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	_, err := newService(newFakeUserRepo(), newFakeTokenStore()).Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, user.RoleEmployee, "password123")
	u.IsActive = false
	repo.users[u.ID] = u

	_, err := newService(repo, newFakeTokenStore()).Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrAccountDeactivated)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenStore()
	seedUser(t, repo, user.RoleEmployee, "password123")
	svc := newService(repo, tokens)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshAfterLogoutFails(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenStore()
	seedUser(t, repo, user.RoleEmployee, "password123")
	svc := newService(repo, tokens)

	login, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "jane@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: login.RefreshToken,
	})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenInvalid)
}

func TestRefreshUnknownToken(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, user.RoleEmployee, "password123")

	_, err := newService(repo, newFakeTokenStore()).RefreshToken(context.Background(), auth.RefreshTokenRequest{
		RefreshToken: "not-a-real-token",
	})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenInvalid)
}

func TestProfileResolvesPermissions(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, user.RoleAccountant, "password123")

	resp, err := newService(repo, newFakeTokenStore()).Profile(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, u.Email, resp.User.Email)
	assert.Contains(t, resp.Permissions, string(user.PermissionInvoicesRecordPayment))
}
