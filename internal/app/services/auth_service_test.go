package services

import (
	"context"
	"testing"
	"time"

	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/pkg/apperrors"
	pkgauth "github.com/mkaya/campusdesk/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	users     map[string]*models.User
	passwords map[string]string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:     make(map[string]*models.User),
		passwords: make(map[string]string),
	}
}

func (f *fakeUserStore) add(t *testing.T, id, name string, role models.Role, password string) {
	t.Helper()
	hash, err := pkgauth.HashPassword(password)
	require.NoError(t, err)
	f.users[id] = &models.User{ID: id, Name: name, Role: role, HashPass: hash}
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id, hashPass string) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.HashPass = hashPass
	return nil
}

func newTestAuthService(store *fakeUserStore) *AuthService {
	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campusdesk.test",
	})
	return NewAuthService(store, jwtService)
}

func TestLoginSuccess(t *testing.T) {
	store := newFakeUserStore()
	store.add(t, "ST001", "Jane Doe", models.RoleStudent, "correct-horse")
	service := newTestAuthService(store)

	ident, token, err := service.Login(context.Background(), "ST001", "correct-horse")

	require.NoError(t, err)
	assert.Equal(t, "ST001", ident.ID)
	assert.Equal(t, models.RoleStudent, ident.Role)
	assert.NotEmpty(t, token.AccessToken)
	assert.NotEmpty(t, token.RefreshToken)
	assert.Equal(t, "Bearer", token.TokenType)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeUserStore()
	store.add(t, "ST001", "Jane Doe", models.RoleStudent, "correct-horse")
	service := newTestAuthService(store)

	ident, token, err := service.Login(context.Background(), "ST001", "wrong")

	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Nil(t, ident)
	assert.Nil(t, token)
}

// Unknown id and wrong password must be indistinguishable to the caller.
func TestLoginUnknownUserSameError(t *testing.T) {
	store := newFakeUserStore()
	store.add(t, "ST001", "Jane Doe", models.RoleStudent, "correct-horse")
	service := newTestAuthService(store)

	_, _, errUnknown := service.Login(context.Background(), "NOBODY", "whatever")
	_, _, errWrongPass := service.Login(context.Background(), "ST001", "wrong")

	assert.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, apperrors.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestLoginTokenCarriesIdentity(t *testing.T) {
	store := newFakeUserStore()
	store.add(t, "WS001", "Wendy Staff", models.RoleWelfareStaff, "hunter2hunter2")
	service := newTestAuthService(store)

	_, token, err := service.Login(context.Background(), "WS001", "hunter2hunter2")
	require.NoError(t, err)

	jwtService := pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "campusdesk.test",
	})
	claims, err := jwtService.ValidateAndExtractClaims(token.AccessToken)
	require.NoError(t, err)

	ident := IdentityFromClaims(claims)
	assert.Equal(t, "WS001", ident.ID)
	assert.Equal(t, models.RoleWelfareStaff, ident.Role)
}

func TestChangePassword(t *testing.T) {
	store := newFakeUserStore()
	store.add(t, "ST001", "Jane Doe", models.RoleStudent, "old-password")
	service := newTestAuthService(store)

	err := service.ChangePassword(context.Background(), "ST001", "old-password", "new-password-1")
	require.NoError(t, err)

	_, _, err = service.Login(context.Background(), "ST001", "old-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, _, err = service.Login(context.Background(), "ST001", "new-password-1")
	assert.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	store := newFakeUserStore()
	store.add(t, "ST001", "Jane Doe", models.RoleStudent, "old-password")
	service := newTestAuthService(store)

	err := service.ChangePassword(context.Background(), "ST001", "not-the-password", "new-password-1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}
