package services

import (
	"context"
	"errors"

	"github.com/mkaya/campusdesk/internal/app/auth"
	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/app/models/dto"
	"github.com/mkaya/campusdesk/internal/pkg/apperrors"
	pkgauth "github.com/mkaya/campusdesk/internal/pkg/auth"
	"github.com/mkaya/campusdesk/internal/pkg/logger"
)

// UserStore is the user persistence surface the auth service needs.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, hashPass string) error
}

// AuthService handles authentication operations
type AuthService struct {
	users      UserStore
	jwtService *pkgauth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, jwtService *pkgauth.JWTService) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
	}
}

// Login verifies credentials and issues a token pair. Unknown user id and
// wrong password both return ErrInvalidCredentials so the response does
// not reveal which part failed.
func (s *AuthService) Login(ctx context.Context, userID, password string) (*auth.Identity, *dto.TokenResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !pkgauth.CheckPassword(user.HashPass, password) {
		logger.Warn().Str("userId", userID).Msg("Failed login attempt")
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	ident := &auth.Identity{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
	}

	token := &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}

	return ident, token, nil
}

// ChangePassword verifies the current password before replacing it
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !pkgauth.CheckPassword(user.HashPass, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, hash)
}

// IdentityFromClaims rebuilds the request identity from validated token
// claims.
func IdentityFromClaims(claims *pkgauth.Claims) *auth.Identity {
	return &auth.Identity{
		ID:   claims.UserID,
		Name: claims.Name,
		Role: models.Role(claims.Role),
	}
}
