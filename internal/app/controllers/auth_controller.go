// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkaya/campusdesk/internal/app/models/dto"
	"github.com/mkaya/campusdesk/internal/app/services"
	"github.com/mkaya/campusdesk/internal/middleware"
	"github.com/rs/zerolog"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Login handles user authentication
// @Summary Authenticate a user
// @Description Verifies the user id and password and issues a token pair. The response does not reveal whether the id or the password was wrong.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	ident, token, err := c.authService.Login(ctx, req.UserID, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("userId", ident.ID).Str("role", string(ident.Role)).Msg("User logged in")

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.LoginResponse{
		Token: *token,
		User: dto.UserResponse{
			ID:   ident.ID,
			Name: ident.Name,
			Role: string(ident.Role),
		},
	}))
}

// Me returns the authenticated identity
// @Summary Get the current identity
// @Description Returns the id, name and role carried by the presented token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Current identity"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	if ident == nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "not authenticated")))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UserResponse{
		ID:   ident.ID,
		Name: ident.Name,
		Role: string(ident.Role),
	}))
}

// Logout ends the client session
// @Summary Log out
// @Description Tokens are stateless; the server has no session to tear down. The client discards its tokens.
// @Tags auth
// @Security BearerAuth
// @Success 204 "Logged out"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if ident := middleware.GetIdentity(ctx); ident != nil {
		c.logger.Info().Str("userId", ident.ID).Msg("User logged out")
	}
	ctx.Status(http.StatusNoContent)
}

// ChangePassword handles password changes for the current identity
// @Summary Change the current user's password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 204 "Password changed"
// @Failure 401 {object} dto.ErrorResponse "Wrong current password"
// @Router /auth/password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	if ident == nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "not authenticated")))
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.authService.ChangePassword(ctx, ident.ID, req.CurrentPassword, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
