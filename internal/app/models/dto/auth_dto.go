package dto

// LoginRequest defines the login payload
type LoginRequest struct {
	UserID   string `json:"userId" binding:"required" example:"ST001"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn"`
	RefreshExpiresIn int    `json:"refreshExpiresIn"`
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// LoginResponse carries the token pair and the authenticated identity
type LoginResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID    string  `json:"id" example:"ST001"`
	Name  string  `json:"name" example:"Jane Doe"`
	Role  string  `json:"role" example:"student"`
	Email *string `json:"email,omitempty"`
}

// ChangePasswordRequest defines the password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
