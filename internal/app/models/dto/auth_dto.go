package dto

import "github.com/yigit/facultyhub/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// RegisterRequest creates a bare account without a student or professor
// profile
type RegisterRequest struct {
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required,min=6"`
	FirstName string      `json:"firstName" binding:"required,max=100"`
	LastName  string      `json:"lastName" binding:"required,max=100"`
	Role      models.Role `json:"role" binding:"omitempty,oneof=student professor"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse      `json:"token"`
	User  models.UserSummary `json:"user"`
}

// ProfileResponse is the logged in user with the profile matching the role
type ProfileResponse struct {
	User      models.UserSummary `json:"user"`
	Student   interface{}        `json:"student,omitempty"`
	Professor interface{}        `json:"professor,omitempty"`
}
