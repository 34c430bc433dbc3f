package dto

import (
	"time"

	"atelierdesk/internal/domain/auth"
)

// RegisterRequest for creating a user account.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"displayName"`
}

// ToAuthRequest converts to the domain registration request.
func (r RegisterRequest) ToAuthRequest() auth.RegisterRequest {
	return auth.RegisterRequest{
		Email:       r.Email,
		Password:    r.Password,
		DisplayName: r.DisplayName,
	}
}

// LoginRequest for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Email:    r.Email,
		Password: r.Password,
	}
}

// UserResponse is the public user representation.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName,omitempty"`
	IsActive    bool       `json:"isActive"`
	IsAdmin     bool       `json:"isAdmin"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// FromUser creates UserResponse from auth.User.
func FromUser(u *auth.User) UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IsActive:    u.IsActive,
		IsAdmin:     u.IsAdmin,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// FromToken creates TokenResponse from auth.Token.
func FromToken(t *auth.Token) TokenResponse {
	return TokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpiresAt:   t.ExpiresAt,
	}
}

// LoginResponse bundles token and user profile.
type LoginResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
