package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	appctx "atelierdesk/internal/core/context"
	"atelierdesk/internal/core/id"
)

// JWTConfig holds token signing configuration.
type JWTConfig struct {
	Secret         string
	Issuer         string
	AccessTokenTTL time.Duration
}

// DefaultJWTConfig returns sensible defaults.
func DefaultJWTConfig(secret string) JWTConfig {
	return JWTConfig{
		Secret:         secret,
		Issuer:         "atelierdesk",
		AccessTokenTTL: 12 * time.Hour,
	}
}

// Claims are the custom JWT claims for access tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"uid"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"adm,omitempty"`
	SessionID string `json:"sid"`
}

// JWTService issues and validates access tokens.
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service.
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{config: config}
}

// GenerateAccessToken creates a signed access token for the user.
func (s *JWTService) GenerateAccessToken(userID id.UserID, email string, isAdmin bool) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.config.AccessTokenTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
		UserID:    userID.String(),
		Email:     email,
		IsAdmin:   isAdmin,
		SessionID: uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and validates a token, returning the user context.
func (s *JWTService) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithIssuer(s.config.Issuer))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &appctx.UserContext{
		UserID:    claims.UserID,
		Email:     claims.Email,
		IsAdmin:   claims.IsAdmin,
		SessionID: claims.SessionID,
	}, nil
}
