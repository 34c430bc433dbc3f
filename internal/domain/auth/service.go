package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/tx"
	"atelierdesk/internal/core/validate"
	"atelierdesk/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	MaxLoginAttempts int
	LockDuration     time.Duration
}

// DefaultServiceConfig returns sensible defaults.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// Service handles registration and login.
type Service struct {
	users      UserRepository
	jwtService *JWTService
	txManager  tx.Manager
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(users UserRepository, jwtService *JWTService, txManager tx.Manager, config ServiceConfig) *Service {
	return &Service{
		users:      users,
		jwtService: jwtService,
		txManager:  txManager,
		config:     config,
	}
}

// Register creates a new user account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validate.IsValidEmail(email) {
		return nil, apperror.NewValidation("invalid email address").WithDetail("field", "email")
	}
	if !validate.IsValidPassword(req.Password) {
		return nil, apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("user", "email", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(email, string(hash))
	user.DisplayName = strings.TrimSpace(req.DisplayName)

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.users.Create(ctx, user)
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info(ctx, "user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Token, *User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil, apperror.NewUnauthorized("invalid email or password")
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	if err := user.CanLogin(); err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		user.RecordFailedLogin(s.config.MaxLoginAttempts, s.config.LockDuration)
		if updateErr := s.users.Update(ctx, user); updateErr != nil {
			logger.Warn(ctx, "failed to record failed login", "user_id", user.ID, "error", updateErr)
		}
		return nil, nil, apperror.NewUnauthorized("invalid email or password")
	}

	user.RecordSuccessfulLogin()
	if err := s.users.Update(ctx, user); err != nil {
		logger.Warn(ctx, "failed to record successful login", "user_id", user.ID, "error", err)
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, nil, fmt.Errorf("generate token: %w", err)
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID)
	return &Token{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, user, nil
}

// GetUserByID retrieves a user profile.
func (s *Service) GetUserByID(ctx context.Context, userID id.UserID) (*User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("user", userID.String())
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}
