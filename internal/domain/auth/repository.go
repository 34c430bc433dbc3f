package auth

import (
	"context"

	"atelierdesk/internal/core/id"
)

// UserRepository defines user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID id.UserID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
