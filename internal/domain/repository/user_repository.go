package repository

import (
	"context"
	"errors"

	"github.com/ecofinds/ecofinds-api/internal/domain/entity"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindConflict returns a user other than excludeID holding the given
	// username or email, or nil when both are free.
	FindConflict(ctx context.Context, excludeID, username, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
