// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/lucapp/internal/domain/entity"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create stores a new user.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByLogin retrieves a user by username or email, case-insensitively.
	FindByLogin(ctx context.Context, usernameOrEmail string) (*entity.User, error)

	// Update updates an existing user.
	Update(ctx context.Context, user *entity.User) error

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindAll retrieves every registered user.
	FindAll(ctx context.Context) ([]*entity.User, error)
}
