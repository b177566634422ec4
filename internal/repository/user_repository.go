package repository

import (
	"context"

	"blogsmith/internal/domain/entity"
)

// UserRepository persists registered accounts.
type UserRepository interface {
	// Create inserts a new user and sets its generated ID.
	Create(ctx context.Context, user *entity.User) error

	// GetByUsername returns the user with the given username, or nil if absent.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// Get returns the user with the given ID, or nil if absent.
	Get(ctx context.Context, id int64) (*entity.User, error)

	// ExistsByUsername reports whether a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
