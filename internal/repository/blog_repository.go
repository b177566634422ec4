// Package repository defines the persistence interfaces used by the use case layer.
// Concrete implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"

	"blogsmith/internal/domain/entity"
)

// BlogRepository persists generated blog posts.
// Posts are immutable: there are no update or delete operations.
type BlogRepository interface {
	// Create inserts a new blog post and sets its generated ID.
	Create(ctx context.Context, post *entity.BlogPost) error

	// Get returns the blog post with the given ID, or nil if it does not exist.
	Get(ctx context.Context, id int64) (*entity.BlogPost, error)

	// ListByUser returns all blog posts owned by the given user,
	// newest first.
	ListByUser(ctx context.Context, userID int64) ([]*entity.BlogPost, error)

	// CountByUser returns the number of posts owned by the given user.
	CountByUser(ctx context.Context, userID int64) (int64, error)
}
