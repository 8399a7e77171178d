package store

import (
	"context"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/domain"
)

// PostUpdate describes a partial update to a post. Nil fields are left
// unchanged. The owning user ID is immutable and cannot be updated.
type PostUpdate struct {
	Title   *string
	Content *string
}

// PostStore defines the interface for post data persistence.
type PostStore interface {
	// Create saves a new post to the store and fills in the generated
	// ID and timestamps.
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post by its unique ID.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Post, error)

	// List returns one page of posts matching the filter, ordered by
	// creation time descending, plus the total number of matches.
	List(ctx context.Context, filter PostFilter, page Page) ([]domain.Post, int64, error)

	// Update applies a partial update to the post with the given ID.
	// Only non-nil fields of upd change. Returns the updated post, or
	// ErrPostNotFound if the ID is absent.
	Update(ctx context.Context, id int64, upd PostUpdate) (*domain.Post, error)

	// Delete removes the post with the given ID.
	// Returns ErrPostNotFound if the ID is absent.
	Delete(ctx context.Context, id int64) error
}
