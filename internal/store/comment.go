package store

import (
	"context"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/domain"
)

// CommentUpdate describes a partial update to a comment. Nil fields are
// left unchanged.
type CommentUpdate struct {
	Content *string
}

// CommentStore defines the interface for comment data persistence.
type CommentStore interface {
	// Create saves a new comment to the store and fills in the
	// generated ID and timestamp.
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID retrieves a comment by its unique ID.
	// Returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)

	// List returns one page of comments matching the filter, ordered by
	// creation time descending, plus the total number of matches.
	List(ctx context.Context, filter CommentFilter, page Page) ([]domain.Comment, int64, error)

	// ListForPosts retrieves all comments on the given posts, newest
	// first. Used to embed comments when a post listing requests the
	// comments relation.
	ListForPosts(ctx context.Context, postIDs []int64) ([]domain.Comment, error)

	// Update applies a partial update to the comment with the given ID.
	// Only non-nil fields of upd change. Returns the updated comment,
	// or ErrCommentNotFound if the ID is absent.
	Update(ctx context.Context, id int64, upd CommentUpdate) (*domain.Comment, error)

	// Delete removes the comment with the given ID.
	// Returns ErrCommentNotFound if the ID is absent.
	Delete(ctx context.Context, id int64) error
}
