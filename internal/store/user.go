package store

import (
	"context"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/domain"
)

// UserUpdate describes a partial update to a user. Nil fields are left
// unchanged.
type UserUpdate struct {
	Name           *string
	Avatar         *string
	HashedPassword *string
}

// UserStore defines the interface for user data persistence.
// All reads are scoped to non-deleted users.
type UserStore interface {
	// Create saves a new user to the store and fills in the generated
	// ID and timestamps. The user must already carry a HashedPassword.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist or is deleted.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist or is deleted.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns one page of users ordered by creation time
	// descending, plus the total number of users.
	List(ctx context.Context, page Page) ([]domain.User, int64, error)

	// ListByIDs retrieves all users whose IDs appear in ids, in no
	// particular order. IDs with no matching user are skipped.
	ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error)

	// Update applies a partial update to the user with the given ID.
	// Only non-nil fields of upd change. Returns the updated user, or
	// ErrUserNotFound if the ID is absent.
	Update(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)

	// Delete soft-deletes the user with the given ID.
	// Returns ErrUserNotFound if the ID is absent or already deleted.
	Delete(ctx context.Context, id int64) error
}
