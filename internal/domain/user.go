package domain

import (
	"strings"
	"time"
)

// MaxNameLength is the maximum length of a user's display name.
const MaxNameLength = 50

// User represents a registered user of the blog.
// The plaintext Password is only populated transiently during
// registration and password changes; only HashedPassword is persisted.
type User struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name,omitempty"`
	Avatar         string     `json:"avatar,omitempty"`
	Password       string     `json:"-"` // Plaintext, never persisted
	HashedPassword string     `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"-"` // Soft-deletion marker, nil = active
}

// NewUser creates a new User with the given email and password.
// The ID is assigned by the store on creation.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing the password before
// storing the user.
func NewUser(email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Email:     email,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	// Either a plaintext password (pre-hash) or a stored hash must be present.
	if u.Password == "" && u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	if len(u.Name) > MaxNameLength {
		return ErrNameTooLong
	}

	return nil
}

// Deleted reports whether the user has been soft-deleted.
func (u *User) Deleted() bool {
	return u.DeletedAt != nil
}

// validEmailFormat performs basic validation of email format: a local
// part, an @, and a domain containing an interior dot. Anything stricter
// is left to the request validator's email rule.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
