package mocks

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
type MockPasswordVerifier struct {
	ShouldSucceed bool
	Err           error

	// CompareCalls records the arguments of each Compare call.
	CompareCalls []struct {
		HashedPassword string
		Password       string
	}
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements auth.PasswordVerifier.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCalls = append(m.CompareCalls, struct {
		HashedPassword string
		Password       string
	}{hashedPassword, password})

	if m.ShouldSucceed {
		return nil
	}
	if m.Err != nil {
		return m.Err
	}
	return bcrypt.ErrMismatchedHashAndPassword
}

// MockPasswordHasher implements auth.PasswordHasher for testing.
type MockPasswordHasher struct {
	Hashed string
	Err    error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Hashed != "" {
		return m.Hashed, nil
	}
	return "hashed:" + password, nil
}
