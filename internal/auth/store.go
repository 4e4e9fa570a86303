package auth

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("user not found")
)

// Store owns user records. Register and Authenticate take the plaintext
// password; hashing never leaves this package.
type Store interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	Lookup(ctx context.Context, id uint64) (*User, error)
}

// normalizeEmail lowercases for uniqueness checks. The address a user typed
// with mixed case still reaches the same account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
