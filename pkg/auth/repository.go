package auth

import (
	"context"
	"errors"
)

// Common errors used by repositories and use cases.
var (
	// ErrNotFound means no user record matches the given email.
	ErrNotFound = errors.New("user not found")
	// ErrUserAlreadyExists means the email is already registered. Repositories
	// must return it from Create on a unique-index violation, not only from a
	// prior existence check, so concurrent registrations cannot both succeed.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password on
	// login; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMalformedHash means a stored password hash is not in the expected
	// self-describing format. This indicates data corruption, not user error.
	ErrMalformedHash = errors.New("malformed password hash")
)

// UserRepository abstracts persistence concerns from the domain layer.
// Implementations normalize email to lower case on both read and write, so
// uniqueness and lookups are case-insensitive.
type UserRepository interface {
	// Create persists a new user and returns it with the store-assigned ID.
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// UpdateByEmail applies a field-level merge of the set fields in upd plus
	// UpdatedAt, and returns the record after the update. Fields absent from
	// upd are left untouched.
	UpdateByEmail(ctx context.Context, email string, upd ProfileUpdate) (User, error)
}
