package auth

import (
	"context"

	"github.com/google/uuid"
)

// TokenGenerator abstracts token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}

// TokenVerifier checks a bearer token and extracts the subject identity.
// Verification fails closed: any defect in the token yields an error,
// never a partial identity.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

// PasswordHasher abstracts the one-way password hashing scheme.
type PasswordHasher interface {
	// Hash derives storable credential material from a raw password.
	// The output embeds its own salt and cost, so two hashes of the same
	// password differ and verification needs no side-channel state.
	Hash(raw string) (string, error)
	// Verify reports whether raw matches hash. A mismatch is (false, nil);
	// only a hash that is not in the expected format is an error.
	Verify(raw, hash string) (bool, error)
}
