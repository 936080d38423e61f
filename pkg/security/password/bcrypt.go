package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/giftlink/giftlink-backend/pkg/auth"
)

// BcryptHasher implements auth.PasswordHasher on top of bcrypt.
// bcrypt output is self-describing: it embeds the per-call random salt and
// the cost, so Verify needs nothing beyond the stored hash.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the fixed work factor of 10 rounds
// (bcrypt.DefaultCost). The cost is a build-time policy decision, not a
// per-call knob.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(raw, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		// Expected outcome of a wrong password, not an error.
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", auth.ErrMalformedHash, err)
	}
}
