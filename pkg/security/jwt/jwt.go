package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/giftlink/giftlink-backend/pkg/auth"
)

// ErrEmptySecret is returned by NewGenerator when no signing secret is
// configured. Issuing tokens signed with an empty key must never happen, so
// the process refuses to start instead.
var ErrEmptySecret = errors.New("jwt signing secret is empty")

// Generator issues and verifies HS256 bearer tokens carrying the user ID as
// subject. The secret is read-only after construction and safe for
// concurrent use.
type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewGenerator validates the signing secret and returns a token engine.
// A ttl of zero issues non-expiring tokens; a positive ttl adds an "exp"
// claim that Verify enforces.
func NewGenerator(secret, issuer string, ttl time.Duration) (*Generator, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl}, nil
}

// Claims carried by issued tokens. Only the registered claims are used; the
// subject is the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

func (g *Generator) Generate(ctx context.Context, user auth.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   g.issuer,
			Subject:  user.ID.String(),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if g.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(g.ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Verify parses and validates a token and returns its subject identity.
// Signature mismatch, a non-HMAC algorithm, issuer mismatch, expiry and
// malformed input all fail; there is no partial result.
func (g *Generator) Verify(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return g.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token claims")
	}
	if g.issuer != "" && claims.Issuer != g.issuer {
		return uuid.Nil, errors.New("invalid token issuer")
	}
	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token subject: %w", err)
	}
	return subject, nil
}
