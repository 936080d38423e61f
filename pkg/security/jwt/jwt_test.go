package jwt

import (
	"context"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftlink/giftlink-backend/pkg/auth"
)

const testSecret = "test-secret"

func TestNewGeneratorEmptySecret(t *testing.T) {
	_, err := NewGenerator("", "giftlink", 0)
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	gen, err := NewGenerator(testSecret, "giftlink", 0)
	require.NoError(t, err)

	user := auth.User{ID: uuid.New()}
	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := gen.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)
}

func TestVerifyFailsClosed(t *testing.T) {
	gen, err := NewGenerator(testSecret, "giftlink", 0)
	require.NoError(t, err)

	user := auth.User{ID: uuid.New()}
	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)

	otherKey, err := NewGenerator("another-secret", "giftlink", 0)
	require.NoError(t, err)
	otherIssuer, err := NewGenerator(testSecret, "someone-else", 0)
	require.NoError(t, err)

	tests := []struct {
		name  string
		gen   *Generator
		token string
	}{
		{name: "tampered token", gen: gen, token: token + "x"},
		{name: "garbage input", gen: gen, token: "not.a.token"},
		{name: "empty input", gen: gen, token: ""},
		{name: "wrong signing key", gen: otherKey, token: token},
		{name: "issuer mismatch", gen: otherIssuer, token: token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, err := tt.gen.Verify(context.Background(), tt.token)
			require.Error(t, err)
			assert.Equal(t, uuid.Nil, subject)
		})
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	gen, err := NewGenerator(testSecret, "giftlink", time.Minute)
	require.NoError(t, err)

	// Sign an already-expired token with the same key.
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "giftlink",
			Subject:   uuid.NewString(),
			IssuedAt:  gojwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = gen.Verify(context.Background(), expired)
	require.Error(t, err)
}

func TestVerifyNonUUIDSubject(t *testing.T) {
	gen, err := NewGenerator(testSecret, "giftlink", 0)
	require.NoError(t, err)

	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:  "giftlink",
			Subject: "not-a-uuid",
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = gen.Verify(context.Background(), token)
	require.Error(t, err)
}

func TestNoExpiryWhenTTLZero(t *testing.T) {
	gen, err := NewGenerator(testSecret, "giftlink", 0)
	require.NoError(t, err)

	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	parsed, err := gojwt.ParseWithClaims(token, &Claims{}, func(t *gojwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(*Claims)
	require.True(t, ok)
	assert.Nil(t, claims.ExpiresAt)
}
