package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// AuthUseCase describes registration, authentication and profile updates.
type AuthUseCase interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	// UpdateProfile trusts that the caller established the identity behind
	// email through an upstream step (the HTTP layer mounts it behind the
	// bearer-token middleware).
	UpdateProfile(ctx context.Context, email, firstName string) (AuthResult, error)
}

// AuthResult is the outcome of a successful auth operation: the affected
// user record and a freshly issued bearer token.
type AuthResult struct {
	User  User
	Token string
}

type authService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenGenerator
	logger *slog.Logger
}

// NewAuthService returns the default implementation of AuthUseCase.
// All collaborators are injected; the service keeps no other state, so one
// instance serves concurrent requests.
func NewAuthService(repo UserRepository, hasher PasswordHasher, tokens TokenGenerator, logger *slog.Logger) AuthUseCase {
	return &authService{repo: repo, hasher: hasher, tokens: tokens, logger: logger}
}

func (s *authService) Register(ctx context.Context, email, password, firstName, lastName string) (AuthResult, error) {
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	// Best-effort fast path; the repository's unique index is what actually
	// guarantees a single record per email under concurrent registration.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrUserAlreadyExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}

	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()))
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		// Logged for diagnostics only; the caller sees the same outcome as a
		// wrong password so accounts cannot be enumerated.
		s.logger.DebugContext(ctx, "login failed: user not found", slog.String("email", email))
		return AuthResult{}, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.logger.ErrorContext(ctx, "stored password hash is malformed", slog.String("user_id", user.ID.String()))
		return AuthResult{}, err
	}
	if !ok {
		s.logger.DebugContext(ctx, "login failed: password mismatch", slog.String("user_id", user.ID.String()))
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID.String()))
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) UpdateProfile(ctx context.Context, email, firstName string) (AuthResult, error) {
	// The field merge happens in the store, keyed by email, so fields not in
	// the update (password hash, email, createdAt) cannot be clobbered.
	user, err := s.repo.UpdateByEmail(ctx, email, ProfileUpdate{FirstName: &firstName})
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}

	s.logger.InfoContext(ctx, "user profile updated", slog.String("user_id", user.ID.String()))
	return AuthResult{User: user, Token: token}, nil
}
