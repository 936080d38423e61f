package gifts

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// UseCase encapsulates the gift catalog operations.
type UseCase interface {
	Post(ctx context.Context, g Gift) (Gift, error)
	GetByID(ctx context.Context, id uuid.UUID) (Gift, error)
	List(ctx context.Context, limit, offset int) ([]Gift, error)
	Search(ctx context.Context, f Filter, limit, offset int) ([]Gift, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Post(ctx context.Context, g Gift) (Gift, error) {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return Gift{}, ErrValidation("name is required")
	}
	if g.AgeYears < 0 {
		return Gift{}, ErrValidation("ageYears must not be negative")
	}
	return s.repo.Create(ctx, g)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Gift, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Gift, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Search(ctx context.Context, f Filter, limit, offset int) ([]Gift, error) {
	return s.repo.Search(ctx, f, limit, offset)
}

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
