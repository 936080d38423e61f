package gifts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Gift is a second-hand item offered on the exchange.
type Gift struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Condition   string
	AgeYears    int
	Description string
	PostedBy    uuid.UUID
	PostedAt    time.Time
}

// Filter narrows a gift search. Zero values mean "no constraint".
type Filter struct {
	Name        string // substring match, case-insensitive
	Category    string
	Condition   string
	MaxAgeYears int
}

// ErrNotFound means no gift matches the given ID.
var ErrNotFound = errors.New("gift not found")

// Repository is the persistence port for the gift catalog.
type Repository interface {
	// Create persists a new gift and returns it with the store-assigned ID.
	Create(ctx context.Context, g Gift) (Gift, error)
	GetByID(ctx context.Context, id uuid.UUID) (Gift, error)
	List(ctx context.Context, limit, offset int) ([]Gift, error)
	Search(ctx context.Context, f Filter, limit, offset int) ([]Gift, error)
}
