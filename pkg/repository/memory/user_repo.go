package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/giftlink/giftlink-backend/pkg/auth"
)

// UserRepository is an in-memory auth.UserRepository used in tests. It keeps
// the same contract as the MongoDB implementation: lowered-email uniqueness
// enforced atomically on insert, and field-level merge on update.
type UserRepository struct {
	mu    sync.Mutex
	users map[string]auth.User // keyed by lowered email
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]auth.User)}
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) (auth.User, error) {
	key := strings.ToLower(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[key]; exists {
		return auth.User{}, auth.ErrUserAlreadyExists
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = key
	r.users[key] = user
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) UpdateByEmail(ctx context.Context, email string, upd auth.ProfileUpdate) (auth.User, error) {
	key := strings.ToLower(email)

	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[key]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	user.UpdatedAt = time.Now().UTC()
	r.users[key] = user
	return user, nil
}

// Len reports the number of stored records; used by tests asserting that a
// registration race produced exactly one record.
func (r *UserRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}
