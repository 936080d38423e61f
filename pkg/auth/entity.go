package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a registered account.
// PasswordHash is derived credential material; handlers select response
// fields explicitly instead of serializing the struct, so it is never
// echoed to callers.
type User struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate names the fields a partial profile update may change.
// Nil means "leave unchanged". Email, PasswordHash and CreatedAt are not
// representable here, so a partial update can never clear or overwrite them.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
}
