// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/allisson/meetings/internal/errors"
)

// DefaultTimezone is assigned to users that register without a time zone.
const DefaultTimezone = "UTC"

// User represents a registered account.
type User struct {
	ID        int64
	Username  string
	Email     string
	Password  string
	Timezone  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUsernameAlreadyExists indicates the username is taken.
	ErrUsernameAlreadyExists = errors.Wrap(errors.ErrConflict, "username already exists")

	// ErrEmailAlreadyExists indicates the email is registered to another account.
	ErrEmailAlreadyExists = errors.Wrap(errors.ErrConflict, "email already exists")

	// ErrInvalidCredentials is shared by unknown usernames and wrong passwords
	// so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)
