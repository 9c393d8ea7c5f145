// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"

	"github.com/allisson/meetings/internal/user/domain"
)

// RegisterUserInput contains the input data for user registration.
type RegisterUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Timezone string `json:"timezone"`
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	// Create inserts user and fills in its generated ID and timestamps.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateTimezone(ctx context.Context, id int64, timezone string) error
}

// UseCase defines the user operations exposed to HTTP handlers and to the
// authentication flow.
type UseCase interface {
	// Register validates input, hashes the password and stores a new user.
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)

	// GetByUsername returns ErrUserNotFound when no account has that username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Authenticate checks a username and password pair. Unknown users and
	// wrong passwords both yield ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// UpdateTimezone changes the time zone of the calling user.
	UpdateTimezone(ctx context.Context, timezone string) (*domain.User, error)
}
