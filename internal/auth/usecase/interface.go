// Package usecase implements the login and per-request authentication flows.
package usecase

import (
	"context"

	authDomain "github.com/allisson/meetings/internal/auth/domain"
	"github.com/allisson/meetings/internal/identity"
	userDomain "github.com/allisson/meetings/internal/user/domain"
)

// UserService is the user-lookup collaborator used by authentication.
type UserService interface {
	// GetByUsername returns userDomain.ErrUserNotFound for unknown usernames.
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)

	// Authenticate verifies a password and returns userDomain.ErrInvalidCredentials
	// for unknown users and wrong passwords alike.
	Authenticate(ctx context.Context, username, password string) (*userDomain.User, error)
}

// TokenUseCase issues tokens at login and resolves bearer tokens to identities.
type TokenUseCase interface {
	// Login checks credentials and issues a token for the account.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.LoginOutput, error)

	// Authenticate resolves a raw bearer token to an identity. It reads the
	// unverified subject, loads that user, then fully validates the token
	// against the stored username and id.
	//
	// Errors: authDomain.ErrMalformedToken, userDomain.ErrUserNotFound,
	// authDomain.ErrInvalidSignature, authDomain.ErrTokenExpired,
	// authDomain.ErrSubjectMismatch, or a repository failure.
	Authenticate(ctx context.Context, token string) (identity.Identity, error)
}
