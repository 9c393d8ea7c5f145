// Package service provides the token service: issuing and validating the
// signed, time-bounded access tokens that identify a caller.
package service

import (
	authDomain "github.com/allisson/meetings/internal/auth/domain"
	"github.com/allisson/meetings/internal/identity"
)

// TokenService issues and validates self-contained access tokens. Tokens are
// never stored server-side; validity is decided from the token alone.
type TokenService interface {
	// Issue signs a token for id that expires after the configured TTL.
	Issue(id identity.Identity) (*authDomain.IssuedToken, error)

	// Validate checks integrity, then expiry, then that the subject equals
	// expectedUsername, and returns the identity carried by the claims.
	Validate(token, expectedUsername string) (identity.Identity, error)

	// ExtractUsername reads the subject without verifying the signature. The
	// result must not be trusted until Validate succeeds.
	ExtractUsername(token string) (string, error)
}
