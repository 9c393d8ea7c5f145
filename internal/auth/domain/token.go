package domain

import (
	"time"

	"github.com/allisson/meetings/internal/identity"
)

// TokenType is the scheme clients use in the Authorization header.
const TokenType = "Bearer"

// IssuedToken is a signed access token together with its validity window.
type IssuedToken struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// LoginInput carries the credentials submitted to the login endpoint.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput is returned after a successful login.
type LoginOutput struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
	Identity  identity.Identity
}
