// Package domain defines the authentication domain: token failures, issued
// tokens and the login contract.
package domain

import (
	"github.com/allisson/meetings/internal/errors"
)

// Token validation errors. The middleware treats all of them as anonymous;
// they only surface to clients through the login endpoint.
var (
	// ErrMalformedToken indicates the token cannot be parsed or carries no subject.
	ErrMalformedToken = errors.Wrap(errors.ErrUnauthorized, "malformed token")

	// ErrInvalidSignature indicates the token was tampered with or signed with another key.
	ErrInvalidSignature = errors.Wrap(errors.ErrUnauthorized, "invalid token signature")

	// ErrTokenExpired indicates the token is past its expiry time.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrSubjectMismatch indicates the token belongs to a different account.
	ErrSubjectMismatch = errors.Wrap(errors.ErrUnauthorized, "token subject mismatch")
)
