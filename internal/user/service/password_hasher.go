// Package service provides password hashing for user accounts.
package service

import (
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/allisson/meetings/internal/errors"
)

// PasswordHasher hashes passwords for storage and verifies them at login.
type PasswordHasher interface {
	// Hash returns an encoded hash of password.
	Hash(password string) (string, error)

	// Verify reports whether password matches encodedHash.
	Verify(password, encodedHash string) (bool, error)
}

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// passwordHasher hashes with Argon2id and still verifies bcrypt hashes
// carried over from older deployments.
type passwordHasher struct {
	argon *pwdhash.PasswordHasher
}

// NewPasswordHasher creates a PasswordHasher using the interactive Argon2id policy.
func NewPasswordHasher() (PasswordHasher, error) {
	argon, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return &passwordHasher{argon: argon}, nil
}

// Hash hashes password with Argon2id in PHC format.
func (h *passwordHasher) Hash(password string) (string, error) {
	hashed, err := h.argon.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashed, nil
}

// Verify checks password against an Argon2id or bcrypt hash.
func (h *passwordHasher) Verify(password, encodedHash string) (bool, error) {
	if isBcrypt(encodedHash) {
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
		switch {
		case err == nil:
			return true, nil
		case apperrors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, apperrors.Wrap(err, "failed to verify bcrypt hash")
		}
	}

	ok, err := h.argon.Verify([]byte(password), encodedHash)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to verify password")
	}
	return ok, nil
}

func isBcrypt(encodedHash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(encodedHash, prefix) {
			return true
		}
	}
	return false
}
