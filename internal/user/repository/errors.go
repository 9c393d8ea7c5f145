// Package repository provides data persistence implementations for user entities.
package repository

import (
	"strings"

	"github.com/allisson/meetings/internal/database"
	"github.com/allisson/meetings/internal/user/domain"
)

// uniqueViolationError maps a unique constraint violation on users to the
// matching domain error, or returns nil for any other error.
func uniqueViolationError(err error) error {
	if !database.IsUniqueViolation(err) {
		return nil
	}
	if strings.Contains(strings.ToLower(database.ConstraintName(err)), "email") {
		return domain.ErrEmailAlreadyExists
	}
	return domain.ErrUsernameAlreadyExists
}
