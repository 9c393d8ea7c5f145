package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/meetings/internal/database"
	apperrors "github.com/allisson/meetings/internal/errors"
	"github.com/allisson/meetings/internal/user/domain"
)

const pgUserColumns = `id, username, email, password, timezone, created_at, updated_at`

// PostgreSQLUserRepository handles user persistence for PostgreSQL
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// Create inserts a new user and reads back the generated id and timestamps.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (username, email, password, timezone, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err := querier.QueryRowContext(ctx, query, user.Username, user.Email, user.Password, user.Timezone).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if domainErr := uniqueViolationError(err); domainErr != nil {
			return domainErr
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + pgUserColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, "failed to get user by id", query, id)
}

// GetByUsername retrieves a user by username
func (r *PostgreSQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + pgUserColumns + ` FROM users WHERE username = $1`
	return r.getOne(ctx, "failed to get user by username", query, username)
}

// UpdateTimezone sets the time zone of a user.
func (r *PostgreSQLUserRepository) UpdateTimezone(ctx context.Context, id int64, timezone string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET timezone = $1, updated_at = NOW() WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, timezone, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user timezone")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *PostgreSQLUserRepository) getOne(
	ctx context.Context,
	errMsg string,
	query string,
	arg any,
) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.Timezone, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, errMsg)
	}

	return &user, nil
}
