package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/allisson/meetings/internal/database"
	apperrors "github.com/allisson/meetings/internal/errors"
	"github.com/allisson/meetings/internal/user/domain"
)

const mysqlUserColumns = `id, username, email, password, timezone, created_at, updated_at`

// MySQLUserRepository handles user persistence for MySQL
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts a new user. MySQL has no RETURNING, so the id comes from
// LastInsertId and the timestamps are set here.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	now := time.Now().UTC()
	query := `INSERT INTO users (username, email, password, timezone, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx, query, user.Username, user.Email, user.Password, user.Timezone, now, now,
	)
	if err != nil {
		if domainErr := uniqueViolationError(err); domainErr != nil {
			return domainErr
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get user id")
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetByID retrieves a user by ID
func (r *MySQLUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE id = ?`
	return r.getOne(ctx, "failed to get user by id", query, id)
}

// GetByUsername retrieves a user by username
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE username = ?`
	return r.getOne(ctx, "failed to get user by username", query, username)
}

// UpdateTimezone sets the time zone of a user. The existence check is a
// separate query because MySQL reports zero affected rows for unchanged values.
func (r *MySQLUserRepository) UpdateTimezone(ctx context.Context, id int64, timezone string) error {
	querier := database.GetTx(ctx, r.db)

	var exists int
	err := querier.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, id).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return apperrors.Wrap(err, "failed to check user")
	}

	query := `UPDATE users SET timezone = ?, updated_at = ? WHERE id = ?`
	if _, err := querier.ExecContext(ctx, query, timezone, time.Now().UTC(), id); err != nil {
		return apperrors.Wrap(err, "failed to update user timezone")
	}
	return nil
}

func (r *MySQLUserRepository) getOne(
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
