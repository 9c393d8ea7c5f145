package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/meetings/internal/database"
	apperrors "github.com/allisson/meetings/internal/errors"
	"github.com/allisson/meetings/internal/meeting/domain"
)

const pgMeetingColumns = `m.id, m.title, m.description, m.creator_id, m.status, m.created_at, m.start_time, m.end_time`

// PostgreSQLMeetingRepository handles meeting persistence for PostgreSQL.
type PostgreSQLMeetingRepository struct {
	db *sql.DB
}

// NewPostgreSQLMeetingRepository creates a new PostgreSQLMeetingRepository.
func NewPostgreSQLMeetingRepository(db *sql.DB) *PostgreSQLMeetingRepository {
	return &PostgreSQLMeetingRepository{db: db}
}

// Create inserts a meeting. A primary key collision returns domain.ErrMeetingAlreadyExists.
func (r *PostgreSQLMeetingRepository) Create(ctx context.Context, meeting *domain.Meeting) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO meetings (id, title, description, creator_id, status, created_at, start_time, end_time)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(ctx, query,
		meeting.ID,
		meeting.Title,
		meeting.Description,
		meeting.CreatorID,
		meeting.Status,
		meeting.CreatedAt,
		timePtrArg(meeting.StartTime),
		timePtrArg(meeting.EndTime),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrMeetingAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create meeting")
	}
	return nil
}

// GetByID retrieves a meeting by id.
func (r *PostgreSQLMeetingRepository) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgMeetingColumns + ` FROM meetings m WHERE m.id = $1`

	meeting, err := scanMeeting(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMeetingNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get meeting")
	}
	return meeting, nil
}

// Delete removes a meeting. Participants are removed by ON DELETE CASCADE.
func (r *PostgreSQLMeetingRepository) Delete(ctx context.Context, id string) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete meeting")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return domain.ErrMeetingNotFound
	}
	return nil
}

// AddParticipant records that a user joined a meeting.
func (r *PostgreSQLMeetingRepository) AddParticipant(ctx context.Context, participant *domain.Participant) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO meeting_participants (meeting_id, user_id, joined_at) VALUES ($1, $2, $3)`

	_, err := querier.ExecContext(ctx, query, participant.MeetingID, participant.UserID, participant.JoinedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrAlreadyParticipant
		}
		return apperrors.Wrap(err, "failed to add meeting participant")
	}
	return nil
}

// ListByParticipant returns the meetings a user joined, newest first.
func (r *PostgreSQLMeetingRepository) ListByParticipant(
	ctx context.Context,
	userID int64,
	offset, limit int,
) ([]*domain.Meeting, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgMeetingColumns + `
			  FROM meetings m
			  JOIN meeting_participants p ON p.meeting_id = m.id
			  WHERE p.user_id = $1
			  ORDER BY m.created_at DESC, m.id
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list meetings")
	}
	defer func() {
		_ = rows.Close()
	}()

	meetings := make([]*domain.Meeting, 0)
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan meeting")
		}
		meetings = append(meetings, meeting)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate meetings")
	}
	return meetings, nil
}
