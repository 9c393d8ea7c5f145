// Package usecase implements meeting business logic.
package usecase

import (
	"context"

	"github.com/allisson/meetings/internal/meeting/domain"
)

// MeetingRepository defines the interface for meeting persistence.
type MeetingRepository interface {
	// Create stores a meeting. A duplicate id returns domain.ErrMeetingAlreadyExists.
	Create(ctx context.Context, meeting *domain.Meeting) error
	GetByID(ctx context.Context, id string) (*domain.Meeting, error)
	Delete(ctx context.Context, id string) error
	// AddParticipant returns domain.ErrAlreadyParticipant when the user already joined.
	AddParticipant(ctx context.Context, participant *domain.Participant) error
	// ListByParticipant returns the meetings the user joined, newest first.
	ListByParticipant(ctx context.Context, userID int64, offset, limit int) ([]*domain.Meeting, error)
}

// UseCase defines the interface for meeting operations. Every operation requires
// an authenticated caller and returns errors.ErrUnauthorized otherwise.
type UseCase interface {
	// Create allocates an id, stores the meeting and adds the caller as its first participant.
	Create(ctx context.Context, input *domain.CreateMeetingInput) (*domain.Meeting, error)
	Get(ctx context.Context, id string) (*domain.Meeting, error)
	Join(ctx context.Context, id string) (*domain.Participant, error)
	Delete(ctx context.Context, id string) error
	ListForCurrentUser(ctx context.Context, offset, limit int) ([]*domain.Meeting, error)
}
