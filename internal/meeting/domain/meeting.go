// Package domain defines the meeting domain model and its errors.
package domain

import (
	"time"

	"github.com/allisson/meetings/internal/errors"
)

// StatusReady is the status of a meeting that has been scheduled but not started.
const StatusReady = "ready"

// Meeting is a scheduled meeting. ID has the form xxxx-xxxx-xxxx-xxxx.
type Meeting struct {
	ID          string
	Title       string
	Description string
	CreatorID   int64
	Status      string
	CreatedAt   time.Time
	StartTime   *time.Time
	EndTime     *time.Time
}

// Participant records that a user joined a meeting.
type Participant struct {
	MeetingID string
	UserID    int64
	JoinedAt  time.Time
}

// CreateMeetingInput carries the caller-provided fields of a new meeting.
type CreateMeetingInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
}

var (
	// ErrMeetingNotFound indicates no meeting has the requested id.
	ErrMeetingNotFound = errors.Wrap(errors.ErrNotFound, "meeting not found")

	// ErrMeetingAlreadyExists indicates a generated id collided with a stored meeting.
	ErrMeetingAlreadyExists = errors.Wrap(errors.ErrConflict, "meeting id already exists")

	// ErrAlreadyParticipant indicates the caller already joined the meeting.
	ErrAlreadyParticipant = errors.Wrap(errors.ErrConflict, "already a participant of this meeting")

	// ErrInvalidMeetingID indicates a meeting id that does not match the id format.
	ErrInvalidMeetingID = errors.Wrap(errors.ErrInvalidInput, "invalid meeting id")

	// ErrMeetingIDExhausted is returned when every generated id collided. It maps to 500.
	ErrMeetingIDExhausted = errors.New("could not allocate a unique meeting id")
)
