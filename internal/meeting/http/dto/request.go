// Package dto provides data transfer objects for the meeting endpoints.
package dto

import (
	"time"

	"github.com/allisson/meetings/internal/meeting/domain"
)

// CreateMeetingRequest is the body of POST /meeting/create.
// Field rules are enforced by the use case after the caller is authenticated.
type CreateMeetingRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
}

// ToInput converts the request into the use case input.
func (r *CreateMeetingRequest) ToInput() *domain.CreateMeetingInput {
	return &domain.CreateMeetingInput{
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}

// MeetingIDRequest is the body of the get, join and delete endpoints.
type MeetingIDRequest struct {
	MeetingID string `json:"meetingId"`
}
