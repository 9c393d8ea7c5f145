package dto

import (
	"time"

	"github.com/allisson/meetings/internal/meeting/domain"
)

// MeetingResponse represents a meeting in API responses.
type MeetingResponse struct {
	MeetingID   string     `json:"meetingId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatorID   int64      `json:"creatorId"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
}

// CreateMeetingResponse is returned by POST /meeting/create.
type CreateMeetingResponse struct {
	MeetingID  string    `json:"meetingId"`
	CreateTime time.Time `json:"createTime"`
}

// GetMeetingResponse is returned by POST /meeting/get.
type GetMeetingResponse struct {
	Success bool            `json:"success"`
	Meeting MeetingResponse `json:"meeting"`
}

// JoinMeetingResponse is returned by POST /meeting/join.
type JoinMeetingResponse struct {
	Success   bool      `json:"success"`
	MeetingID string    `json:"meetingId"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// DeleteMeetingResponse is returned by POST /meeting/delete.
type DeleteMeetingResponse struct {
	Success bool `json:"success"`
}

// ListMeetingsResponse is returned by GET /meeting/getAll.
type ListMeetingsResponse struct {
	Success  bool              `json:"success"`
	Meetings []MeetingResponse `json:"meetings"`
}

// MapMeetingToResponse converts a domain meeting to an API response.
func MapMeetingToResponse(meeting *domain.Meeting) MeetingResponse {
	return MeetingResponse{
		MeetingID:   meeting.ID,
		Title:       meeting.Title,
		Description: meeting.Description,
		CreatorID:   meeting.CreatorID,
		Status:      meeting.Status,
		CreatedAt:   meeting.CreatedAt,
		StartTime:   meeting.StartTime,
		EndTime:     meeting.EndTime,
	}
}

// MapMeetingsToListResponse converts domain meetings to a list response.
func MapMeetingsToListResponse(meetings []*domain.Meeting) ListMeetingsResponse {
	items := make([]MeetingResponse, 0, len(meetings))
	for _, meeting := range meetings {
		items = append(items, MapMeetingToResponse(meeting))
	}
	return ListMeetingsResponse{
		Success:  true,
		Meetings: items,
	}
}
