// Package http provides HTTP handlers for meeting operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/meetings/internal/httputil"
	"github.com/allisson/meetings/internal/identity"
	"github.com/allisson/meetings/internal/meeting/http/dto"
	"github.com/allisson/meetings/internal/meeting/usecase"
)

// MeetingHandler handles meeting HTTP requests. Every route expects the
// authentication middleware to have run and answers 401 to anonymous callers
// before reading the request.
type MeetingHandler struct {
	meetingUseCase usecase.UseCase
	logger         *slog.Logger
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(meetingUseCase usecase.UseCase, logger *slog.Logger) *MeetingHandler {
	return &MeetingHandler{
		meetingUseCase: meetingUseCase,
		logger:         logger,
	}
}

// CreateHandler creates a meeting owned by the caller.
// POST /meeting/create - Returns 201 Created with the new id.
func (h *MeetingHandler) CreateHandler(c *gin.Context) {
	if !h.authenticated(c) {
		return
	}

	var req dto.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	meeting, err := h.meetingUseCase.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateMeetingResponse{
		MeetingID:  meeting.ID,
		CreateTime: meeting.CreatedAt,
	})
}

// GetHandler returns one meeting.
// POST /meeting/get
func (h *MeetingHandler) GetHandler(c *gin.Context) {
	if !h.authenticated(c) {
		return
	}

	var req dto.MeetingIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	meeting, err := h.meetingUseCase.Get(c.Request.Context(), req.MeetingID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.GetMeetingResponse{
		Success: true,
		Meeting: dto.MapMeetingToResponse(meeting),
	})
}

// JoinHandler adds the caller to a meeting.
// POST /meeting/join - Returns 409 when the caller already joined.
func (h *MeetingHandler) JoinHandler(c *gin.Context) {
	if !h.authenticated(c) {
		return
	}

	var req dto.MeetingIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	participant, err := h.meetingUseCase.Join(c.Request.Context(), req.MeetingID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.JoinMeetingResponse{
		Success:   true,
		MeetingID: participant.MeetingID,
		JoinedAt:  participant.JoinedAt,
	})
}

// DeleteHandler removes a meeting.
// POST /meeting/delete
func (h *MeetingHandler) DeleteHandler(c *gin.Context) {
	if !h.authenticated(c) {
		return
	}

	var req dto.MeetingIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.meetingUseCase.Delete(c.Request.Context(), req.MeetingID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteMeetingResponse{Success: true})
}

// ListHandler lists the meetings the caller participates in.
// GET /meeting/getAll?offset=0&limit=50
func (h *MeetingHandler) ListHandler(c *gin.Context) {
	if !h.authenticated(c) {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	meetings, err := h.meetingUseCase.ListForCurrentUser(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMeetingsToListResponse(meetings))
}

// authenticated writes a 401 response when the request carries no identity.
func (h *MeetingHandler) authenticated(c *gin.Context) bool {
	if _, err := identity.RequireIdentity(c.Request.Context()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return false
	}
	return true
}
