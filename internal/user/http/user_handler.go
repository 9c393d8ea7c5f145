// Package http provides HTTP handlers for user-related operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/meetings/internal/httputil"
	"github.com/allisson/meetings/internal/user/http/dto"
	"github.com/allisson/meetings/internal/user/usecase"
	appValidation "github.com/allisson/meetings/internal/validation"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userUseCase usecase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterHandler creates a new account.
// POST /api/auth/register - anonymous. Returns 201 Created.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, appValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Register(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterUserResponse{
		Success: true,
		User:    dto.MapUserToResponse(user),
	})
}

// UpdateTimezoneHandler changes the caller's time zone.
// POST /api/auth/timezone - requires an authenticated caller.
func (h *UserHandler) UpdateTimezoneHandler(c *gin.Context) {
	var req dto.UpdateTimezoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// The use case checks the caller before validating the zone so anonymous
	// requests get 401 rather than a validation error.
	user, err := h.userUseCase.UpdateTimezone(c.Request.Context(), req.Timezone)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}
