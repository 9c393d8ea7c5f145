package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/meetings/internal/auth/http/dto"
	authUseCase "github.com/allisson/meetings/internal/auth/usecase"
	"github.com/allisson/meetings/internal/httputil"
	customValidation "github.com/allisson/meetings/internal/validation"
)

// LoginHandler exchanges credentials for an access token.
type LoginHandler struct {
	tokenUseCase authUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewLoginHandler creates a new login handler.
func NewLoginHandler(tokenUseCase authUseCase.TokenUseCase, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// LoginHandler authenticates a username and password.
// POST /api/auth/login - anonymous. Returns 200 OK with the access token.
// Unknown usernames and wrong passwords both produce 401.
func (h *LoginHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.tokenUseCase.Login(c.Request.Context(), req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapLoginOutputToResponse(output))
}
