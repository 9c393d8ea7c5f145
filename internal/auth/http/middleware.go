// Package http provides the authentication middleware, the login endpoint and
// the rate limiting middleware for the HTTP API.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/meetings/internal/auth/usecase"
	"github.com/allisson/meetings/internal/identity"
	"github.com/allisson/meetings/internal/metrics"
)

const bearerPrefix = "bearer "

// AuthenticationMiddleware resolves the caller of every request.
//
// A fresh identity holder is attached to the request context before anything else
// runs, and it is cleared when the rest of the chain returns, aborts or panics.
// The middleware never rejects a request: a missing, malformed, expired or foreign
// token leaves the request anonymous and the use cases decide whether that is
// acceptable (identity.RequireIdentity).
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer").
func AuthenticationMiddleware(
	tokenUseCase authUseCase.TokenUseCase,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, holder := identity.WithHolder(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		defer holder.Clear()

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			businessMetrics.RecordAuthOutcome(ctx, metrics.AuthOutcomeAnonymous)
			c.Next()
			return
		}

		id, err := tokenUseCase.Authenticate(ctx, token)
		if err != nil {
			logger.Debug("authentication failed, continuing anonymously",
				slog.String("reason", err.Error()))
			businessMetrics.RecordAuthOutcome(ctx, metrics.AuthOutcomeInvalid)
			c.Next()
			return
		}

		holder.Bind(id)
		businessMetrics.RecordAuthOutcome(ctx, metrics.AuthOutcomeAuthenticated)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
