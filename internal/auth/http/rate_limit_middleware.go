package http

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/meetings/internal/errors"
	"github.com/allisson/meetings/internal/httputil"
	"github.com/allisson/meetings/internal/identity"
	"github.com/allisson/meetings/internal/ratelimit"
)

// LoginRateLimitMiddleware limits login attempts per client IP.
//
// c.ClientIP() honours X-Forwarded-For and X-Real-IP only for the proxies the
// engine trusts. Limiter errors are logged and the request is let through.
func LoginRateLimitMiddleware(limiter ratelimit.Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if !allow(c, limiter, "login:"+clientIP, logger) {
			logger.Debug("login rate limit exceeded", slog.String("client_ip", clientIP))
			return
		}
		c.Next()
	}
}

// UserRateLimitMiddleware limits requests per authenticated user.
// It must run after AuthenticationMiddleware. Anonymous requests are not counted;
// the handlers behind it reject them.
func UserRateLimitMiddleware(limiter ratelimit.Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity.Current(c.Request.Context())
		if !ok {
			c.Next()
			return
		}
		if !allow(c, limiter, "user:"+strconv.FormatInt(id.UserID, 10), logger) {
			logger.Debug("user rate limit exceeded", slog.Int64("user_id", id.UserID))
			return
		}
		c.Next()
	}
}

// allow consults the limiter and writes the 429 response when the request is denied.
func allow(c *gin.Context, limiter ratelimit.Limiter, key string, logger *slog.Logger) bool {
	decision, err := limiter.Allow(c.Request.Context(), key)
	if err != nil {
		logger.Warn("rate limiter unavailable, allowing request", slog.Any("error", err))
	}
	if decision.Allowed {
		return true
	}

	c.Header("Retry-After", strconv.Itoa(ratelimit.RetryAfterSeconds(decision.RetryAfter)))
	httputil.HandleErrorGin(c, apperrors.ErrTooManyRequests, logger)
	c.Abort()
	return false
}
