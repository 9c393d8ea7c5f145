// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/meetings/internal/auth/http"
	authUseCase "github.com/allisson/meetings/internal/auth/usecase"
	"github.com/allisson/meetings/internal/config"
	meetingHTTP "github.com/allisson/meetings/internal/meeting/http"
	"github.com/allisson/meetings/internal/metrics"
	"github.com/allisson/meetings/internal/ratelimit"
	userHTTP "github.com/allisson/meetings/internal/user/http"
)

// readinessTimeout bounds the database ping done by /ready.
const readinessTimeout = 2 * time.Second

// Server represents the HTTP server
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterDeps groups the handlers and collaborators the API routes need.
// Nil limiters disable the matching rate limit; a nil MetricsProvider
// disables HTTP metrics.
type RouterDeps struct {
	UserHandler     *userHTTP.UserHandler
	LoginHandler    *authHTTP.LoginHandler
	MeetingHandler  *meetingHTTP.MeetingHandler
	TokenUseCase    authUseCase.TokenUseCase
	BusinessMetrics metrics.BusinessMetrics
	MetricsProvider *metrics.Provider
	LoginLimiter    ratelimit.Limiter
	UserLimiter     ratelimit.Limiter
}

// SetupRouter builds the gin engine with all middleware and routes.
func (s *Server) SetupRouter(cfg *config.Config, deps RouterDeps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if deps.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(deps.MetricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	businessMetrics := deps.BusinessMetrics
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}

	// Every request gets its own identity holder; anonymous requests pass
	// through and are rejected by the use cases that need a caller.
	router.Use(authHTTP.AuthenticationMiddleware(deps.TokenUseCase, businessMetrics, s.logger))

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", deps.UserHandler.RegisterHandler)
		if deps.LoginLimiter != nil {
			auth.POST("/login", authHTTP.LoginRateLimitMiddleware(deps.LoginLimiter, s.logger), deps.LoginHandler.LoginHandler)
		} else {
			auth.POST("/login", deps.LoginHandler.LoginHandler)
		}
		auth.POST("/timezone", deps.UserHandler.UpdateTimezoneHandler)
	}

	meeting := router.Group("/meeting")
	if deps.UserLimiter != nil {
		meeting.Use(authHTTP.UserRateLimitMiddleware(deps.UserLimiter, s.logger))
	}
	{
		meeting.POST("/create", deps.MeetingHandler.CreateHandler)
		meeting.POST("/get", deps.MeetingHandler.GetHandler)
		meeting.POST("/join", deps.MeetingHandler.JoinHandler)
		meeting.POST("/delete", deps.MeetingHandler.DeleteHandler)
		meeting.GET("/getAll", deps.MeetingHandler.ListHandler)
	}

	s.router = router
	return router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports that the process is alive.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
