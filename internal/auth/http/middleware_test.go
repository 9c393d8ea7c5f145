package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/meetings/internal/auth/domain"
	httpMocks "github.com/allisson/meetings/internal/auth/http/mocks"
	"github.com/allisson/meetings/internal/httputil"
	"github.com/allisson/meetings/internal/identity"
	"github.com/allisson/meetings/internal/metrics"
)

type outcomeRecorder struct {
	metrics.NoOpBusinessMetrics
	mu       sync.Mutex
	outcomes []string
}

func (r *outcomeRecorder) RecordAuthOutcome(_ context.Context, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

type observed struct {
	holder *identity.Holder
	id     identity.Identity
	ok     bool
}

// newAuthRouter builds a router whose final handler captures what it saw.
func newAuthRouter(
	t *testing.T,
	tokenUseCase *httpMocks.MockTokenUseCase,
	recorder *outcomeRecorder,
	seen *observed,
	extra ...gin.HandlerFunc,
) *gin.Engine {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var businessMetrics metrics.BusinessMetrics = metrics.NewNoOpBusinessMetrics()
	if recorder != nil {
		businessMetrics = recorder
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(AuthenticationMiddleware(tokenUseCase, businessMetrics, logger))
	handlers := append([]gin.HandlerFunc{}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		seen.holder = identity.HolderFromContext(c.Request.Context())
		seen.id, seen.ok = identity.Current(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	router.GET("/whoami", handlers...)
	return router
}

func doRequest(router http.Handler, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w
}

func assertHolderEmpty(t *testing.T, holder *identity.Holder) {
	t.Helper()
	require.NotNil(t, holder)
	_, ok := holder.Current()
	assert.False(t, ok, "holder must be cleared once the request completes")
}

func TestAuthenticationMiddleware(t *testing.T) {
	alice := identity.Identity{UserID: 1, Username: "alice"}

	t.Run("Anonymous_MissingHeader", func(t *testing.T) {
		tokenUseCase := &httpMocks.MockTokenUseCase{}
		recorder := &outcomeRecorder{}
		seen := &observed{}
		router := newAuthRouter(t, tokenUseCase, recorder, seen)

		w := doRequest(router, "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.False(t, seen.ok)
		assertHolderEmpty(t, seen.holder)
		assert.Equal(t, []string{metrics.AuthOutcomeAnonymous}, recorder.outcomes)
		tokenUseCase.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("Anonymous_NotBearerScheme", func(t *testing.T) {
		for _, header := range []string{"Basic YWxpY2U6cHc=", "Bearer", "Bearer    ", "Token abc"} {
			tokenUseCase := &httpMocks.MockTokenUseCase{}
			seen := &observed{}
			router := newAuthRouter(t, tokenUseCase, nil, seen)

			w := doRequest(router, header)

			assert.Equal(t, http.StatusNoContent, w.Code, header)
			assert.False(t, seen.ok, header)
			tokenUseCase.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
		}
	})

	t.Run("Success_CaseInsensitiveScheme", func(t *testing.T) {
		for _, scheme := range []string{"Bearer", "bearer", "BEARER"} {
			tokenUseCase := &httpMocks.MockTokenUseCase{}
			recorder := &outcomeRecorder{}
			seen := &observed{}
			router := newAuthRouter(t, tokenUseCase, recorder, seen)

			tokenUseCase.On("Authenticate", mock.Anything, "good-token").Return(alice, nil).Once()

			w := doRequest(router, scheme+" good-token")

			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.True(t, seen.ok)
			assert.Equal(t, alice, seen.id)
			assertHolderEmpty(t, seen.holder)
			assert.Equal(t, []string{metrics.AuthOutcomeAuthenticated}, recorder.outcomes)
			tokenUseCase.AssertExpectations(t)
		}
	})

	t.Run("Anonymous_AuthenticationFailures", func(t *testing.T) {
		failures := []error{
			authDomain.ErrMalformedToken,
			authDomain.ErrInvalidSignature,
			authDomain.ErrTokenExpired,
			authDomain.ErrSubjectMismatch,
			fmt.Errorf("user lookup: %w", context.DeadlineExceeded),
		}
		for _, failure := range failures {
			tokenUseCase := &httpMocks.MockTokenUseCase{}
			recorder := &outcomeRecorder{}
			seen := &observed{}
			router := newAuthRouter(t, tokenUseCase, recorder, seen)

			tokenUseCase.On("Authenticate", mock.Anything, "bad-token").
				Return(identity.Identity{}, failure).
				Once()

			w := doRequest(router, "Bearer bad-token")

			assert.Equal(t, http.StatusNoContent, w.Code, failure.Error())
			assert.False(t, seen.ok, failure.Error())
			assert.Equal(t, []string{metrics.AuthOutcomeInvalid}, recorder.outcomes)
		}
	})

	t.Run("Cleared_AfterAbort", func(t *testing.T) {
		tokenUseCase := &httpMocks.MockTokenUseCase{}
		var holder *identity.Holder
		var boundDuringRequest bool

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		router := gin.New()
		router.Use(AuthenticationMiddleware(tokenUseCase, metrics.NewNoOpBusinessMetrics(), logger))
		router.GET("/whoami", func(c *gin.Context) {
			holder = identity.HolderFromContext(c.Request.Context())
			_, boundDuringRequest = holder.Current()
			c.AbortWithStatus(http.StatusForbidden)
		})

		tokenUseCase.On("Authenticate", mock.Anything, "good-token").Return(alice, nil).Once()

		w := doRequest(router, "Bearer good-token")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.True(t, boundDuringRequest)
		assertHolderEmpty(t, holder)
	})

	t.Run("Cleared_AfterPanic", func(t *testing.T) {
		tokenUseCase := &httpMocks.MockTokenUseCase{}
		var holder *identity.Holder

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		router := gin.New()
		router.Use(gin.RecoveryWithWriter(io.Discard))
		router.Use(AuthenticationMiddleware(tokenUseCase, metrics.NewNoOpBusinessMetrics(), logger))
		router.GET("/whoami", func(c *gin.Context) {
			holder = identity.HolderFromContext(c.Request.Context())
			panic("handler exploded")
		})

		tokenUseCase.On("Authenticate", mock.Anything, "good-token").Return(alice, nil).Once()

		w := doRequest(router, "Bearer good-token")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assertHolderEmpty(t, holder)
	})

	t.Run("Expired_TokenReachesProtectedHandlerAsAnonymous", func(t *testing.T) {
		tokenUseCase := &httpMocks.MockTokenUseCase{}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		router := gin.New()
		router.Use(AuthenticationMiddleware(tokenUseCase, metrics.NewNoOpBusinessMetrics(), logger))
		router.GET("/whoami", func(c *gin.Context) {
			if _, err := identity.RequireIdentity(c.Request.Context()); err != nil {
				httputil.HandleErrorGin(c, err, logger)
				return
			}
			c.Status(http.StatusOK)
		})

		tokenUseCase.On("Authenticate", mock.Anything, "expired-token").
			Return(identity.Identity{}, authDomain.ErrTokenExpired).
			Once()

		w := doRequest(router, "Bearer expired-token")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "unauthorized")
	})
}

func TestAuthenticationMiddleware_ConcurrentRequestsAreIsolated(t *testing.T) {
	tokenUseCase := &httpMocks.MockTokenUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	const workers = 32
	for i := 0; i < workers; i++ {
		tokenUseCase.On("Authenticate", mock.Anything, fmt.Sprintf("token-%d", i)).
			Return(identity.Identity{UserID: int64(i + 1), Username: fmt.Sprintf("user%d", i)}, nil)
	}

	start := make(chan struct{})
	router := gin.New()
	router.Use(AuthenticationMiddleware(tokenUseCase, metrics.NewNoOpBusinessMetrics(), logger))
	router.GET("/whoami", func(c *gin.Context) {
		<-start
		time.Sleep(time.Millisecond)
		id, ok := identity.Current(c.Request.Context())
		if !ok {
			c.String(http.StatusUnauthorized, "anonymous")
			return
		}
		c.String(http.StatusOK, id.Username)
	})

	var wg sync.WaitGroup
	results := make([]string, workers)
	codes := make([]int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			header := ""
			if i%4 != 3 {
				header = fmt.Sprintf("Bearer token-%d", i)
			}
			w := doRequest(router, header)
			codes[i] = w.Code
			results[i] = w.Body.String()
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < workers; i++ {
		if i%4 == 3 {
			assert.Equal(t, http.StatusUnauthorized, codes[i])
			assert.Equal(t, "anonymous", results[i])
			continue
		}
		assert.Equal(t, http.StatusOK, codes[i])
		assert.Equal(t, fmt.Sprintf("user%d", i), results[i])
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc", token: "abc", ok: true},
		{header: "bEaReR abc ", token: "abc", ok: true},
		{header: "Bearer ", ok: false},
		{header: "Bearerabc", ok: false},
		{header: "", ok: false},
		{header: "Basic abc", ok: false},
	}

	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}
