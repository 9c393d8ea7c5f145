package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/meetings/internal/auth/domain"
	"github.com/allisson/meetings/internal/identity"
	"github.com/allisson/meetings/internal/metrics"
)

// tokenUseCaseWithMetrics decorates TokenUseCase with metrics instrumentation.
type tokenUseCaseWithMetrics struct {
	next    TokenUseCase
	metrics metrics.BusinessMetrics
}

// NewTokenUseCaseWithMetrics wraps a TokenUseCase with metrics recording.
func NewTokenUseCaseWithMetrics(useCase TokenUseCase, m metrics.BusinessMetrics) TokenUseCase {
	return &tokenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for login attempts.
func (t *tokenUseCaseWithMetrics) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	start := time.Now()
	output, err := t.next.Login(ctx, input)

	status := metrics.StatusFromError(err)
	t.metrics.RecordOperation(ctx, "auth", "login", status)
	t.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return output, err
}

// Authenticate records metrics for bearer token resolution.
func (t *tokenUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (identity.Identity, error) {
	start := time.Now()
	id, err := t.next.Authenticate(ctx, token)

	status := metrics.StatusFromError(err)
	t.metrics.RecordOperation(ctx, "auth", "authenticate", status)
	t.metrics.RecordDuration(ctx, "auth", "authenticate", time.Since(start), status)

	return id, err
}
