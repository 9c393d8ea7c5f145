package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Status labels used by the business metric decorators.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Authentication outcomes recorded by the authentication middleware.
const (
	AuthOutcomeAuthenticated = "authenticated"
	AuthOutcomeAnonymous     = "anonymous"
	AuthOutcomeInvalid       = "invalid"
)

// BusinessMetrics defines the interface for recording business operation metrics.
// Implementations track operation counts and durations for the "auth", "user" and
// "meeting" domains.
type BusinessMetrics interface {
	// RecordOperation records a business operation with its status.
	// Operation examples: "login", "authenticate", "meeting_create"
	RecordOperation(ctx context.Context, domain, operation, status string)

	// RecordDuration records the duration of a business operation with its status.
	// Duration is recorded in seconds as a histogram for percentile calculations.
	RecordDuration(ctx context.Context, domain, operation string, duration time.Duration, status string)

	// RecordAuthOutcome counts how a request left the authentication middleware.
	RecordAuthOutcome(ctx context.Context, outcome string)
}

// StatusFromError returns the status label for the result of an operation.
func StatusFromError(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

type businessMetrics struct {
	operationCounter   metric.Int64Counter
	durationHisto      metric.Float64Histogram
	authOutcomeCounter metric.Int64Counter
}

// NewBusinessMetrics creates a new BusinessMetrics implementation using the provided meter provider.
// The namespace parameter is used as a prefix for all metric names (e.g., "meetings").
func NewBusinessMetrics(meterProvider metric.MeterProvider, namespace string) (BusinessMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of business operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of business operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	authOutcomeCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_auth_outcomes_total", namespace),
		metric.WithDescription("Requests by authentication outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth outcome counter: %w", err)
	}

	return &businessMetrics{
		operationCounter:   operationCounter,
		durationHisto:      durationHisto,
		authOutcomeCounter: authOutcomeCounter,
	}, nil
}

// RecordOperation increments the operation counter with domain, operation, and status labels.
func (b *businessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	b.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// RecordDuration records the operation duration in seconds with domain, operation, and status labels.
func (b *businessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	b.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("domain", domain),
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

func (b *businessMetrics) RecordAuthOutcome(ctx context.Context, outcome string) {
	b.authOutcomeCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// NoOpBusinessMetrics is a no-op implementation of BusinessMetrics for when metrics are disabled.
type NoOpBusinessMetrics struct{}

// NewNoOpBusinessMetrics creates a no-op BusinessMetrics implementation.
func NewNoOpBusinessMetrics() BusinessMetrics {
	return &NoOpBusinessMetrics{}
}

// RecordOperation does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {}

// RecordDuration does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
}

// RecordAuthOutcome does nothing when metrics are disabled.
func (n *NoOpBusinessMetrics) RecordAuthOutcome(ctx context.Context, outcome string) {}
