package usecase

import (
	"context"
	"time"

	"github.com/allisson/meetings/internal/meeting/domain"
	"github.com/allisson/meetings/internal/metrics"
)

const metricsDomain = "meeting"

// meetingUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type meetingUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewMeetingUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewMeetingUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &meetingUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (m *meetingUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusFromError(err)
	m.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	m.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
}

func (m *meetingUseCaseWithMetrics) Create(
	ctx context.Context,
	input *domain.CreateMeetingInput,
) (*domain.Meeting, error) {
	start := time.Now()
	meeting, err := m.next.Create(ctx, input)
	m.record(ctx, "meeting_create", start, err)
	return meeting, err
}

func (m *meetingUseCaseWithMetrics) Get(ctx context.Context, id string) (*domain.Meeting, error) {
	start := time.Now()
	meeting, err := m.next.Get(ctx, id)
	m.record(ctx, "meeting_get", start, err)
	return meeting, err
}

func (m *meetingUseCaseWithMetrics) Join(ctx context.Context, id string) (*domain.Participant, error) {
	start := time.Now()
	participant, err := m.next.Join(ctx, id)
	m.record(ctx, "meeting_join", start, err)
	return participant, err
}

func (m *meetingUseCaseWithMetrics) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.record(ctx, "meeting_delete", start, err)
	return err
}

func (m *meetingUseCaseWithMetrics) ListForCurrentUser(
	ctx context.Context,
	offset, limit int,
) ([]*domain.Meeting, error) {
	start := time.Now()
	meetings, err := m.next.ListForCurrentUser(ctx, offset, limit)
	m.record(ctx, "meeting_list", start, err)
	return meetings, err
}
