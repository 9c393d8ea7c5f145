package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/meetings/internal/meeting/domain"
)

// MockMeetingRepository is a mock implementation of MeetingRepository.
type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) Create(ctx context.Context, meeting *domain.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) GetByID(ctx context.Context, id string) (*domain.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMeetingRepository) AddParticipant(ctx context.Context, participant *domain.Participant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

func (m *MockMeetingRepository) ListByParticipant(
	ctx context.Context,
	userID int64,
	offset, limit int,
) ([]*domain.Meeting, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Meeting), args.Error(1)
}

// MockTxManager runs the function inline and counts transactions.
type MockTxManager struct {
	mu    sync.Mutex
	calls int
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return fn(ctx)
}

// sequenceGenerator returns the ids in order and repeats the last one.
type sequenceGenerator struct {
	mu  sync.Mutex
	ids []string
	n   int
}

func (g *sequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.ids[min(g.n, len(g.ids)-1)]
	g.n++
	return id
}
