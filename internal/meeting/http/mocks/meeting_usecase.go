// Package mocks provides mock implementations for testing meeting HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/meetings/internal/meeting/domain"
)

// MockMeetingUseCase is a mock implementation of the meeting UseCase.
type MockMeetingUseCase struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockMeetingUseCase) Create(ctx context.Context, input *domain.CreateMeetingInput) (*domain.Meeting, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

// Get mocks the Get method.
func (m *MockMeetingUseCase) Get(ctx context.Context, id string) (*domain.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Meeting), args.Error(1)
}

// Join mocks the Join method.
func (m *MockMeetingUseCase) Join(ctx context.Context, id string) (*domain.Participant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Participant), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockMeetingUseCase) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ListForCurrentUser mocks the ListForCurrentUser method.
func (m *MockMeetingUseCase) ListForCurrentUser(ctx context.Context, offset, limit int) ([]*domain.Meeting, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Meeting), args.Error(1)
}
