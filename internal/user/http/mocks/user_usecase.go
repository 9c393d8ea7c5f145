// Package mocks provides mock implementations for testing user HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/meetings/internal/user/domain"
	"github.com/allisson/meetings/internal/user/usecase"
)

// MockUserUseCase is a mock implementation of usecase.UseCase for testing.
type MockUserUseCase struct {
	mock.Mock
}

// Register mocks the Register method.
func (m *MockUserUseCase) Register(ctx context.Context, input usecase.RegisterUserInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// GetByUsername mocks the GetByUsername method.
func (m *MockUserUseCase) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Authenticate mocks the Authenticate method.
func (m *MockUserUseCase) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// UpdateTimezone mocks the UpdateTimezone method.
func (m *MockUserUseCase) UpdateTimezone(ctx context.Context, timezone string) (*domain.User, error) {
	args := m.Called(ctx, timezone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
