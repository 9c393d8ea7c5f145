package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	userDomain "github.com/allisson/meetings/internal/user/domain"
	userMocks "github.com/allisson/meetings/internal/user/http/mocks"
	userUseCase "github.com/allisson/meetings/internal/user/usecase"
)

func TestRunCreateUser(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	created := &userDomain.User{ID: 42, Username: "alice_01", Email: "alice@example.com", Timezone: "Europe/Lisbon"}

	t.Run("password-flag-text", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		mockUseCase.On("Register", ctx, userUseCase.RegisterUserInput{
			Username: "alice_01",
			Email:    "alice@example.com",
			Password: "Sup3r$ecret",
			Timezone: "Europe/Lisbon",
		}).Return(created, nil)

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, logger, IOTuple{Writer: &out}, CreateUserParams{
			Username: "alice_01",
			Email:    "alice@example.com",
			Password: "Sup3r$ecret",
			Timezone: "Europe/Lisbon",
			Format:   "text",
		})

		require.NoError(t, err)
		require.Contains(t, out.String(), "User ID: 42")
		require.NotContains(t, out.String(), "Sup3r$ecret")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("password-from-reader-json", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		mockUseCase.On("Register", ctx, mock.MatchedBy(func(in userUseCase.RegisterUserInput) bool {
			return in.Password == "Sup3r$ecret"
		})).Return(created, nil)

		var out bytes.Buffer
		tuple := IOTuple{Reader: strings.NewReader("Sup3r$ecret\n"), Writer: &out}
		err := RunCreateUser(ctx, mockUseCase, logger, tuple, CreateUserParams{
			Username: "alice_01",
			Email:    "alice@example.com",
			Format:   "json",
		})
		require.NoError(t, err)

		jsonPart := out.String()[strings.Index(out.String(), "{"):]
		var result map[string]any
		require.NoError(t, json.Unmarshal([]byte(jsonPart), &result))
		require.Equal(t, float64(42), result["userId"])
		require.Equal(t, "alice_01", result["username"])
	})

	t.Run("empty-password", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}

		var out bytes.Buffer
		tuple := IOTuple{Reader: strings.NewReader("\n"), Writer: &out}
		err := RunCreateUser(ctx, mockUseCase, logger, tuple, CreateUserParams{Username: "alice_01"})

		require.ErrorContains(t, err, "password is required")
		mockUseCase.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("use-case-error", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		mockUseCase.On("Register", ctx, mock.Anything).Return(nil, userDomain.ErrUsernameAlreadyExists)

		err := RunCreateUser(ctx, mockUseCase, logger, IOTuple{Writer: io.Discard}, CreateUserParams{
			Username: "alice_01",
			Email:    "alice@example.com",
			Password: "Sup3r$ecret",
		})

		require.ErrorIs(t, err, userDomain.ErrUsernameAlreadyExists)
	})
}
