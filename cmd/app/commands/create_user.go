package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	userDomain "github.com/allisson/meetings/internal/user/domain"
	userUseCase "github.com/allisson/meetings/internal/user/usecase"
)

// CreateUserParams carries the create-user flags.
type CreateUserParams struct {
	Username string
	Email    string
	Password string
	Timezone string
	Format   string
}

// RunCreateUser registers an account through the same use case as the HTTP API,
// so the same validation applies. When no password flag is given the first
// line of the reader is used.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	useCase userUseCase.UseCase,
	logger *slog.Logger,
	io IOTuple,
	params CreateUserParams,
) error {
	logger.Info("creating user", slog.String("username", params.Username))

	password := params.Password
	if password == "" {
		var err error
		password, err = readPassword(io)
		if err != nil {
			return err
		}
	}

	user, err := useCase.Register(ctx, userUseCase.RegisterUserInput{
		Username: params.Username,
		Email:    params.Email,
		Password: password,
		Timezone: params.Timezone,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if params.Format == "json" {
		outputUserJSON(user, io.Writer)
	} else {
		outputUserText(user, io.Writer)
	}

	logger.Info("user created successfully",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return nil
}

// readPassword prompts for and reads one line from the reader.
func readPassword(tuple IOTuple) (string, error) {
	if tuple.Reader == nil {
		return "", errors.New("password is required")
	}
	_, _ = fmt.Fprint(tuple.Writer, "Password: ")

	line, err := bufio.NewReader(tuple.Reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password is required")
	}
	_, _ = fmt.Fprintln(tuple.Writer)
	return password, nil
}

// outputUserText outputs the result in human-readable text format.
func outputUserText(user *userDomain.User, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %d\n", user.ID)
	_, _ = fmt.Fprintf(writer, "Username: %s\n", user.Username)
	_, _ = fmt.Fprintf(writer, "Timezone: %s\n", user.Timezone)
}

// outputUserJSON outputs the result in JSON format for machine consumption.
func outputUserJSON(user *userDomain.User, writer io.Writer) {
	result := map[string]any{
		"userId":   user.ID,
		"username": user.Username,
		"email":    user.Email,
		"timezone": user.Timezone,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
