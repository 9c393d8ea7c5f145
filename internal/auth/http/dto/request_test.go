package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	authDomain "github.com/allisson/meetings/internal/auth/domain"
	"github.com/allisson/meetings/internal/identity"
)

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request LoginRequest
		wantErr bool
	}{
		{name: "Valid", request: LoginRequest{Username: "alice", Password: "pw"}},
		{name: "MissingUsername", request: LoginRequest{Password: "pw"}, wantErr: true},
		{name: "BlankUsername", request: LoginRequest{Username: "   ", Password: "pw"}, wantErr: true},
		{name: "MissingPassword", request: LoginRequest{Username: "alice"}, wantErr: true},
		{name: "ShortUsernameStillAccepted", request: LoginRequest{Username: "al", Password: "pw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMapLoginOutputToResponse(t *testing.T) {
	expiresAt := time.Date(2026, 5, 1, 16, 0, 0, 0, time.UTC)
	response := MapLoginOutputToResponse(&authDomain.LoginOutput{
		Token:     "jwt",
		TokenType: authDomain.TokenType,
		ExpiresAt: expiresAt,
		Identity:  identity.Identity{UserID: 7, Username: "alice"},
	})

	assert.Equal(t, LoginResponse{
		AccessToken: "jwt",
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		UserID:      7,
		Username:    "alice",
	}, response)
}
