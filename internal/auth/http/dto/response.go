package dto

import (
	"time"

	authDomain "github.com/allisson/meetings/internal/auth/domain"
)

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	UserID      int64     `json:"userId"`
	Username    string    `json:"username"`
}

// MapLoginOutputToResponse converts the use case output to the wire format.
func MapLoginOutputToResponse(output *authDomain.LoginOutput) LoginResponse {
	return LoginResponse{
		AccessToken: output.Token,
		TokenType:   output.TokenType,
		ExpiresAt:   output.ExpiresAt,
		UserID:      output.Identity.UserID,
		Username:    output.Identity.Username,
	}
}
