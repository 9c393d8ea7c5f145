// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/meetings/internal/user/usecase"
	appValidation "github.com/allisson/meetings/internal/validation"
)

// RegisterUserRequest represents the API request for user registration.
// Format rules are enforced by the use case; this only checks presence.
type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Timezone string `json:"timezone,omitempty"`
}

// Validate checks that the required fields are present.
func (r *RegisterUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, appValidation.NotBlank),
		validation.Field(&r.Email, validation.Required, appValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
}

// ToInput converts the request to a use case input.
func (r *RegisterUserRequest) ToInput() usecase.RegisterUserInput {
	return usecase.RegisterUserInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Timezone: r.Timezone,
	}
}

// UpdateTimezoneRequest represents the API request for changing the caller's time zone.
type UpdateTimezoneRequest struct {
	Timezone string `json:"timezone"`
}
