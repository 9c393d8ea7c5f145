// Package dto provides data transfer objects for the authentication endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/meetings/internal/auth/domain"
	customValidation "github.com/allisson/meetings/internal/validation"
)

// LoginRequest contains the credentials posted to the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"` //nolint:gosec // inbound credential
}

// Validate checks that both credentials are present. Format rules are not applied
// here so a malformed username fails like any other unknown account.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
}

// ToInput converts the request into the use case input.
func (r *LoginRequest) ToInput() *authDomain.LoginInput {
	return &authDomain.LoginInput{
		Username: r.Username,
		Password: r.Password,
	}
}
