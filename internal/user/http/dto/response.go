package dto

import (
	"time"

	"github.com/allisson/meetings/internal/user/domain"
)

// UserResponse is the public view of a user. The password hash is never exposed.
type UserResponse struct {
	ID        int64     `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RegisterUserResponse is returned after a successful registration.
type RegisterUserResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// MapUserToResponse converts a domain user to its API representation.
func MapUserToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Timezone:  user.Timezone,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
