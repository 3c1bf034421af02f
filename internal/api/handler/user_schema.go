package handler

import (
	"time"

	"github.com/acquisitions/identity-api/internal/core/domain"
)

type updateUserRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=2,max=255"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,max=128"`
	Role     *string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// userDetail is the full user view returned by the management endpoints.
type userDetail struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserDetail(u *domain.User) userDetail {
	return userDetail{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type listUsersResponse struct {
	Message string       `json:"message"`
	Users   []userDetail `json:"users"`
	Count   int          `json:"count"`
}

type userResponse struct {
	Message string     `json:"message"`
	User    userDetail `json:"user"`
}

type deletedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type deleteUserResponse struct {
	Message string      `json:"message"`
	User    deletedUser `json:"user"`
}
