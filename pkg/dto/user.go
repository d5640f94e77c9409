package dto

import (
	"github.com/google/uuid"
	"github.com/rafiul/lifesure-api/internal/models"
)

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Photo    *string   `json:"photo,omitempty"`
	Role     string    `json:"role"`
	Provider string    `json:"provider"`
	NID      *string   `json:"nid,omitempty"`
	Address  *string   `json:"address,omitempty"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Photo:    u.PhotoURL,
		Role:     u.Role,
		Provider: u.Provider,
		NID:      u.NID,
		Address:  u.Address,
	}
}

type CreateUserRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Photo *string `json:"photo,omitempty"`
	Role  string  `json:"role,omitempty"`
}

type UpdateProfileRequest struct {
	Name    *string `json:"name,omitempty"`
	Photo   *string `json:"photo,omitempty"`
	NID     *string `json:"nid,omitempty"`
	Address *string `json:"address,omitempty"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}
