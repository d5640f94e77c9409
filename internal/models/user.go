package models

import (
	"time"

	"github.com/google/uuid"
)

// Authorization roles. Exactly one per user, resolved server-side.
const (
	RoleCustomer = "customer"
	RoleAgent    = "agent"
	RoleAdmin    = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleCustomer, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PhotoURL     *string   `json:"photo,omitempty"`
	Role         string    `json:"role"`
	PasswordHash *string   `json:"-"`
	Provider     string    `json:"provider"`
	ProviderID   *string   `json:"-"`
	NID          *string   `json:"nid,omitempty"`
	Address      *string   `json:"address,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
