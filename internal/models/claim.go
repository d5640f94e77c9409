package models

import (
	"time"

	"github.com/google/uuid"
)

type Claim struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	PolicyTitle   string    `json:"policy_title"`
	CustomerEmail string    `json:"customer_email"`
	Reason        string    `json:"reason"`
	DocumentURL   *string   `json:"document_url,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
