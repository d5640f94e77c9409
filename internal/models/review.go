package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	UserPhoto   *string   `json:"user_photo,omitempty"`
	Rating      int       `json:"rating"`
	Message     string    `json:"message"`
	PolicyTitle string    `json:"policy_title"`
	CreatedAt   time.Time `json:"created_at"`
}

type NewsletterSubscriber struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
