package models

import (
	"time"

	"github.com/google/uuid"
)

type Policy struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	ImageURL        *string   `json:"image,omitempty"`
	MinAge          int       `json:"min_age"`
	MaxAge          int       `json:"max_age"`
	MinCoverage     float64   `json:"min_coverage"`
	MaxCoverage     float64   `json:"max_coverage"`
	DurationOptions string    `json:"duration_options"`
	BasePremiumRate float64   `json:"base_premium_rate"`
	PurchaseCount   int       `json:"purchase_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
