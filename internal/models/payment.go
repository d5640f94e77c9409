package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses reported by the gateway flow.
const (
	PaymentPending   = "Pending"
	PaymentSucceeded = "Succeeded"
)

type Payment struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	CustomerEmail string    `json:"customer_email"`
	PolicyTitle   string    `json:"policy_title"`
	AmountBDT     float64   `json:"amount_bdt"`
	AmountUSD     float64   `json:"amount_usd"`
	Frequency     string    `json:"frequency"`
	IntentID      string    `json:"intent_id"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type PaymentSummary struct {
	TotalPayments int     `json:"total_payments"`
	TotalBDT      float64 `json:"total_bdt"`
	TotalUSD      float64 `json:"total_usd"`
}
