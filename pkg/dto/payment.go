package dto

import "github.com/google/uuid"

type CreateIntentRequest struct {
	ApplicationID uuid.UUID `json:"application_id"`
	AmountBDT     float64   `json:"amount_bdt"`
}

type ConfirmPaymentRequest struct {
	ApplicationID uuid.UUID `json:"application_id"`
	PolicyTitle   string    `json:"policy_title"`
	AmountBDT     float64   `json:"amount_bdt"`
	Frequency     string    `json:"frequency"`
	IntentID      string    `json:"intent_id"`
}

type ReviewRequest struct {
	Rating      int    `json:"rating"`
	Message     string `json:"message"`
	PolicyTitle string `json:"policy_title"`
}

type NewsletterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
