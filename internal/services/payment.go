package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rafiul/lifesure-api/internal/database"
	"github.com/rafiul/lifesure-api/internal/models"
)

var ErrPaymentNotFound = errors.New("payment not found")

const paymentColumns = `id, application_id, customer_email, policy_title, amount_bdt, amount_usd, frequency, intent_id, status, created_at`

type PaymentService struct {
	db        *database.DB
	usdRate   float64
	gatewayID string
}

func NewPaymentService(db *database.DB, usdRate float64, gatewaySecretKey string) *PaymentService {
	return &PaymentService{db: db, usdRate: usdRate, gatewayID: gatewaySecretKey}
}

type PaymentIntent struct {
	IntentID     string  `json:"intent_id"`
	ClientSecret string  `json:"client_secret"`
	AmountUSD    float64 `json:"amount_usd"`
	AmountCents  int64   `json:"amount_cents"`
}

// CreateIntent prepares a gateway charge for an application's premium.
// The BDT amount is converted once, here, at the configured rate.
func (s *PaymentService) CreateIntent(ctx context.Context, applicationID uuid.UUID, amountBDT float64) (*PaymentIntent, error) {
	if amountBDT <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	var exists bool
	if err := s.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, applicationID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrApplicationNotFound
	}

	amountUSD := ConvertBDTToUSD(amountBDT, s.usdRate)
	intentID := "pi_" + uuid.New().String()

	return &PaymentIntent{
		IntentID:     intentID,
		ClientSecret: intentID + "_secret_" + uuid.New().String(),
		AmountUSD:    amountUSD,
		AmountCents:  USDCents(amountUSD),
	}, nil
}

// Confirm records a completed gateway charge. Idempotent on intent id:
// confirming the same intent twice returns the stored payment.
func (s *PaymentService) Confirm(ctx context.Context, applicationID uuid.UUID, customerEmail, policyTitle string, amountBDT float64, frequency, intentID string) (*models.Payment, error) {
	if intentID == "" {
		return nil, fmt.Errorf("intent_id is required")
	}

	var payment models.Payment
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+paymentColumns+` FROM payments WHERE intent_id = $1
	`, intentID).Scan(paymentFields(&payment)...)
	if err == nil {
		return &payment, nil
	}

	amountUSD := ConvertBDTToUSD(amountBDT, s.usdRate)
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO payments (application_id, customer_email, policy_title, amount_bdt, amount_usd, frequency, intent_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+paymentColumns+`
	`, applicationID, customerEmail, policyTitle, amountBDT, amountUSD, frequency, intentID, models.PaymentSucceeded).Scan(paymentFields(&payment)...)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return &payment, nil
}

func (s *PaymentService) List(ctx context.Context, customerEmail string) ([]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC`
	args := []any{}
	if customerEmail != "" {
		query = `SELECT ` + paymentColumns + ` FROM payments WHERE customer_email = $1 ORDER BY created_at DESC`
		args = append(args, customerEmail)
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(paymentFields(&p)...); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (s *PaymentService) Summary(ctx context.Context) (*models.PaymentSummary, error) {
	var summary models.PaymentSummary
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount_bdt), 0), COALESCE(SUM(amount_usd), 0)
		FROM payments WHERE status = $1
	`, models.PaymentSucceeded).Scan(&summary.TotalPayments, &summary.TotalBDT, &summary.TotalUSD)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func paymentFields(p *models.Payment) []any {
	return []any{
		&p.ID, &p.ApplicationID, &p.CustomerEmail, &p.PolicyTitle,
		&p.AmountBDT, &p.AmountUSD, &p.Frequency, &p.IntentID, &p.Status, &p.CreatedAt,
	}
}
