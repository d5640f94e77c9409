package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rafiul/lifesure-api/internal/database"
	"github.com/rafiul/lifesure-api/internal/models"
)

var (
	ErrClaimNotFound        = errors.New("claim not found")
	ErrClaimExists          = errors.New("a claim already exists for this application")
	ErrApplicationUnclaimed = errors.New("only approved applications can be claimed")
)

const claimColumns = `id, application_id, policy_title, customer_email, reason, document_url, status, created_at, updated_at`

type ClaimService struct {
	db *database.DB
}

func NewClaimService(db *database.DB) *ClaimService {
	return &ClaimService{db: db}
}

// Create files one claim per approved application.
func (s *ClaimService) Create(ctx context.Context, applicationID uuid.UUID, customerEmail, reason string, documentURL *string) (*models.Claim, error) {
	var status, policyTitle string
	err := s.db.Pool.QueryRow(ctx, `
		SELECT status, policy_title FROM applications WHERE id = $1 AND applicant_email = $2
	`, applicationID, customerEmail).Scan(&status, &policyTitle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	if status != models.StatusApproved {
		return nil, ErrApplicationUnclaimed
	}

	var claim models.Claim
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO claims (application_id, policy_title, customer_email, reason, document_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+claimColumns+`
	`, applicationID, policyTitle, customerEmail, reason, documentURL).Scan(claimFields(&claim)...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrClaimExists
		}
		return nil, err
	}
	return &claim, nil
}

func (s *ClaimService) List(ctx context.Context, customerEmail string) ([]models.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims ORDER BY created_at DESC`
	args := []any{}
	if customerEmail != "" {
		query = `SELECT ` + claimColumns + ` FROM claims WHERE customer_email = $1 ORDER BY created_at DESC`
		args = append(args, customerEmail)
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	claims := []models.Claim{}
	for rows.Next() {
		var c models.Claim
		if err := rows.Scan(claimFields(&c)...); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

func (s *ClaimService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Claim, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var claim models.Claim
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE claims SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+claimColumns+`
	`, status, id).Scan(claimFields(&claim)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}
	return &claim, nil
}

func claimFields(c *models.Claim) []any {
	return []any{
		&c.ID, &c.ApplicationID, &c.PolicyTitle, &c.CustomerEmail,
		&c.Reason, &c.DocumentURL, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	}
}
