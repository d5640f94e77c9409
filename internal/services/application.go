package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rafiul/lifesure-api/internal/database"
	"github.com/rafiul/lifesure-api/internal/models"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrFeedbackRequired    = errors.New("rejection feedback is required")
	ErrNotAssignedAgent    = errors.New("application is not assigned to this agent")
)

const applicationColumns = `id, policy_id, policy_title, applicant_email, applicant_name, address, nid, phone,
	nominee_name, nominee_relation, health_conditions, status, rejection_feedback,
	agent_id, agent_name, agent_email, coverage_amount, duration_years, smoker,
	premium_frequency, premium_amount, created_at, updated_at`

type ApplicationService struct {
	db *database.DB
}

func NewApplicationService(db *database.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

// Submit stores a new application in Pending status. Health conditions
// arrive already normalized to a slice; a nil slice is stored empty.
func (s *ApplicationService) Submit(ctx context.Context, app *models.Application) (uuid.UUID, error) {
	if app.HealthConditions == nil {
		app.HealthConditions = []string{}
	}

	var id uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO applications (policy_id, policy_title, applicant_email, applicant_name,
			address, nid, phone, nominee_name, nominee_relation, health_conditions,
			coverage_amount, duration_years, smoker, premium_frequency, premium_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`, app.PolicyID, app.PolicyTitle, app.ApplicantEmail, app.ApplicantName,
		app.Address, app.NID, app.Phone, app.NomineeName, app.NomineeRelation,
		app.HealthConditions, app.CoverageAmount, app.DurationYears, app.Smoker,
		app.PremiumFrequency, app.PremiumAmount,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to submit application: %w", err)
	}
	return id, nil
}

func (s *ApplicationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+applicationColumns+` FROM applications WHERE id = $1
	`, id).Scan(applicationFields(&app)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// ListByApplicant returns a customer's applications, newest first.
func (s *ApplicationService) ListByApplicant(ctx context.Context, email string) ([]models.Application, error) {
	return s.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE applicant_email = $1 ORDER BY created_at DESC`, email)
}

// ListByAgent returns applications assigned to an agent.
func (s *ApplicationService) ListByAgent(ctx context.Context, agentEmail string) ([]models.Application, error) {
	return s.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE agent_email = $1 ORDER BY created_at DESC`, agentEmail)
}

// ListAll returns every application for the admin dashboard.
func (s *ApplicationService) ListAll(ctx context.Context) ([]models.Application, error) {
	return s.list(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY created_at DESC`)
}

// UpdateStatus moves an application between the canonical statuses.
// Rejection requires feedback so the applicant sees why.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id uuid.UUID, status string, rejectionFeedback *string) (*models.Application, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if status == models.StatusRejected && (rejectionFeedback == nil || *rejectionFeedback == "") {
		return nil, ErrFeedbackRequired
	}
	if status != models.StatusRejected {
		rejectionFeedback = nil
	}

	var app models.Application
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE applications SET status = $1, rejection_feedback = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+applicationColumns+`
	`, status, rejectionFeedback, id).Scan(applicationFields(&app)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// UpdateStatusAsAgent is the agent-scoped variant: the application must
// be assigned to the calling agent.
func (s *ApplicationService) UpdateStatusAsAgent(ctx context.Context, id uuid.UUID, agentEmail, status string, rejectionFeedback *string) (*models.Application, error) {
	app, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.AgentEmail == nil || *app.AgentEmail != agentEmail {
		return nil, ErrNotAssignedAgent
	}
	return s.UpdateStatus(ctx, id, status, rejectionFeedback)
}

func (s *ApplicationService) AssignAgent(ctx context.Context, id, agentID uuid.UUID, agentName, agentEmail string) (*models.Application, error) {
	var app models.Application
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE applications SET agent_id = $1, agent_name = $2, agent_email = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+applicationColumns+`
	`, agentID, agentName, agentEmail, id).Scan(applicationFields(&app)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationService) list(ctx context.Context, query string, args ...any) ([]models.Application, error) {
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		var a models.Application
		if err := rows.Scan(applicationFields(&a)...); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func applicationFields(a *models.Application) []any {
	return []any{
		&a.ID, &a.PolicyID, &a.PolicyTitle, &a.ApplicantEmail, &a.ApplicantName,
		&a.Address, &a.NID, &a.Phone, &a.NomineeName, &a.NomineeRelation,
		&a.HealthConditions, &a.Status, &a.RejectionFeedback,
		&a.AgentID, &a.AgentName, &a.AgentEmail, &a.CoverageAmount,
		&a.DurationYears, &a.Smoker, &a.PremiumFrequency, &a.PremiumAmount,
		&a.CreatedAt, &a.UpdatedAt,
	}
}
