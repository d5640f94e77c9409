package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rafiul/lifesure-api/internal/database"
	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var applicationCols = []string{
	"id", "policy_id", "policy_title", "applicant_email", "applicant_name",
	"address", "nid", "phone", "nominee_name", "nominee_relation",
	"health_conditions", "status", "rejection_feedback",
	"agent_id", "agent_name", "agent_email", "coverage_amount",
	"duration_years", "smoker", "premium_frequency", "premium_amount",
	"created_at", "updated_at",
}

func setupApplicationService(t *testing.T) (*ApplicationService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewApplicationService(db), mock
}

func applicationRow(id uuid.UUID, status string, agentEmail *string) *pgxmock.Rows {
	now := time.Now()
	var agentID *uuid.UUID
	var agentName *string
	if agentEmail != nil {
		aid := uuid.New()
		agentID = &aid
		name := "Agent Smith"
		agentName = &name
	}
	return pgxmock.NewRows(applicationCols).
		AddRow(id, uuid.New(), "Term Life", "customer@example.com", "Customer",
			"123 Street", "1234567890", "01700000000", "Nominee", "spouse",
			[]string{}, status, (*string)(nil),
			agentID, agentName, agentEmail, 1000000.0,
			10, false, models.FrequencyMonthly, 333.33,
			now, now)
}

func TestApplicationService_Submit(t *testing.T) {
	svc, mock := setupApplicationService(t)
	appID := uuid.New()

	app := &models.Application{
		PolicyID:         uuid.New(),
		PolicyTitle:      "Term Life",
		ApplicantEmail:   "customer@example.com",
		ApplicantName:    "Customer",
		HealthConditions: []string{"diabetes"},
		CoverageAmount:   1000000,
		DurationYears:    10,
		PremiumFrequency: models.FrequencyMonthly,
		PremiumAmount:    333.33,
	}

	mock.ExpectQuery(`INSERT INTO applications`).
		WithArgs(app.PolicyID, app.PolicyTitle, app.ApplicantEmail, app.ApplicantName,
			"", "", "", "", "", []string{"diabetes"},
			app.CoverageAmount, app.DurationYears, false, app.PremiumFrequency, app.PremiumAmount).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(appID))

	id, err := svc.Submit(context.Background(), app)

	require.NoError(t, err)
	assert.Equal(t, appID, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationService_Submit_NilHealthConditions(t *testing.T) {
	svc, mock := setupApplicationService(t)
	appID := uuid.New()

	app := &models.Application{
		PolicyID:         uuid.New(),
		PolicyTitle:      "Term Life",
		ApplicantEmail:   "customer@example.com",
		ApplicantName:    "Customer",
		PremiumFrequency: models.FrequencyMonthly,
	}

	// A nil slice is stored as an empty array, never NULL.
	mock.ExpectQuery(`INSERT INTO applications`).
		WithArgs(app.PolicyID, app.PolicyTitle, app.ApplicantEmail, app.ApplicantName,
			"", "", "", "", "", []string{},
			0.0, 0, false, app.PremiumFrequency, 0.0).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(appID))

	_, err := svc.Submit(context.Background(), app)

	require.NoError(t, err)
	assert.NotNil(t, app.HealthConditions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationService_UpdateStatus_Approve(t *testing.T) {
	svc, mock := setupApplicationService(t)
	appID := uuid.New()

	mock.ExpectQuery(`UPDATE applications SET status`).
		WithArgs(models.StatusApproved, (*string)(nil), appID).
		WillReturnRows(applicationRow(appID, models.StatusApproved, nil))

	app, err := svc.UpdateStatus(context.Background(), appID, models.StatusApproved, nil)

	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationService_UpdateStatus_InvalidStatus(t *testing.T) {
	svc, _ := setupApplicationService(t)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), "Cancelled", nil)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestApplicationService_UpdateStatus_RejectRequiresFeedback(t *testing.T) {
	svc, _ := setupApplicationService(t)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), models.StatusRejected, nil)
	assert.ErrorIs(t, err, ErrFeedbackRequired)

	empty := ""
	_, err = svc.UpdateStatus(context.Background(), uuid.New(), models.StatusRejected, &empty)
	assert.ErrorIs(t, err, ErrFeedbackRequired)
}

func TestApplicationService_UpdateStatus_RejectWithFeedback(t *testing.T) {
	svc, mock := setupApplicationService(t)
	appID := uuid.New()
	feedback := "coverage exceeds the policy maximum"

	mock.ExpectQuery(`UPDATE applications SET status`).
		WithArgs(models.StatusRejected, &feedback, appID).
		WillReturnRows(applicationRow(appID, models.StatusRejected, nil))

	app, err := svc.UpdateStatus(context.Background(), appID, models.StatusRejected, &feedback)

	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationService_UpdateStatus_FeedbackDroppedOnApprove(t *testing.T) {
	svc, mock := setupApplicationService(t)
	appID := uuid.New()
	feedback := "stale feedback"

	// Approving always clears feedback even if the caller sent some.
	mock.ExpectQuery(`UPDATE applications SET status`).
		WithArgs(models.StatusApproved, (*string)(nil), appID).
		WillReturnRows(applicationRow(appID, models.StatusApproved, nil))

	_, err := svc.UpdateStatus(context.Background(), appID, models.StatusApproved, &feedback)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationService_UpdateStatus_NotFound(t *testing.T) {
	svc, mock := setupApplicationService(t)
	appID := uuid.New()

	mock.ExpectQuery(`UPDATE applications SET status`).
		WithArgs(models.StatusApproved, (*string)(nil), appID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.UpdateStatus(context.Background(), appID, models.StatusApproved, nil)
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestApplicationService_UpdateStatusAsAgent_Assigned(t *testing.T) {
	svc, mock := setupApplicationService(t)
	appID := uuid.New()
	agentEmail := "agent@example.com"

	mock.ExpectQuery(`FROM applications WHERE id`).
		WithArgs(appID).
		WillReturnRows(applicationRow(appID, models.StatusPending, &agentEmail))

	mock.ExpectQuery(`UPDATE applications SET status`).
		WithArgs(models.StatusApproved, (*string)(nil), appID).
		WillReturnRows(applicationRow(appID, models.StatusApproved, &agentEmail))

	app, err := svc.UpdateStatusAsAgent(context.Background(), appID, agentEmail, models.StatusApproved, nil)

	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationService_UpdateStatusAsAgent_NotAssigned(t *testing.T) {
	svc, mock := setupApplicationService(t)
	appID := uuid.New()
	otherAgent := "other@example.com"

	mock.ExpectQuery(`FROM applications WHERE id`).
		WithArgs(appID).
		WillReturnRows(applicationRow(appID, models.StatusPending, &otherAgent))

	_, err := svc.UpdateStatusAsAgent(context.Background(), appID, "agent@example.com", models.StatusApproved, nil)
	assert.ErrorIs(t, err, ErrNotAssignedAgent)
}

func TestApplicationService_UpdateStatusAsAgent_Unassigned(t *testing.T) {
	svc, mock := setupApplicationService(t)
	appID := uuid.New()

	mock.ExpectQuery(`FROM applications WHERE id`).
		WithArgs(appID).
		WillReturnRows(applicationRow(appID, models.StatusPending, nil))

	_, err := svc.UpdateStatusAsAgent(context.Background(), appID, "agent@example.com", models.StatusApproved, nil)
	assert.ErrorIs(t, err, ErrNotAssignedAgent)
}

func TestApplicationService_AssignAgent(t *testing.T) {
	svc, mock := setupApplicationService(t)
	appID := uuid.New()
	agentID := uuid.New()
	agentEmail := "agent@example.com"

	mock.ExpectQuery(`UPDATE applications SET agent_id`).
		WithArgs(agentID, "Agent Smith", agentEmail, appID).
		WillReturnRows(applicationRow(appID, models.StatusPending, &agentEmail))

	app, err := svc.AssignAgent(context.Background(), appID, agentID, "Agent Smith", agentEmail)

	require.NoError(t, err)
	require.NotNil(t, app.AgentEmail)
	assert.Equal(t, agentEmail, *app.AgentEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationService_ListByApplicant(t *testing.T) {
	svc, mock := setupApplicationService(t)

	mock.ExpectQuery(`FROM applications WHERE applicant_email`).
		WithArgs("customer@example.com").
		WillReturnRows(applicationRow(uuid.New(), models.StatusPending, nil))

	apps, err := svc.ListByApplicant(context.Background(), "customer@example.com")

	require.NoError(t, err)
	assert.Len(t, apps, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationService_ListByAgent(t *testing.T) {
	svc, mock := setupApplicationService(t)
	agentEmail := "agent@example.com"

	mock.ExpectQuery(`FROM applications WHERE agent_email`).
		WithArgs(agentEmail).
		WillReturnRows(applicationRow(uuid.New(), models.StatusPending, &agentEmail))

	apps, err := svc.ListByAgent(context.Background(), agentEmail)

	require.NoError(t, err)
	assert.Len(t, apps, 1)
}
