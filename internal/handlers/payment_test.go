package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/rafiul/lifesure-api/internal/middleware"
	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/rafiul/lifesure-api/internal/services"
	"github.com/rafiul/lifesure-api/pkg/dto"
	"github.com/rafiul/lifesure-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newPaymentTestApp(handler *PaymentHandler) http.Handler {
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(testutil.TestJWTService()))
	app.Post("/payments/create-intent", handler.CreateIntent)
	app.Post("/payments/confirm", handler.Confirm)
	app.Get("/payments", handler.List)
	app.Get("/payments/summary", handler.Summary)
	return app
}

func TestPaymentHandler_CreateIntent_Success(t *testing.T) {
	mockPaymentService := new(testutil.MockPaymentService)
	handler := NewPaymentHandler(mockPaymentService)
	app := newPaymentTestApp(handler)

	applicationID := uuid.New()
	intent := &services.PaymentIntent{
		IntentID:     "pi_abc123",
		ClientSecret: "pi_abc123_secret",
		AmountUSD:    8.7,
		AmountCents:  870,
	}
	mockPaymentService.On("CreateIntent", mock.Anything, applicationID, 1000.0).Return(intent, nil)

	rec := authedRequest(t, app, http.MethodPost, "/payments/create-intent",
		dto.CreateIntentRequest{ApplicationID: applicationID, AmountBDT: 1000},
		uuid.New(), "rahim@example.com", models.RoleCustomer)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response services.PaymentIntent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "pi_abc123", response.IntentID)
	assert.InDelta(t, 8.7, response.AmountUSD, 0.001)
}

func TestPaymentHandler_CreateIntent_NonPositiveAmount(t *testing.T) {
	mockPaymentService := new(testutil.MockPaymentService)
	handler := NewPaymentHandler(mockPaymentService)
	app := newPaymentTestApp(handler)

	rec := authedRequest(t, app, http.MethodPost, "/payments/create-intent",
		dto.CreateIntentRequest{ApplicationID: uuid.New(), AmountBDT: 0},
		uuid.New(), "rahim@example.com", models.RoleCustomer)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockPaymentService.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentHandler_CreateIntent_UnknownApplication(t *testing.T) {
	mockPaymentService := new(testutil.MockPaymentService)
	handler := NewPaymentHandler(mockPaymentService)
	app := newPaymentTestApp(handler)

	applicationID := uuid.New()
	mockPaymentService.On("CreateIntent", mock.Anything, applicationID, 1000.0).
		Return(nil, services.ErrApplicationNotFound)

	rec := authedRequest(t, app, http.MethodPost, "/payments/create-intent",
		dto.CreateIntentRequest{ApplicationID: applicationID, AmountBDT: 1000},
		uuid.New(), "rahim@example.com", models.RoleCustomer)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentHandler_Confirm_Success(t *testing.T) {
	mockPaymentService := new(testutil.MockPaymentService)
	handler := NewPaymentHandler(mockPaymentService)
	app := newPaymentTestApp(handler)

	applicationID := uuid.New()
	payment := &models.Payment{
		ID:            uuid.New(),
		ApplicationID: applicationID,
		CustomerEmail: "rahim@example.com",
		AmountBDT:     1000,
		AmountUSD:     8.7,
		IntentID:      "pi_abc123",
		Status:        models.PaymentSucceeded,
	}

	mockPaymentService.On("Confirm", mock.Anything, applicationID, "rahim@example.com", "Term Life Shield", 1000.0, models.FrequencyMonthly, "pi_abc123").
		Return(payment, nil)

	rec := authedRequest(t, app, http.MethodPost, "/payments/confirm",
		dto.ConfirmPaymentRequest{
			ApplicationID: applicationID,
			PolicyTitle:   "Term Life Shield",
			AmountBDT:     1000,
			Frequency:     models.FrequencyMonthly,
			IntentID:      "pi_abc123",
		},
		uuid.New(), "rahim@example.com", models.RoleCustomer)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response models.Payment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, models.PaymentSucceeded, response.Status)

	mockPaymentService.AssertExpectations(t)
}

func TestPaymentHandler_Confirm_MissingIntentID(t *testing.T) {
	mockPaymentService := new(testutil.MockPaymentService)
	handler := NewPaymentHandler(mockPaymentService)
	app := newPaymentTestApp(handler)

	rec := authedRequest(t, app, http.MethodPost, "/payments/confirm",
		dto.ConfirmPaymentRequest{ApplicationID: uuid.New(), AmountBDT: 1000},
		uuid.New(), "rahim@example.com", models.RoleCustomer)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockPaymentService.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentHandler_List_CustomerScopedToOwnEmail(t *testing.T) {
	mockPaymentService := new(testutil.MockPaymentService)
	handler := NewPaymentHandler(mockPaymentService)
	app := newPaymentTestApp(handler)

	payments := []models.Payment{{ID: uuid.New(), CustomerEmail: "rahim@example.com"}}
	mockPaymentService.On("List", mock.Anything, "rahim@example.com").Return(payments, nil)

	rec := authedRequest(t, app, http.MethodGet, "/payments?email=other@example.com", nil,
		uuid.New(), "rahim@example.com", models.RoleCustomer)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockPaymentService.AssertExpectations(t)
}

func TestPaymentHandler_Summary(t *testing.T) {
	mockPaymentService := new(testutil.MockPaymentService)
	handler := NewPaymentHandler(mockPaymentService)
	app := newPaymentTestApp(handler)

	summary := &models.PaymentSummary{TotalPayments: 3, TotalBDT: 3000, TotalUSD: 26.1}
	mockPaymentService.On("Summary", mock.Anything).Return(summary, nil)

	rec := authedRequest(t, app, http.MethodGet, "/payments/summary", nil,
		uuid.New(), "admin@example.com", models.RoleAdmin)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response models.PaymentSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 3, response.TotalPayments)
	assert.InDelta(t, 26.1, response.TotalUSD, 0.001)
}
