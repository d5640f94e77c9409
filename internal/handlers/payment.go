package handlers

import (
	"context"
	"errors"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rafiul/lifesure-api/internal/middleware"
	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/rafiul/lifesure-api/internal/services"
	"github.com/rafiul/lifesure-api/pkg/dto"
)

type PaymentHandler struct {
	paymentService PaymentServiceInterface
}

func NewPaymentHandler(paymentService PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateIntent handles POST /payments/create-intent. The amount is
// taken in BDT and converted server-side before the intent is minted.
func (h *PaymentHandler) CreateIntent(c *drift.Context) {
	var req dto.CreateIntentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.AmountBDT <= 0 {
		c.BadRequest("amount must be positive")
		return
	}

	intent, err := h.paymentService.CreateIntent(context.Background(), req.ApplicationID, req.AmountBDT)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			c.NotFound("application not found")
			return
		}
		c.InternalServerError("failed to create payment intent")
		return
	}
	_ = c.JSON(200, intent)
}

// Confirm handles POST /payments/confirm. Confirming the same intent
// twice returns the already recorded payment.
func (h *PaymentHandler) Confirm(c *drift.Context) {
	var req dto.ConfirmPaymentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.IntentID == "" {
		c.BadRequest("intent id is required")
		return
	}

	payment, err := h.paymentService.Confirm(
		context.Background(),
		req.ApplicationID,
		middleware.GetUserEmail(c),
		req.PolicyTitle,
		req.AmountBDT,
		req.Frequency,
		req.IntentID,
	)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			c.NotFound("application not found")
			return
		}
		c.InternalServerError("failed to confirm payment")
		return
	}
	_ = c.JSON(200, payment)
}

// List handles GET /payments?email=. Customers only see their own
// payment history regardless of the query parameter.
func (h *PaymentHandler) List(c *drift.Context) {
	email := c.QueryParam("email")
	if middleware.GetUserRole(c) == models.RoleCustomer {
		email = middleware.GetUserEmail(c)
	}

	payments, err := h.paymentService.List(context.Background(), email)
	if err != nil {
		c.InternalServerError("failed to list payments")
		return
	}
	_ = c.JSON(200, payments)
}

func (h *PaymentHandler) Summary(c *drift.Context) {
	summary, err := h.paymentService.Summary(context.Background())
	if err != nil {
		c.InternalServerError("failed to load payment summary")
		return
	}
	_ = c.JSON(200, summary)
}
