package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rafiul/lifesure-api/internal/middleware"
	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/rafiul/lifesure-api/internal/services"
)

// Claim uploads are capped; the document itself lives on the image
// host, only its URL is stored.
const maxClaimFormSize = 10 << 20

type ClaimHandler struct {
	claimService ClaimServiceInterface
}

func NewClaimHandler(claimService ClaimServiceInterface) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// Create handles POST /claims as a multipart form: application_id,
// reason, and an optional document URL or uploaded file reference.
func (h *ClaimHandler) Create(c *drift.Context) {
	if err := c.Request.ParseMultipartForm(maxClaimFormSize); err != nil {
		c.BadRequest("invalid multipart form")
		return
	}

	applicationID, err := uuid.Parse(c.Request.FormValue("application_id"))
	if err != nil {
		c.BadRequest("invalid application id")
		return
	}

	reason := c.Request.FormValue("reason")
	if reason == "" {
		c.BadRequest("reason is required")
		return
	}

	var documentURL *string
	if v := c.Request.FormValue("document_url"); v != "" {
		documentURL = &v
	} else if _, header, err := c.Request.FormFile("document"); err == nil {
		// The upload host sits in front of this API; persist the name
		// the client stored the file under.
		name := header.Filename
		documentURL = &name
	}

	claim, err := h.claimService.Create(context.Background(), applicationID, middleware.GetUserEmail(c), reason, documentURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			c.NotFound("application not found")
		case errors.Is(err, services.ErrApplicationUnclaimed):
			c.BadRequest("only approved applications can be claimed")
		case errors.Is(err, services.ErrClaimExists):
			_ = c.JSON(409, map[string]string{
				"code":    "CLAIM_EXISTS",
				"message": "a claim already exists for this application",
			})
		default:
			c.InternalServerError("failed to create claim")
		}
		return
	}

	_ = c.JSON(201, claim)
}

// List handles GET /claims?email=. Customers are scoped to their own
// claims; agents and admins see everything.
func (h *ClaimHandler) List(c *drift.Context) {
	email := c.QueryParam("email")
	callerEmail := middleware.GetUserEmail(c)
	callerRole := middleware.GetUserRole(c)

	if callerRole == models.RoleCustomer {
		email = callerEmail
	}

	claims, err := h.claimService.List(context.Background(), email)
	if err != nil {
		c.InternalServerError("failed to list claims")
		return
	}
	_ = c.JSON(200, claims)
}

func (h *ClaimHandler) UpdateStatus(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid claim id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	claim, err := h.claimService.UpdateStatus(context.Background(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClaimNotFound):
			c.NotFound("claim not found")
		case errors.Is(err, services.ErrInvalidStatus):
			c.BadRequest("status must be Pending, Approved or Rejected")
		default:
			c.InternalServerError("failed to update claim")
		}
		return
	}
	_ = c.JSON(200, claim)
}
