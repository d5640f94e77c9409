package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rafiul/lifesure-api/internal/middleware"
	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/rafiul/lifesure-api/internal/services"
	"github.com/rafiul/lifesure-api/pkg/dto"
)

type ApplicationHandler struct {
	applicationService ApplicationServiceInterface
	policyService      PolicyServiceInterface
	userService        UserServiceInterface
	emailService       EmailServiceInterface
}

func NewApplicationHandler(
	applicationService ApplicationServiceInterface,
	policyService PolicyServiceInterface,
	userService UserServiceInterface,
	emailService EmailServiceInterface,
) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
		policyService:      policyService,
		userService:        userService,
		emailService:       emailService,
	}
}

// Submit handles POST /applications. The applicant is the signed-in
// user; the premium is computed server-side from the policy's rate.
func (h *ApplicationHandler) Submit(c *drift.Context) {
	var req dto.SubmitApplicationRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.ApplicantName == "" || req.NID == "" || req.NomineeName == "" {
		c.BadRequest("applicant name, nid and nominee are required")
		return
	}
	if req.CoverageAmount <= 0 || req.DurationYears < 1 {
		c.BadRequest("coverage amount and duration are required")
		return
	}

	ctx := context.Background()

	policy, err := h.policyService.GetByID(ctx, req.PolicyID)
	if err != nil {
		c.NotFound("policy not found")
		return
	}

	estimate := services.EstimatePremium(services.QuoteInput{
		CoverageAmount: req.CoverageAmount,
		DurationYears:  req.DurationYears,
		Smoker:         req.Smoker,
		BaseRate:       policy.BasePremiumRate,
	})

	frequency := req.PremiumFrequency
	if frequency == "" {
		frequency = models.FrequencyMonthly
	}
	premium := estimate.MonthlyPremium
	if frequency == models.FrequencyAnnual {
		premium = estimate.AnnualPremium
	}

	app := &models.Application{
		PolicyID:         policy.ID,
		PolicyTitle:      policy.Title,
		ApplicantEmail:   middleware.GetUserEmail(c),
		ApplicantName:    req.ApplicantName,
		Address:          req.Address,
		NID:              req.NID,
		Phone:            req.Phone,
		NomineeName:      req.NomineeName,
		NomineeRelation:  req.NomineeRelation,
		HealthConditions: []string(req.HealthConditions),
		CoverageAmount:   req.CoverageAmount,
		DurationYears:    req.DurationYears,
		Smoker:           req.Smoker,
		PremiumFrequency: frequency,
		PremiumAmount:    premium,
	}

	id, err := h.applicationService.Submit(ctx, app)
	if err != nil {
		c.InternalServerError("failed to submit application")
		return
	}

	_ = c.JSON(201, dto.InsertedIDResponse{InsertedID: id})
}

// List handles GET /applications?email=. Customers see their own;
// admins see everything.
func (h *ApplicationHandler) List(c *drift.Context) {
	email := c.QueryParam("email")
	callerEmail := middleware.GetUserEmail(c)
	callerRole := middleware.GetUserRole(c)

	ctx := context.Background()

	if callerRole == models.RoleAdmin && email == "" {
		apps, err := h.applicationService.ListAll(ctx)
		if err != nil {
			c.InternalServerError("failed to list applications")
			return
		}
		_ = c.JSON(200, apps)
		return
	}

	if email == "" {
		email = callerEmail
	}
	if email != callerEmail && callerRole != models.RoleAdmin {
		c.Forbidden("cannot view another user's applications")
		return
	}

	apps, err := h.applicationService.ListByApplicant(ctx, email)
	if err != nil {
		c.InternalServerError("failed to list applications")
		return
	}
	_ = c.JSON(200, apps)
}

// UpdateStatus handles PATCH /applications/:id/status (admin). An
// approval bumps the policy's purchase count; both outcomes notify the
// applicant by email when SMTP is configured.
func (h *ApplicationHandler) UpdateStatus(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid application id")
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx := context.Background()

	app, err := h.applicationService.UpdateStatus(ctx, id, req.Status, req.RejectionFeedback)
	if err != nil {
		h.respondStatusError(c, err)
		return
	}

	if req.Status == models.StatusApproved {
		_ = h.policyService.IncrementPurchaseCount(ctx, app.PolicyID)
	}

	_ = h.emailService.SendApplicationStatus(app.ApplicantEmail, app.ApplicantName, app.PolicyTitle, app.Status, app.RejectionFeedback)

	_ = c.JSON(200, app)
}

// AssignAgent handles PATCH /applications/:id/assign-agent (admin).
// The target must actually hold the agent role.
func (h *ApplicationHandler) AssignAgent(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid application id")
		return
	}

	var req dto.AssignAgentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx := context.Background()

	agent, err := h.userService.GetByID(ctx, req.AgentID)
	if err != nil || agent.Role != models.RoleAgent {
		c.BadRequest("assignee is not an agent")
		return
	}

	app, err := h.applicationService.AssignAgent(ctx, id, agent.ID, req.AgentName, req.AgentEmail)
	if err != nil {
		h.respondStatusError(c, err)
		return
	}

	_ = c.JSON(200, app)
}

// ListForAgent handles GET /agent/applications?email=, scoped to the
// calling agent's own assignments.
func (h *ApplicationHandler) ListForAgent(c *drift.Context) {
	agentEmail := middleware.GetUserEmail(c)
	if requested := c.QueryParam("email"); requested != "" && requested != agentEmail {
		c.Forbidden("agents can only view their own assignments")
		return
	}

	apps, err := h.applicationService.ListByAgent(context.Background(), agentEmail)
	if err != nil {
		c.InternalServerError("failed to list applications")
		return
	}
	_ = c.JSON(200, apps)
}

// UpdateStatusAsAgent handles PATCH /agent/applications/:id/status.
func (h *ApplicationHandler) UpdateStatusAsAgent(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid application id")
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	ctx := context.Background()

	app, err := h.applicationService.UpdateStatusAsAgent(ctx, id, middleware.GetUserEmail(c), req.Status, req.RejectionFeedback)
	if err != nil {
		if errors.Is(err, services.ErrNotAssignedAgent) {
			c.Forbidden("application is not assigned to you")
			return
		}
		h.respondStatusError(c, err)
		return
	}

	if req.Status == models.StatusApproved {
		_ = h.policyService.IncrementPurchaseCount(ctx, app.PolicyID)
	}

	_ = h.emailService.SendApplicationStatus(app.ApplicantEmail, app.ApplicantName, app.PolicyTitle, app.Status, app.RejectionFeedback)

	_ = c.JSON(200, app)
}

func (h *ApplicationHandler) respondStatusError(c *drift.Context, err error) {
	switch {
	case errors.Is(err, services.ErrApplicationNotFound):
		c.NotFound("application not found")
	case errors.Is(err, services.ErrInvalidStatus):
		c.BadRequest("status must be Pending, Approved or Rejected")
	case errors.Is(err, services.ErrFeedbackRequired):
		c.BadRequest("rejection feedback is required")
	default:
		c.InternalServerError("failed to update application")
	}
}
