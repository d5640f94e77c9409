package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/rafiul/lifesure-api/internal/services"
	"github.com/rafiul/lifesure-api/pkg/dto"
)

type PolicyHandler struct {
	policyService PolicyServiceInterface
}

func NewPolicyHandler(policyService PolicyServiceInterface) *PolicyHandler {
	return &PolicyHandler{policyService: policyService}
}

// List handles GET /policies?page&limit&category&search&sort and
// returns the {total, page, limit, data} envelope.
func (h *PolicyHandler) List(c *drift.Context) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.policyService.List(context.Background(), services.PolicyFilter{
		Page:     page,
		Limit:    limit,
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Sort:     c.QueryParam("sort"),
	})
	if err != nil {
		c.InternalServerError("failed to list policies")
		return
	}

	_ = c.JSON(200, result)
}

func (h *PolicyHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid policy id")
		return
	}

	policy, err := h.policyService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("policy not found")
		return
	}

	_ = c.JSON(200, policy)
}

func (h *PolicyHandler) Create(c *drift.Context) {
	var req dto.PolicyRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" || req.Category == "" {
		c.BadRequest("title and category are required")
		return
	}

	policy, err := h.policyService.Create(context.Background(), policyFromRequest(&req))
	if err != nil {
		c.InternalServerError("failed to create policy")
		return
	}

	_ = c.JSON(201, policy)
}

func (h *PolicyHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid policy id")
		return
	}

	var req dto.PolicyRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" || req.Category == "" {
		c.BadRequest("title and category are required")
		return
	}

	policy, err := h.policyService.Update(context.Background(), id, policyFromRequest(&req))
	if err != nil {
		if errors.Is(err, services.ErrPolicyNotFound) {
			c.NotFound("policy not found")
			return
		}
		c.InternalServerError("failed to update policy")
		return
	}

	_ = c.JSON(200, policy)
}

func (h *PolicyHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid policy id")
		return
	}

	if err := h.policyService.Delete(context.Background(), id); err != nil {
		if errors.Is(err, services.ErrPolicyNotFound) {
			c.NotFound("policy not found")
			return
		}
		c.InternalServerError("failed to delete policy")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "policy deleted"})
}

// Quote handles POST /quote with the authoritative premium formula.
func (h *PolicyHandler) Quote(c *drift.Context) {
	var req dto.QuoteRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.CoverageAmount <= 0 || req.DurationYears < 1 {
		c.BadRequest("coverage amount and duration are required")
		return
	}

	estimate := services.EstimatePremium(services.QuoteInput{
		CoverageAmount: req.CoverageAmount,
		DurationYears:  req.DurationYears,
		Smoker:         req.Smoker,
	})

	_ = c.JSON(200, estimate)
}

func policyFromRequest(req *dto.PolicyRequest) *models.Policy {
	return &models.Policy{
		Title:           req.Title,
		Category:        req.Category,
		Description:     req.Description,
		ImageURL:        req.Image,
		MinAge:          req.MinAge,
		MaxAge:          req.MaxAge,
		MinCoverage:     req.MinCoverage,
		MaxCoverage:     req.MaxCoverage,
		DurationOptions: req.DurationOptions,
		BasePremiumRate: req.BasePremiumRate,
	}
}
