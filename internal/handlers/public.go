package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rafiul/lifesure-api/internal/middleware"
	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/rafiul/lifesure-api/internal/services"
	"github.com/rafiul/lifesure-api/pkg/dto"
)

// PublicHandler serves the unauthenticated surface: reviews, featured
// agents, and newsletter subscription.
type PublicHandler struct {
	reviewService     ReviewServiceInterface
	newsletterService NewsletterServiceInterface
	userService       UserServiceInterface
}

func NewPublicHandler(reviewService ReviewServiceInterface, newsletterService NewsletterServiceInterface, userService UserServiceInterface) *PublicHandler {
	return &PublicHandler{
		reviewService:     reviewService,
		newsletterService: newsletterService,
		userService:       userService,
	}
}

func (h *PublicHandler) ListReviews(c *drift.Context) {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			c.BadRequest("invalid limit")
			return
		}
		limit = n
	}

	reviews, err := h.reviewService.Latest(context.Background(), limit)
	if err != nil {
		c.InternalServerError("failed to list reviews")
		return
	}
	_ = c.JSON(200, reviews)
}

// CreateReview handles POST /reviews. The reviewer identity comes from
// the session, not the body.
func (h *PublicHandler) CreateReview(c *drift.Context) {
	var req dto.ReviewRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.BadRequest("message is required")
		return
	}

	email := middleware.GetUserEmail(c)
	user, err := h.userService.GetByEmail(context.Background(), email)
	if err != nil {
		c.InternalServerError("failed to load reviewer profile")
		return
	}

	review, err := h.reviewService.Create(context.Background(), user.Name, user.Email, user.PhotoURL, req.Rating, req.Message, req.PolicyTitle)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRating) {
			c.BadRequest("rating must be between 1 and 5")
			return
		}
		c.InternalServerError("failed to create review")
		return
	}
	_ = c.JSON(201, review)
}

// ListAgents handles GET /agents, the public roster shown on the
// landing page.
func (h *PublicHandler) ListAgents(c *drift.Context) {
	agents, err := h.userService.ListByRole(context.Background(), models.RoleAgent)
	if err != nil {
		c.InternalServerError("failed to list agents")
		return
	}
	_ = c.JSON(200, agents)
}

func (h *PublicHandler) SubscribeNewsletter(c *drift.Context) {
	var req dto.NewsletterRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Email == "" {
		c.BadRequest("email is required")
		return
	}

	sub, err := h.newsletterService.Subscribe(context.Background(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrAlreadySubscribed) {
			_ = c.JSON(409, map[string]string{
				"code":    "ALREADY_SUBSCRIBED",
				"message": "this email is already subscribed",
			})
			return
		}
		c.InternalServerError("failed to subscribe")
		return
	}
	_ = c.JSON(201, sub)
}
