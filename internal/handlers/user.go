package handlers

import (
	"context"
	"errors"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rafiul/lifesure-api/internal/middleware"
	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/rafiul/lifesure-api/internal/oauth"
	"github.com/rafiul/lifesure-api/internal/services"
	"github.com/rafiul/lifesure-api/pkg/dto"
)

type UserHandler struct {
	userService UserServiceInterface
}

func NewUserHandler(userService UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetByEmail serves the profile page. The literal segment "me" stands
// for the signed-in user, so clients can rebuild a session from a
// stored credential without knowing the email yet. Users read their
// own record; agents and admins may look up anyone.
func (h *UserHandler) GetByEmail(c *drift.Context) {
	email := c.Param("email")
	if email == "" {
		c.BadRequest("email is required")
		return
	}
	if email == "me" {
		email = middleware.GetUserEmail(c)
	}

	callerEmail := middleware.GetUserEmail(c)
	callerRole := middleware.GetUserRole(c)
	if callerEmail != email && callerRole == models.RoleCustomer {
		c.Forbidden("cannot view another user's profile")
		return
	}

	user, err := h.userService.GetByEmail(context.Background(), email)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, dto.NewUserResponse(user))
}

// UpdateProfile handles PATCH /users/:email. Profile fields only; the
// role endpoint is separate and admin-gated.
func (h *UserHandler) UpdateProfile(c *drift.Context) {
	email := c.Param("email")
	if email == "" {
		c.BadRequest("email is required")
		return
	}
	if email == "me" {
		email = middleware.GetUserEmail(c)
	}

	callerEmail := middleware.GetUserEmail(c)
	callerRole := middleware.GetUserRole(c)
	if callerEmail != email && callerRole != models.RoleAdmin {
		c.Forbidden("cannot update another user's profile")
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(context.Background(), email, req.Name, req.Photo, req.NID, req.Address)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, dto.NewUserResponse(user))
}

// List handles GET /users?role= for the admin dashboard.
func (h *UserHandler) List(c *drift.Context) {
	role := c.QueryParam("role")
	if role != "" && !models.ValidRole(role) {
		c.BadRequest("invalid role filter")
		return
	}

	users, err := h.userService.ListByRole(context.Background(), role)
	if err != nil {
		c.InternalServerError("failed to list users")
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, dto.NewUserResponse(&users[i]))
	}
	_ = c.JSON(200, responses)
}

// UpdateRole handles PATCH /users/:email/role. Admin only; the route
// group enforces that.
func (h *UserHandler) UpdateRole(c *drift.Context) {
	email := c.Param("email")
	if email == "" {
		c.BadRequest("email is required")
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if !models.ValidRole(req.Role) {
		c.BadRequest("role must be customer, agent or admin")
		return
	}

	ctx := context.Background()

	user, err := h.userService.GetByEmail(ctx, email)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	updated, err := h.userService.UpdateRole(ctx, user.ID, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRole) {
			c.BadRequest("role must be customer, agent or admin")
			return
		}
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, dto.NewUserResponse(updated))
}

func (h *UserHandler) Delete(c *drift.Context) {
	email := c.Param("email")
	if email == "" {
		c.BadRequest("email is required")
		return
	}

	if email == middleware.GetUserEmail(c) {
		c.BadRequest("cannot delete your own account")
		return
	}

	ctx := context.Background()

	user, err := h.userService.GetByEmail(ctx, email)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	if err := h.userService.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.NotFound("user not found")
			return
		}
		c.InternalServerError("failed to delete user")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "user deleted"})
}

// CreateRecord handles POST /users: the idempotent record upsert the
// client performs after a federated sign-in. 409 means the record
// already exists, which callers treat as success.
func (h *UserHandler) CreateRecord(c *drift.Context) {
	var req dto.CreateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Name == "" {
		c.BadRequest("email and name are required")
		return
	}

	ctx := context.Background()

	if _, err := h.userService.GetByEmail(ctx, req.Email); err == nil {
		_ = c.JSON(409, map[string]string{
			"code":    "USER_EXISTS",
			"message": "user record already exists",
		})
		return
	}

	photo := ""
	if req.Photo != nil {
		photo = *req.Photo
	}
	user, err := h.userService.FindOrCreateFromOAuth(ctx, &oauth.UserInfo{
		Email:     req.Email,
		Name:      req.Name,
		AvatarURL: photo,
		Provider:  "google",
	})
	if err != nil {
		c.InternalServerError("failed to create user record")
		return
	}

	_ = c.JSON(201, dto.NewUserResponse(user))
}
