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

type BlogHandler struct {
	blogService BlogServiceInterface
	userService UserServiceInterface
}

func NewBlogHandler(blogService BlogServiceInterface, userService UserServiceInterface) *BlogHandler {
	return &BlogHandler{blogService: blogService, userService: userService}
}

func (h *BlogHandler) List(c *drift.Context) {
	blogs, err := h.blogService.List(context.Background(), c.QueryParam("author"))
	if err != nil {
		c.InternalServerError("failed to list blogs")
		return
	}
	_ = c.JSON(200, blogs)
}

func (h *BlogHandler) Get(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid blog id")
		return
	}

	blog, err := h.blogService.GetByID(context.Background(), id)
	if err != nil {
		c.NotFound("blog not found")
		return
	}
	_ = c.JSON(200, blog)
}

func (h *BlogHandler) Create(c *drift.Context) {
	var req dto.BlogRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Title == "" || req.Content == "" {
		c.BadRequest("title and content are required")
		return
	}

	ctx := context.Background()

	author, err := h.userService.GetByID(ctx, middleware.GetUserID(c))
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	blog, err := h.blogService.Create(ctx, req.Title, req.Content, author)
	if err != nil {
		c.InternalServerError("failed to create blog")
		return
	}
	_ = c.JSON(201, blog)
}

func (h *BlogHandler) Update(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid blog id")
		return
	}

	var req dto.BlogRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	isAdmin := middleware.GetUserRole(c) == models.RoleAdmin
	blog, err := h.blogService.Update(context.Background(), id, req.Title, req.Content, middleware.GetUserEmail(c), isAdmin)
	if err != nil {
		h.respondBlogError(c, err)
		return
	}
	_ = c.JSON(200, blog)
}

func (h *BlogHandler) Delete(c *drift.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid blog id")
		return
	}

	isAdmin := middleware.GetUserRole(c) == models.RoleAdmin
	if err := h.blogService.Delete(context.Background(), id, middleware.GetUserEmail(c), isAdmin); err != nil {
		h.respondBlogError(c, err)
		return
	}
	_ = c.JSON(200, map[string]string{"message": "blog deleted"})
}

func (h *BlogHandler) respondBlogError(c *drift.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBlogNotFound):
		c.NotFound("blog not found")
	case errors.Is(err, services.ErrNotAuthor):
		c.Forbidden("only the author can modify this blog")
	default:
		c.InternalServerError("failed to update blog")
	}
}
