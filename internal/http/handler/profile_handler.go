package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/linktrove/linktrove/internal/app/authz"
	"github.com/linktrove/linktrove/internal/app/repository"
	"github.com/linktrove/linktrove/internal/app/service"
	"github.com/linktrove/linktrove/internal/http/middleware"
	"go.uber.org/zap"
)

// ProfileDeps groups dependencies required by the self-service handlers.
type ProfileDeps struct {
	Logger    *zap.Logger
	Users     service.UserService
	Linktrees service.LinktreeService
	Links     service.LinkService
	Auth      fiber.Handler
}

// ProfileHandler implements the authenticated self-service surface: the
// caller's account, linktree and links.
type ProfileHandler struct {
	logger    *zap.Logger
	users     service.UserService
	linktrees service.LinktreeService
	links     service.LinkService
	auth      fiber.Handler
}

// NewProfileHandler creates a profile handler with the provided dependencies.
func NewProfileHandler(deps ProfileDeps) *ProfileHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler{
		logger:    logger,
		users:     deps.Users,
		linktrees: deps.Linktrees,
		links:     deps.Links,
		auth:      deps.Auth,
	}
}

// Register wires self-service routes onto the provided router.
func (h *ProfileHandler) Register(router fiber.Router) {
	me := router.Group("/api/me", h.auth)
	{
		me.Get("/", middleware.Authorize(authz.ResourceProfile, authz.ActionRead), h.GetProfile)
		me.Patch("/", middleware.Authorize(authz.ResourceProfile, authz.ActionUpdate), h.UpdateProfile)

		tree := me.Group("/linktree")
		{
			tree.Get("/", middleware.Authorize(authz.ResourceLinktree, authz.ActionRead), h.GetLinktree)
			tree.Post("/", middleware.Authorize(authz.ResourceLinktree, authz.ActionCreate), h.CreateLinktree)
			tree.Patch("/", middleware.Authorize(authz.ResourceLinktree, authz.ActionUpdate), h.UpdateLinktree)
		}

		links := me.Group("/links")
		{
			links.Post("/", middleware.Authorize(authz.ResourceLink, authz.ActionCreate), h.CreateLink)
			links.Put("/reorder", middleware.Authorize(authz.ResourceLink, authz.ActionUpdate), h.ReorderLinks)
			links.Patch("/:id", middleware.Authorize(authz.ResourceLink, authz.ActionUpdate), h.UpdateLink)
			links.Delete("/:id", middleware.Authorize(authz.ResourceLink, authz.ActionDelete), h.DeleteLink)
		}
	}
}

// GetProfile handles GET /api/me
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// UpdateProfileRequest represents the profile update payload.
type UpdateProfileRequest struct {
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Password    *string `json:"password,omitempty"`
}

// UpdateProfile handles PATCH /api/me
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Password != nil && len(*req.Password) < 8 {
		return badRequest(c, "password must be at least 8 characters")
	}

	user := middleware.CurrentUser(c)
	updated, err := h.users.UpdateProfile(c.UserContext(), user.ID, service.UpdateProfileInput{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(updated)
}

// GetLinktree handles GET /api/me/linktree
func (h *ProfileHandler) GetLinktree(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	tree, links, err := h.linktrees.GetOwn(c.UserContext(), user.ID)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"linktree": tree, "links": links})
}

// LinktreeRequest represents create and update payloads for the linktree.
type LinktreeRequest struct {
	Title    *string `json:"title,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// CreateLinktree handles POST /api/me/linktree
func (h *ProfileHandler) CreateLinktree(c *fiber.Ctx) error {
	var req LinktreeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Title == nil || *req.Title == "" {
		return badRequest(c, "title is required")
	}

	user := middleware.CurrentUser(c)
	input := service.CreateLinktreeInput{Title: *req.Title}
	if req.PhotoURL != nil {
		input.PhotoURL = *req.PhotoURL
	}

	tree, err := h.linktrees.Create(c.UserContext(), user.ID, input)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tree)
}

// UpdateLinktree handles PATCH /api/me/linktree
func (h *ProfileHandler) UpdateLinktree(c *fiber.Ctx) error {
	var req LinktreeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Title != nil && *req.Title == "" {
		return badRequest(c, "title cannot be empty")
	}

	user := middleware.CurrentUser(c)
	tree, err := h.linktrees.Update(c.UserContext(), user.ID, service.UpdateLinktreeInput{
		Title:    req.Title,
		PhotoURL: req.PhotoURL,
		Active:   req.Active,
	})
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(tree)
}

// CreateLinkRequest represents the link creation payload.
type CreateLinkRequest struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	CategoryID *uint  `json:"category_id,omitempty"`
	SortOrder  int    `json:"sort_order,omitempty"`
	Visible    *bool  `json:"visible,omitempty"`
}

// CreateLink handles POST /api/me/links
func (h *ProfileHandler) CreateLink(c *fiber.Ctx) error {
	var req CreateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Title == "" || req.URL == "" {
		return badRequest(c, "title and url are required")
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	user := middleware.CurrentUser(c)
	link, err := h.links.Create(c.UserContext(), user.ID, service.CreateLinkInput{
		Title:      req.Title,
		URL:        req.URL,
		CategoryID: req.CategoryID,
		SortOrder:  req.SortOrder,
		Visible:    visible,
	})
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(link)
}

// UpdateLinkRequest represents the link update payload.
type UpdateLinkRequest struct {
	Title      *string `json:"title,omitempty"`
	URL        *string `json:"url,omitempty"`
	CategoryID *uint   `json:"category_id,omitempty"`
	SortOrder  *int    `json:"sort_order,omitempty"`
	Visible    *bool   `json:"visible,omitempty"`
}

// UpdateLink handles PATCH /api/me/links/:id
func (h *ProfileHandler) UpdateLink(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid link id")
	}

	var req UpdateLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user := middleware.CurrentUser(c)
	link, err := h.links.Update(c.UserContext(), user.ID, uint(id), service.UpdateLinkInput{
		Title:      req.Title,
		URL:        req.URL,
		CategoryID: req.CategoryID,
		SortOrder:  req.SortOrder,
		Visible:    req.Visible,
	})
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(link)
}

// DeleteLink handles DELETE /api/me/links/:id
func (h *ProfileHandler) DeleteLink(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid link id")
	}

	user := middleware.CurrentUser(c)
	if err := h.links.Delete(c.UserContext(), user.ID, uint(id)); err != nil {
		return fail(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReorderRequest represents the bulk sort-order payload.
type ReorderRequest struct {
	Links []struct {
		ID        uint `json:"id"`
		SortOrder int  `json:"sort_order"`
	} `json:"links"`
}

// ReorderLinks handles PUT /api/me/links/reorder. The batch is all-or-nothing:
// one foreign link ID rejects the whole request.
func (h *ProfileHandler) ReorderLinks(c *fiber.Ctx) error {
	var req ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.Links) == 0 {
		return badRequest(c, "links is required")
	}

	updates := make([]repository.SortUpdate, len(req.Links))
	for i, l := range req.Links {
		updates[i] = repository.SortUpdate{LinkID: l.ID, SortOrder: l.SortOrder}
	}

	user := middleware.CurrentUser(c)
	if err := h.links.Reorder(c.UserContext(), user.ID, updates); err != nil {
		return fail(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
