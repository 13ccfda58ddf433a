package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/linktrove/linktrove/internal/app/authz"
	"github.com/linktrove/linktrove/internal/app/model"
	"github.com/linktrove/linktrove/internal/app/repository"
	"github.com/linktrove/linktrove/internal/app/service"
	"github.com/linktrove/linktrove/internal/http/middleware"
	"go.uber.org/zap"
)

// AdminDeps groups dependencies required by the admin handlers.
type AdminDeps struct {
	Logger            *zap.Logger
	Categories        service.CategoryService
	ArticleCategories service.ArticleCategoryService
	Articles          service.ArticleService
	Users             service.UserService
	Settings          service.SettingsService
	Analytics         service.AnalyticsService
	Uploads           service.UploadService
	Auth              fiber.Handler
}

// AdminHandler implements the ADMIN/SUPERADMIN management surface: link
// categories, the article CMS, user management, settings, the dashboard and
// storage maintenance.
type AdminHandler struct {
	logger            *zap.Logger
	categories        service.CategoryService
	articleCategories service.ArticleCategoryService
	articles          service.ArticleService
	users             service.UserService
	settings          service.SettingsService
	analytics         service.AnalyticsService
	uploads           service.UploadService
	auth              fiber.Handler
}

// NewAdminHandler creates an admin handler with the provided dependencies.
func NewAdminHandler(deps AdminDeps) *AdminHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{
		logger:            logger,
		categories:        deps.Categories,
		articleCategories: deps.ArticleCategories,
		articles:          deps.Articles,
		users:             deps.Users,
		settings:          deps.Settings,
		analytics:         deps.Analytics,
		uploads:           deps.Uploads,
		auth:              deps.Auth,
	}
}

// Register wires admin routes onto the provided router.
func (h *AdminHandler) Register(router fiber.Router) {
	admin := router.Group("/api/admin", h.auth)
	{
		categories := admin.Group("/categories")
		{
			categories.Get("/", middleware.Authorize(authz.ResourceCategory, authz.ActionRead), h.ListCategories)
			categories.Post("/", middleware.Authorize(authz.ResourceCategory, authz.ActionCreate), h.CreateCategory)
			categories.Patch("/:id", middleware.Authorize(authz.ResourceCategory, authz.ActionUpdate), h.UpdateCategory)
			categories.Delete("/:id", middleware.Authorize(authz.ResourceCategory, authz.ActionDelete), h.DeleteCategory)
		}

		articleCategories := admin.Group("/article-categories")
		{
			articleCategories.Get("/", middleware.Authorize(authz.ResourceArticleCategory, authz.ActionRead), h.ListArticleCategories)
			articleCategories.Post("/", middleware.Authorize(authz.ResourceArticleCategory, authz.ActionCreate), h.CreateArticleCategory)
			articleCategories.Patch("/:id", middleware.Authorize(authz.ResourceArticleCategory, authz.ActionUpdate), h.UpdateArticleCategory)
			articleCategories.Delete("/:id", middleware.Authorize(authz.ResourceArticleCategory, authz.ActionDelete), h.DeleteArticleCategory)
		}

		articles := admin.Group("/articles")
		{
			articles.Get("/", middleware.Authorize(authz.ResourceArticle, authz.ActionRead), h.ListArticles)
			articles.Post("/", middleware.Authorize(authz.ResourceArticle, authz.ActionCreate), h.CreateArticle)
			articles.Get("/:id", middleware.Authorize(authz.ResourceArticle, authz.ActionRead), h.GetArticle)
			articles.Patch("/:id", middleware.Authorize(authz.ResourceArticle, authz.ActionUpdate), h.UpdateArticle)
			articles.Delete("/:id", middleware.Authorize(authz.ResourceArticle, authz.ActionDelete), h.DeleteArticle)
		}

		users := admin.Group("/users")
		{
			users.Get("/", middleware.Authorize(authz.ResourceUser, authz.ActionRead), h.ListUsers)
			users.Post("/", middleware.Authorize(authz.ResourceUser, authz.ActionCreate), h.CreateUser)
			users.Patch("/:id/role", middleware.Authorize(authz.ResourceUser, authz.ActionUpdate), h.UpdateUserRole)
		}

		settings := admin.Group("/settings")
		{
			settings.Get("/", middleware.Authorize(authz.ResourceSettings, authz.ActionRead), h.ListSettings)
			settings.Get("/:key", middleware.Authorize(authz.ResourceSettings, authz.ActionRead), h.GetSetting)
			settings.Put("/:key", middleware.Authorize(authz.ResourceSettings, authz.ActionUpdate), h.SetSetting)
		}

		admin.Get("/dashboard", middleware.Authorize(authz.ResourceDashboard, authz.ActionRead), h.Dashboard)
		admin.Get("/analytics/roles", middleware.Authorize(authz.ResourceAnalytics, authz.ActionRead), h.RoleBreakdown)

		storage := admin.Group("/storage")
		{
			storage.Get("/orphans", middleware.Authorize(authz.ResourceStorage, authz.ActionRead), h.ListOrphans)
			storage.Post("/cleanup", middleware.Authorize(authz.ResourceStorage, authz.ActionDelete), h.CleanupStorage)
		}
	}
}

// CategoryRequest represents create and update payloads for a link category.
type CategoryRequest struct {
	Name *string `json:"name,omitempty"`
	Icon *string `json:"icon,omitempty"`
}

// ListCategories handles GET /api/admin/categories
func (h *AdminHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.UserContext())
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// CreateCategory handles POST /api/admin/categories
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Name == nil || *req.Name == "" {
		return badRequest(c, "name is required")
	}

	category, err := h.categories.Create(c.UserContext(), service.CategoryInput{Name: req.Name, Icon: req.Icon})
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory handles PATCH /api/admin/categories/:id
func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid category id")
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	category, err := h.categories.Update(c.UserContext(), uint(id), service.CategoryInput{Name: req.Name, Icon: req.Icon})
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(category)
}

// DeleteCategory handles DELETE /api/admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid category id")
	}

	if err := h.categories.Delete(c.UserContext(), uint(id)); err != nil {
		return fail(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ArticleCategoryRequest represents create and update payloads for an
// article category.
type ArticleCategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// ListArticleCategories handles GET /api/admin/article-categories
func (h *AdminHandler) ListArticleCategories(c *fiber.Ctx) error {
	categories, err := h.articleCategories.List(c.UserContext())
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// CreateArticleCategory handles POST /api/admin/article-categories
func (h *AdminHandler) CreateArticleCategory(c *fiber.Ctx) error {
	var req ArticleCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Name == nil || *req.Name == "" {
		return badRequest(c, "name is required")
	}

	category, err := h.articleCategories.Create(c.UserContext(), service.ArticleCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	})
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateArticleCategory handles PATCH /api/admin/article-categories/:id
func (h *AdminHandler) UpdateArticleCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid category id")
	}

	var req ArticleCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Name != nil && *req.Name == "" {
		return badRequest(c, "name cannot be empty")
	}

	category, err := h.articleCategories.Update(c.UserContext(), uint(id), service.ArticleCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
	})
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(category)
}

// DeleteArticleCategory handles DELETE /api/admin/article-categories/:id
func (h *AdminHandler) DeleteArticleCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid category id")
	}

	if err := h.articleCategories.Delete(c.UserContext(), uint(id)); err != nil {
		return fail(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListArticles handles GET /api/admin/articles. Unlike the public listing it
// covers all statuses.
func (h *AdminHandler) ListArticles(c *fiber.Ctx) error {
	filter := repository.ArticleFilter{
		Status: c.Query("status"),
		Tag:    c.Query("tag"),
		Search: c.Query("q"),
		Limit:  20,
	}

	if filter.Status != "" && !model.ValidArticleStatus(filter.Status) {
		return badRequest(c, "invalid status filter")
	}
	if id := c.QueryInt("category_id"); id > 0 {
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}
	if limit := c.QueryInt("limit"); limit > 0 && limit <= 100 {
		filter.Limit = limit
	}
	if offset := c.QueryInt("offset"); offset > 0 {
		filter.Offset = offset
	}

	articles, total, err := h.articles.List(c.UserContext(), filter)
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"articles": articles,
		"total":    total,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

// ArticleRequest represents create and update payloads for an article.
type ArticleRequest struct {
	Title         *string  `json:"title,omitempty"`
	Body          *string  `json:"body,omitempty"`
	Excerpt       *string  `json:"excerpt,omitempty"`
	FeaturedImage *string  `json:"featured_image,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Featured      *bool    `json:"featured,omitempty"`
	CategoryID    *uint    `json:"category_id,omitempty"`
}

// CreateArticle handles POST /api/admin/articles
func (h *AdminHandler) CreateArticle(c *fiber.Ctx) error {
	var req ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Title == nil || *req.Title == "" {
		return badRequest(c, "title is required")
	}
	if req.Status != nil && !model.ValidArticleStatus(*req.Status) {
		return badRequest(c, "invalid status")
	}

	input := service.CreateArticleInput{
		Title:      *req.Title,
		Tags:       req.Tags,
		CategoryID: req.CategoryID,
	}
	if req.Body != nil {
		input.Body = *req.Body
	}
	if req.Excerpt != nil {
		input.Excerpt = *req.Excerpt
	}
	if req.FeaturedImage != nil {
		input.FeaturedImage = *req.FeaturedImage
	}
	if req.Status != nil {
		input.Status = *req.Status
	}
	if req.Featured != nil {
		input.Featured = *req.Featured
	}

	author := middleware.CurrentUser(c)
	article, err := h.articles.Create(c.UserContext(), author.ID, input)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(article)
}

// GetArticle handles GET /api/admin/articles/:id
func (h *AdminHandler) GetArticle(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid article id")
	}

	article, err := h.articles.GetByID(c.UserContext(), uint(id))
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(article)
}

// UpdateArticle handles PATCH /api/admin/articles/:id
func (h *AdminHandler) UpdateArticle(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid article id")
	}

	var req ArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Title != nil && *req.Title == "" {
		return badRequest(c, "title cannot be empty")
	}
	if req.Status != nil && !model.ValidArticleStatus(*req.Status) {
		return badRequest(c, "invalid status")
	}

	article, err := h.articles.Update(c.UserContext(), uint(id), service.UpdateArticleInput{
		Title:         req.Title,
		Body:          req.Body,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Status:        req.Status,
		Tags:          req.Tags,
		Featured:      req.Featured,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(article)
}

// DeleteArticle handles DELETE /api/admin/articles/:id
func (h *AdminHandler) DeleteArticle(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid article id")
	}

	if err := h.articles.Delete(c.UserContext(), uint(id)); err != nil {
		return fail(c, h.logger, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListUsers handles GET /api/admin/users. Admins only see USER accounts;
// the service applies the role filter from the caller's role.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	limit := 20
	offset := 0
	if parsed := c.QueryInt("limit"); parsed > 0 && parsed <= 100 {
		limit = parsed
	}
	if parsed := c.QueryInt("offset"); parsed > 0 {
		offset = parsed
	}

	caller := middleware.CurrentUser(c)
	users, total, err := h.users.List(c.UserContext(), caller.Role, limit, offset)
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"users":  users,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// CreateUserRequest represents the superadmin user-creation payload.
type CreateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role,omitempty"`
}

// CreateUser handles POST /api/admin/users
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Username == "" || req.Email == "" {
		return badRequest(c, "username and email are required")
	}
	if len(req.Password) < 8 {
		return badRequest(c, "password must be at least 8 characters")
	}
	if req.Role != "" && !model.ValidRole(req.Role) {
		return badRequest(c, "invalid role")
	}

	caller := middleware.CurrentUser(c)
	user, err := h.users.Create(c.UserContext(), caller.Role, service.CreateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        req.Role,
	})
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateRoleRequest represents the role-change payload.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateUserRole handles PATCH /api/admin/users/:id/role
func (h *AdminHandler) UpdateUserRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid user id")
	}

	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if !model.ValidRole(req.Role) {
		return badRequest(c, "invalid role")
	}

	caller := middleware.CurrentUser(c)
	user, err := h.users.UpdateRole(c.UserContext(), caller.Role, uint(id), req.Role)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(user)
}

// ListSettings handles GET /api/admin/settings
func (h *AdminHandler) ListSettings(c *fiber.Ctx) error {
	settings, err := h.settings.List(c.UserContext())
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"settings": settings})
}

// GetSetting handles GET /api/admin/settings/:key
func (h *AdminHandler) GetSetting(c *fiber.Ctx) error {
	setting, err := h.settings.Get(c.UserContext(), c.Params("key"))
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(setting)
}

// SetSettingRequest represents the typed setting write payload.
type SetSettingRequest struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// SetSetting handles PUT /api/admin/settings/:key
func (h *AdminHandler) SetSetting(c *fiber.Ctx) error {
	var req SetSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Type == "" {
		return badRequest(c, "type is required")
	}

	setting, err := h.settings.Set(c.UserContext(), c.Params("key"), req.Type, req.Value)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(setting)
}

// Dashboard handles GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	dashboard, err := h.analytics.Dashboard(c.UserContext())
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(dashboard)
}

// RoleBreakdown handles GET /api/admin/analytics/roles
func (h *AdminHandler) RoleBreakdown(c *fiber.Ctx) error {
	counts, err := h.analytics.RoleBreakdown(c.UserContext())
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"roles": counts})
}

// ListOrphans handles GET /api/admin/storage/orphans. Dry run: reports
// unreferenced upload files without removing anything.
func (h *AdminHandler) ListOrphans(c *fiber.Ctx) error {
	report, err := h.uploads.Cleanup(c.UserContext(), false)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(report)
}

// CleanupStorage handles POST /api/admin/storage/cleanup. Deletes orphaned
// upload files.
func (h *AdminHandler) CleanupStorage(c *fiber.Ctx) error {
	report, err := h.uploads.Cleanup(c.UserContext(), true)
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(report)
}
