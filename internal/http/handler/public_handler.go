package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/linktrove/linktrove/internal/app/service"
	"go.uber.org/zap"
)

// PublicDeps groups dependencies required by the anonymous endpoints.
type PublicDeps struct {
	Logger            *zap.Logger
	Linktrees         service.LinktreeService
	Links             service.LinkService
	Articles          service.ArticleService
	ArticleCategories service.ArticleCategoryService
	Engagement        *service.EngagementPublisher
}

// PublicHandler serves the anonymous surface: published linktree pages,
// engagement recording, and the published article catalogue.
type PublicHandler struct {
	logger            *zap.Logger
	linktrees         service.LinktreeService
	links             service.LinkService
	articles          service.ArticleService
	articleCategories service.ArticleCategoryService
	engagement        *service.EngagementPublisher
}

// NewPublicHandler creates a public handler with the provided dependencies.
func NewPublicHandler(deps PublicDeps) *PublicHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicHandler{
		logger:            logger,
		linktrees:         deps.Linktrees,
		links:             deps.Links,
		articles:          deps.Articles,
		articleCategories: deps.ArticleCategories,
		engagement:        deps.Engagement,
	}
}

// Register wires public routes onto the provided router.
func (h *PublicHandler) Register(router fiber.Router) {
	router.Get("/healthz", h.Health)

	public := router.Group("/api/public")
	{
		public.Get("/linktrees/:slug", h.GetLinktree)
		public.Post("/linktrees/:slug/view", h.RecordLinktreeView)
		public.Post("/links/:id/click", h.RecordLinkClick)

		public.Get("/articles", h.ListArticles)
		public.Get("/articles/:slug", h.GetArticle)
		public.Get("/article-categories", h.ListArticleCategories)
	}
}

// Health handles GET /healthz
func (h *PublicHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": "linktrove",
		"status":  "ok",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// GetLinktree handles GET /api/public/linktrees/:slug
func (h *PublicHandler) GetLinktree(c *fiber.Ctx) error {
	page, err := h.linktrees.GetPublicBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(page)
}

// RecordLinktreeView handles POST /api/public/linktrees/:slug/view.
// Views are fire-and-forget through JetStream; every hit counts.
func (h *PublicHandler) RecordLinktreeView(c *fiber.Ctx) error {
	page, err := h.linktrees.GetPublicBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return fail(c, h.logger, err)
	}

	if err := h.engagement.PublishView(page.Linktree.ID, c.IP(), c.Get("User-Agent")); err != nil {
		h.logger.Error("failed to publish linktree view",
			zap.Uint("linktree_id", page.Linktree.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to record view",
		})
	}

	return c.SendStatus(fiber.StatusAccepted)
}

// RecordLinkClick handles POST /api/public/links/:id/click
func (h *PublicHandler) RecordLinkClick(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "invalid link id")
	}

	link, err := h.links.GetByID(c.UserContext(), uint(id))
	if err != nil {
		return fail(c, h.logger, err)
	}

	if err := h.engagement.PublishClick(link.ID, c.IP(), c.Get("User-Agent"), c.Get("Referer")); err != nil {
		h.logger.Error("failed to publish link click",
			zap.Uint("link_id", link.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to record click",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"url": link.URL})
}

// ListArticles handles GET /api/public/articles
func (h *PublicHandler) ListArticles(c *fiber.Ctx) error {
	filter := service.PublicArticleFilter{
		CategorySlug: c.Query("category"),
		Tag:          c.Query("tag"),
		Search:       c.Query("q"),
		Limit:        20,
	}

	if featured := c.Query("featured"); featured != "" {
		value := featured == "true" || featured == "1"
		filter.Featured = &value
	}
	if limit := c.QueryInt("limit"); limit > 0 && limit <= 100 {
		filter.Limit = limit
	}
	if offset := c.QueryInt("offset"); offset > 0 {
		filter.Offset = offset
	}

	articles, total, err := h.articles.ListPublished(c.UserContext(), filter)
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

// GetArticle handles GET /api/public/articles/:slug. Reading an article
// records a view, deduplicated per IP per calendar day.
func (h *PublicHandler) GetArticle(c *fiber.Ctx) error {
	ctx := c.UserContext()

	article, err := h.articles.GetPublishedBySlug(ctx, c.Params("slug"))
	if err != nil {
		return fail(c, h.logger, err)
	}

	counted, err := h.articles.RecordView(ctx, article.ID, c.IP(), c.Get("User-Agent"))
	if err != nil {
		// The page still renders when view accounting fails.
		h.logger.Error("failed to record article view",
			zap.Uint("article_id", article.ID), zap.Error(err))
	} else if counted {
		article.ViewCount++
	}

	return c.JSON(article)
}

// ListArticleCategories handles GET /api/public/article-categories
func (h *PublicHandler) ListArticleCategories(c *fiber.Ctx) error {
	categories, err := h.articleCategories.List(c.UserContext())
	if err != nil {
		return fail(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}
