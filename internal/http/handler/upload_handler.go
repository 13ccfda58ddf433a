package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/linktrove/linktrove/internal/app/authz"
	"github.com/linktrove/linktrove/internal/app/service"
	"github.com/linktrove/linktrove/internal/http/middleware"
	"go.uber.org/zap"
)

// UploadDeps groups dependencies required by the upload handler.
type UploadDeps struct {
	Logger  *zap.Logger
	Uploads service.UploadService
	Auth    fiber.Handler
}

// UploadHandler accepts image uploads for linktree photos and article
// featured images.
type UploadHandler struct {
	logger  *zap.Logger
	uploads service.UploadService
	auth    fiber.Handler
}

// NewUploadHandler creates an upload handler with the provided dependencies.
func NewUploadHandler(deps UploadDeps) *UploadHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadHandler{
		logger:  logger,
		uploads: deps.Uploads,
		auth:    deps.Auth,
	}
}

// Register wires the upload route onto the provided router.
func (h *UploadHandler) Register(router fiber.Router) {
	router.Post("/api/admin/uploads",
		h.auth,
		middleware.Authorize(authz.ResourceUpload, authz.ActionCreate),
		h.UploadImage)
}

// UploadImage handles POST /api/admin/uploads. The image arrives as the
// multipart field "file"; the response carries the public URL to store.
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "multipart field \"file\" is required")
	}

	url, err := h.uploads.SaveImage(c.UserContext(), file)
	if err != nil {
		return fail(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
