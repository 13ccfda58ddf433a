package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/linktrove/linktrove/internal/app/repository"
	"github.com/linktrove/linktrove/internal/app/service"
	"go.uber.org/zap"
)

// fail maps a service error onto the HTTP taxonomy and writes the JSON error
// body. Unrecognized errors become 500 and are logged; expected ones are not.
func fail(c *fiber.Ctx, logger *zap.Logger, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(status).JSON(fiber.Map{"error": messageFor(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrInvalidSettingValue),
		errors.Is(err, service.ErrUploadTooLarge),
		errors.Is(err, service.ErrUploadBadType):
		return fiber.StatusBadRequest
	case errors.Is(err, repository.ErrDuplicateUser),
		errors.Is(err, repository.ErrLinktreeExists),
		errors.Is(err, repository.ErrDuplicateCategory),
		errors.Is(err, service.ErrCategoryInUse),
		errors.Is(err, service.ErrArticleCategoryInUse),
		errors.Is(err, service.ErrSlugExhausted):
		return fiber.StatusConflict
	// Ownership failures read as not-found so resource existence is not
	// probeable across accounts.
	case errors.Is(err, service.ErrNotOwner),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrLinktreeNotFound),
		errors.Is(err, repository.ErrLinkNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrArticleNotFound),
		errors.Is(err, repository.ErrArticleCategoryNotFound),
		errors.Is(err, repository.ErrSettingNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return "invalid credentials"
	case errors.Is(err, service.ErrForbidden):
		return "insufficient permissions"
	case errors.Is(err, service.ErrInvalidSettingValue):
		return "setting value does not match its type"
	case errors.Is(err, service.ErrUploadTooLarge):
		return "upload exceeds size limit"
	case errors.Is(err, service.ErrUploadBadType):
		return "upload is not an accepted image type"
	case errors.Is(err, repository.ErrDuplicateUser):
		return "username or email already taken"
	case errors.Is(err, repository.ErrLinktreeExists):
		return "linktree already exists for this account"
	case errors.Is(err, repository.ErrDuplicateCategory):
		return "category name already taken"
	case errors.Is(err, service.ErrCategoryInUse):
		return "category is referenced by existing links"
	case errors.Is(err, service.ErrArticleCategoryInUse):
		return "category is referenced by existing articles"
	case errors.Is(err, service.ErrSlugExhausted):
		return "could not allocate a unique slug"
	default:
		return "not found"
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
