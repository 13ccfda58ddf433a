package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/linktrove/linktrove/internal/app/authz"
	"github.com/linktrove/linktrove/internal/app/model"
	"github.com/linktrove/linktrove/internal/app/repository"
	"github.com/linktrove/linktrove/internal/http/util"
)

const userLocalsKey = "user"

// Authenticate verifies the Bearer token and loads the current account into
// the request context. The account is reloaded from the database so role
// changes take effect without waiting for token expiry.
func Authenticate(tokens *util.TokenManager, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}

		claims, err := tokens.Verify(token)
		if err != nil || claims.TokenType != util.TokenTypeAccess {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		user, err := users.GetByID(c.UserContext(), claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "account no longer exists",
			})
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// Authorize gates a route on a single capability. It must run after
// Authenticate.
func Authorize(resource authz.Resource, action authz.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}
		if !authz.Can(user.Role, resource, action) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "insufficient permissions",
			})
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated account stored by Authenticate, or
// nil on unauthenticated routes.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(userLocalsKey).(*model.User)
	return user
}
