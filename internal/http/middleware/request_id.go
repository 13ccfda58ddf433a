package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	RequestIDHeader    = "X-Request-ID"
	requestIDLocalsKey = "request_id"
)

// RequestID propagates the caller's request ID or generates one, and makes
// it available to the request log and recovery middleware.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(RequestIDHeader)
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set(RequestIDHeader, rid)
		c.Locals(requestIDLocalsKey, rid)
		return c.Next()
	}
}

// RequestIDFrom returns the request ID assigned by RequestID, if any.
func RequestIDFrom(c *fiber.Ctx) (string, bool) {
	rid, ok := c.Locals(requestIDLocalsKey).(string)
	return rid, ok && rid != ""
}
