package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID tags every request with an identifier for log correlation. An
// incoming value on header is trusted when the header name is non-empty;
// otherwise a fresh UUID is generated.
func RequestID(header string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reqID string
		if header != "" {
			reqID = c.Get(header)
		}
		if reqID == "" {
			reqID = uuid.New().String()
		}

		ctx := context.WithValue(c.Context(), requestIDKey, reqID)
		c.SetUserContext(ctx)
		c.Locals(requestIDKey, reqID)
		return c.Next()
	}
}

const requestIDKey = "request_id"

// GetRequestID returns the identifier set by RequestID, or "" when the
// middleware did not run.
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}
	return ""
}
