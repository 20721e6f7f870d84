package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/taskdeck/backend/internal/infrastructure/logger"
)

// AccessLog emits one structured log line per request after the handler runs.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Infow("http_access",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.IP(),
			"request_id", GetRequestID(c),
		)
		return err
	}
}
