package serverutils

import (
	"time"

	"fashion-chatbot-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger writes one line per request through ILogger.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		log.Info("HTTP", "Request handled", map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
		})
		return err
	}
}
