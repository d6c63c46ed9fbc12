package serverutils

import (
	"errors"

	"fashion-chatbot-be/internal/pkg/apperror"
	"fashion-chatbot-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders any error returned by a handler as a JSON Response.
// Internal failures are logged and hidden behind a generic message.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ctx.Status(fe.Code).JSON(ErrorResponse(fe.Code, fe.Message))
		}

		appErr := apperror.From(err)
		status := appErr.Status()
		message := appErr.Message
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"path":   ctx.Path(),
				"method": ctx.Method(),
				"error":  err.Error(),
			})
			if appErr.Kind == apperror.KindInternal {
				message = "internal server error"
			}
		}
		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}
