package serverutils

import (
	"errors"

	"notegraph-be/internal/pkg/apperror"
	"notegraph-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const (
	MessageNotFound     = "Resource not found"
	MessageBadRequest   = "Invalid request"
	MessageUnauthorized = "Unauthorized"
	MessageInternal     = "Failed to process your request"
)

// NewErrorHandler maps error kinds to status codes. Error text stays in the log.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status, message := classify(err)

		details := map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"status": status,
			"error":  err.Error(),
		}
		if status >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", details)
		} else {
			log.Debug("HTTP", "Request rejected", details)
		}

		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound, MessageNotFound
	case errors.Is(err, apperror.ErrInvalidInput):
		return fiber.StatusBadRequest, MessageBadRequest
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch {
		case fe.Code == fiber.StatusNotFound:
			return fe.Code, MessageNotFound
		case fe.Code == fiber.StatusUnauthorized:
			return fe.Code, MessageUnauthorized
		case fe.Code >= 400 && fe.Code < 500:
			return fiber.StatusBadRequest, MessageBadRequest
		}
	}
	return fiber.StatusInternalServerError, MessageInternal
}
