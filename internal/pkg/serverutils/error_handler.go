package serverutils

import (
	"errors"

	"ai-chat-be/internal/service"
	"ai-chat-be/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates service and storage errors into HTTP responses.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		switch {
		case errors.Is(err, service.ErrChatNotFound),
			errors.Is(err, service.ErrMessageNotFound),
			errors.Is(err, service.ErrAttachmentNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, storage.ErrUploadConflict):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, storage.ErrBucketMissing),
			errors.Is(err, storage.ErrStorageUnavailable):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(err.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}
