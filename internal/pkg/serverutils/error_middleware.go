package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps the error taxonomy onto HTTP statuses:
// usage 400, busy 409, missing session 404, retrieval and logger
// failures 502 (external collaborators), anything unclassified 500.
// Enrichment errors never reach here; they degrade the payload instead.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			status := fiber.StatusInternalServerError
			switch appErr.Kind {
			case KindUsage:
				status = fiber.StatusBadRequest
			case KindBusy:
				status = fiber.StatusConflict
			case KindNotFound:
				status = fiber.StatusNotFound
			case KindRetrieval, KindLogger:
				status = fiber.StatusBadGateway
			}
			return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}
