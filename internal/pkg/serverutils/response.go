package serverutils

import (
	"errors"
	"net/url"

	"study-assistant-be/internal/pkg/apperror"
	"study-assistant-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the uniform error envelope: {"error": "..."}.
type ErrorBody struct {
	Error string `json:"error"`
}

func ErrorResponse(message string) ErrorBody {
	return ErrorBody{Error: message}
}

// Envelope builds a success body keyed by the route's field name,
// e.g. {"response": "..."} or {"books": [...]}.
func Envelope(field string, value interface{}) fiber.Map {
	return fiber.Map{field: value}
}

// RespondError writes err as an error envelope with the status of its kind.
func RespondError(ctx *fiber.Ctx, err error) error {
	return ctx.Status(apperror.StatusOf(err)).JSON(ErrorResponse(err.Error()))
}

// RedirectWithNotice sends a 302 to path carrying notice in the query string.
// Form-style pages read it back on GET in place of a session flash.
func RedirectWithNotice(ctx *fiber.Ctx, path, notice string) error {
	target := path
	if notice != "" {
		target = path + "?" + url.Values{"notice": {notice}}.Encode()
	}
	return ctx.Redirect(target, fiber.StatusFound)
}

// ErrorHandler is installed as fiber.Config.ErrorHandler so that anything a
// handler returns (or a recovered panic) still leaves as an {"error"} body.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ctx.Status(fe.Code).JSON(ErrorResponse(fe.Message))
		}

		status := apperror.StatusOf(err)
		if status >= fiber.StatusInternalServerError {
			log.Error("Server", "Unhandled request error", map[string]interface{}{
				"path":   ctx.Path(),
				"method": ctx.Method(),
				"error":  err.Error(),
			})
		}
		return ctx.Status(status).JSON(ErrorResponse(err.Error()))
	}
}
