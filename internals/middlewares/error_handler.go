package middlewares

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cftl_backend/internals/configs"
	helper "cftl_backend/internals/helpers"
)

// ErrorHandler renders errors returned from handlers and middlewares in the
// same envelope as helper.JsonError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := err.Error()

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		configs.Log.WithFields(map[string]interface{}{
			"method": c.Method(),
			"path":   c.Path(),
			"reqid":  c.Locals("reqid"),
		}).WithError(err).Error("request failed")
	}
	return helper.JsonError(c, code, msg)
}
