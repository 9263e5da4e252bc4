package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError renders an error returned from a transaction closure.
// *fiber.Error keeps its status; anything else becomes a 500 with the raw message.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
