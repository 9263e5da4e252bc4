package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"cftl_backend/internals/configs"
)

// RecoveryMiddleware turns panics into 500 and logs the stack.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			configs.Log.WithFields(map[string]interface{}{
				"method": c.Method(),
				"path":   c.Path(),
				"reqid":  c.Locals("reqid"),
			}).Errorf("panic: %s", fmt.Sprint(e))
		},
	})
}
