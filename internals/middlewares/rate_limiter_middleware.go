package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "cftl_backend/internals/helpers"
)

func newLimiter(store fiber.Storage, max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    store,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// GlobalRateLimiter applies to every endpoint. store may be nil (in-memory).
func GlobalRateLimiter(store fiber.Storage) fiber.Handler {
	return newLimiter(store, 100, time.Minute, "Too many requests. Please try again later.")
}

// LoginRateLimiter is stricter, used on parent login.
func LoginRateLimiter(store fiber.Storage) fiber.Handler {
	return newLimiter(store, 5, time.Minute, "Too many login attempts. Please wait a moment.")
}

// RegisterRateLimiter guards the public registration form.
func RegisterRateLimiter(store fiber.Storage) fiber.Handler {
	return newLimiter(store, 3, 5*time.Minute, "Too many registration attempts. Please wait a few minutes.")
}
