package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"cftl_backend/internals/configs"
	"cftl_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the global chain. limiterStore may be nil.
func SetupMiddlewares(app *fiber.App, cfg configs.AppConfig, limiterStore fiber.Storage) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(cfg.AllowedOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(GlobalRateLimiter(limiterStore))
}
