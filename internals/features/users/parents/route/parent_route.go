package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cftl_backend/internals/features/users/parents/controller"
	"cftl_backend/internals/middlewares"
	authMw "cftl_backend/internals/middlewares/auth"
)

// ParentRoutes mounts the parent portal. limiterStore may be nil (in-memory).
func ParentRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards, secret string, ttl time.Duration, limiterStore fiber.Storage) {
	ctl := &controller.ParentController{DB: db, Secret: secret, TokenTTL: ttl}

	r := api.Group("/parents")
	r.Post("/login", middlewares.LoginRateLimiter(limiterStore), ctl.Login)

	me := r.Group("", g.Parent)
	me.Get("/me", ctl.GetMe)
	me.Get("/students", ctl.GetMyStudents)
	me.Get("/payments", ctl.GetMyPayments)
	me.Put("/password", ctl.ChangePassword)
}
