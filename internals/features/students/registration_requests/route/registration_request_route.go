package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/students/registration_requests/controller"
	"cftl_backend/internals/middlewares"
	authMw "cftl_backend/internals/middlewares/auth"
)

// RegistrationRequestRoutes: the form and its starting months are public.
func RegistrationRequestRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards, limiterStore fiber.Storage) {
	ctl := &controller.RegistrationRequestController{DB: db}

	r := api.Group("/registration-requests")
	r.Post("/", middlewares.RegisterRateLimiter(limiterStore), ctl.CreateRequest)
	r.Get("/starting-months", ctl.GetStartingMonths)
	r.Put("/starting-months", g.Staff, authMw.OnlyRoles(constants.ErrInsufficientRole, constants.AdminOnly...), ctl.SetStartingMonths)
	r.Get("/", g.Staff, authMw.OnlyRoles(constants.ErrInsufficientRole, constants.StaffRoles...), ctl.GetAllRequests)
}
