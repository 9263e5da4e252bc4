package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/users/admins/controller"
	authMw "cftl_backend/internals/middlewares/auth"
)

func AdminRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards) {
	h := &controller.AdminHandler{DB: db}
	onlyAdmin := authMw.OnlyRoles(constants.ErrInsufficientRole, constants.AdminOnly...)

	r := api.Group("/admins")
	r.Get("/check-invite", h.CheckInvite)

	r.Post("/", g.Staff, h.CreateAdmin)
	r.Get("/me", g.Staff, h.GetMe)
	r.Put("/me", g.Staff, h.UpdateMe)
	r.Delete("/me", g.Staff, h.DeleteMe)

	inv := r.Group("/invites", g.Staff, onlyAdmin)
	inv.Get("/", h.ListInvites)
	inv.Post("/", h.CreateInvite)
	inv.Delete("/:id", h.DeleteInvite)
}
