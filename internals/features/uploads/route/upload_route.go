package route

import (
	"github.com/gofiber/fiber/v2"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/uploads/controller"
	"cftl_backend/internals/helpers/storage"
	authMw "cftl_backend/internals/middlewares/auth"
)

func UploadRoutes(api fiber.Router, g authMw.Guards, store storage.ObjectStorage) {
	ctl := &controller.UploadController{Storage: store}

	u := api.Group("/uploads")
	u.Post("/signed-url", g.Parent, ctl.GetSignedURL)
	u.Get("/view-url", g.Staff, authMw.OnlyRoles(constants.ErrInsufficientRole, constants.StaffRoles...), ctl.GetViewURL)

	api.Post("/images", ctl.UploadImage)
}
