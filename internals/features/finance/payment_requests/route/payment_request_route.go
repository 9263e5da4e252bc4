package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/finance/payment_requests/controller"
	"cftl_backend/internals/helpers/storage"
	authMw "cftl_backend/internals/middlewares/auth"
)

func PaymentRequestRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards, store storage.ObjectStorage) {
	ctl := &controller.PaymentRequestController{DB: db, Storage: store}
	coordinator := authMw.OnlyRoles(constants.ErrInsufficientRole, constants.CoordinatorOnly...)

	r := api.Group("/payment-requests")
	r.Post("/", g.Parent, ctl.CreateRequest)
	r.Get("/parent", g.Parent, ctl.GetRequestsForParent)

	r.Get("/", g.Staff, coordinator, ctl.GetAllRequests)
	r.Get("/coordinator", g.Staff, coordinator, ctl.GetRequestsForCoordinator)
	r.Put("/:id/approve", g.Staff, coordinator, ctl.ApproveRequest)
	r.Put("/:id/reject", g.Staff, coordinator, ctl.RejectRequest)
}
