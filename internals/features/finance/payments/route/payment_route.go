package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/finance/payments/controller"
	authMw "cftl_backend/internals/middlewares/auth"
)

func PaymentRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards) {
	ctl := &controller.PaymentController{DB: db}

	r := api.Group("/payments", g.Staff, authMw.OnlyRoles(constants.ErrInsufficientRole, constants.StaffRoles...))
	r.Post("/", ctl.CreatePayment)
	r.Get("/", ctl.GetAllPayments)
	r.Get("/export", ctl.ExportLedger)
	r.Get("/student/:studentId", ctl.GetPaymentsByStudent)
	r.Get("/:id", ctl.GetPaymentByID)
	r.Put("/:id", ctl.UpdatePayment)
	r.Delete("/:id", ctl.DeletePayment)
}
