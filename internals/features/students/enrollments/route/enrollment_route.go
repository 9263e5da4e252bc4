package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/students/enrollments/controller"
	authMw "cftl_backend/internals/middlewares/auth"
)

func EnrollmentRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards) {
	ctl := &controller.EnrollmentController{DB: db}

	r := api.Group("/enrollments", g.Staff, authMw.OnlyRoles(constants.ErrInsufficientRole, constants.StaffRoles...))
	r.Post("/", ctl.EnrollStudent)
	r.Get("/students", ctl.GetAllStudentsWithOptionalEnrollment)
	r.Get("/coordinator", ctl.GetEnrollmentsForCoordinator)
	r.Get("/coordinator/pending", ctl.GetPendingForCoordinator)
	r.Get("/course/:courseId", ctl.GetEnrollmentsByCourse)
	r.Put("/:id/status", ctl.UpdateEnrollmentStatus)
	r.Delete("/:id", ctl.DeleteEnrollment)
}
