package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/academics/courses/controller"
	authMw "cftl_backend/internals/middlewares/auth"
)

func CourseRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards) {
	ctl := &controller.CourseController{DB: db}
	onlyAdmin := authMw.OnlyRoles(constants.ErrInsufficientRole, constants.AdminOnly...)
	staff := authMw.OnlyRoles(constants.ErrInsufficientRole, constants.StaffRoles...)

	r := api.Group("/courses")
	r.Get("/", ctl.GetAllCourses)
	r.Get("/coordinator/courses", g.Staff, staff, ctl.GetCoursesForCoordinator)
	r.Post("/", g.Staff, onlyAdmin, ctl.CreateCourse)
	r.Put("/:courseId", g.Staff, onlyAdmin, ctl.UpdateCourse)
	r.Delete("/:courseId", g.Staff, onlyAdmin, ctl.DeleteCourse)
}
