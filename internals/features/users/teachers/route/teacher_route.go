package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/users/teachers/controller"
	authMw "cftl_backend/internals/middlewares/auth"
)

func TeacherRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards) {
	ctl := controller.NewTeacherController(db)
	onlyAdmin := authMw.OnlyRoles(constants.ErrInsufficientRole, constants.AdminOnly...)
	staff := authMw.OnlyRoles(constants.ErrInsufficientRole, constants.StaffRoles...)

	r := api.Group("/teachers")

	// profile of the signed-in user; any verified staff identity may create one
	r.Post("/profile", g.Staff, ctl.SaveProfile)
	r.Get("/profile", g.Staff, ctl.GetProfile)

	r.Post("/", g.Staff, onlyAdmin, ctl.CreateTeacher)
	r.Get("/", g.Staff, staff, ctl.GetAllTeachers)
	r.Get("/:id", g.Staff, staff, ctl.GetTeacherByID)
	r.Put("/:id/assign-subjects", g.Staff, onlyAdmin, ctl.AssignSubjects)
	r.Get("/:id/subjects", g.Staff, staff, ctl.GetSubjectsForTeacher)
	r.Put("/:id", g.Staff, onlyAdmin, ctl.UpdateTeacher)
	r.Delete("/:id", g.Staff, onlyAdmin, ctl.DeleteTeacher)
}
