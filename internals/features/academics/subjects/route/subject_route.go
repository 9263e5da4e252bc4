package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/academics/subjects/controller"
	authMw "cftl_backend/internals/middlewares/auth"
)

func SubjectRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards) {
	ctl := &controller.SubjectController{DB: db}

	r := api.Group("/subjects")
	r.Get("/public", ctl.GetPublicSubjects)

	staff := r.Group("", g.Staff, authMw.OnlyRoles(constants.ErrInsufficientRole, constants.StaffRoles...))
	staff.Post("/", ctl.CreateSubject)
	staff.Get("/", ctl.GetSubjects)
	staff.Get("/all", ctl.GetAllSubjects)
	staff.Get("/:subjectId", ctl.GetSubjectByID)
	staff.Put("/:subjectId", ctl.UpdateSubject)
	staff.Delete("/:subjectId", ctl.DeleteSubject)
	staff.Get("/:subjectId/teachers", ctl.GetTeachersForSubject)
}
