package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/academics/syllabus/controller"
	authMw "cftl_backend/internals/middlewares/auth"
)

const (
	subtopicPath = "/:id/weeks/:weekNumber/topics/:topicIndex/subtopics/:subIndex"
	topicPath    = "/:id/weeks/:weekNumber/topics/:topicIndex"
)

func SyllabusRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards) {
	ctl := &controller.SyllabusController{DB: db}
	staff := authMw.OnlyRoles("Forbidden", constants.StaffRoles...)
	approver := authMw.OnlyRoles(constants.RoleErrorStaff("approve"), constants.StaffRoles...)
	teacher := authMw.OnlyRoles("Forbidden", constants.TeacherAndAbove...)

	r := api.Group("/syllabus")

	// admin/coordinator
	r.Post("/admin/subject", g.Staff, staff, ctl.UpsertSyllabus)
	r.Get("/admin/subject/:subjectId/:month", g.Staff, staff, ctl.GetBySubjectAndMonth)
	r.Put("/admin/:id", g.Staff, staff, ctl.UpdateSyllabus)

	// teachers
	r.Post("/subject", g.Teacher, teacher, ctl.UpsertSyllabus)
	r.Get("/subject/:subjectId/:month", g.Teacher, teacher, ctl.GetBySubjectAndMonth)
	r.Put("/:id", g.Teacher, teacher, ctl.UpdateSyllabus)
	r.Patch(subtopicPath+"/complete", g.Teacher, teacher, ctl.MarkSubtopicComplete)

	r.Get("/", g.Staff, staff, ctl.GetAllSyllabus)
	r.Delete("/:id", g.Staff, staff, ctl.DeleteSyllabus)
	r.Patch("/:id/approve", g.Staff, approver, ctl.ApproveSyllabus)
	r.Patch(subtopicPath+"/approve", g.Staff, approver, ctl.ApproveSubtopic)
	r.Patch(topicPath+"/approve", g.Staff, approver, ctl.ApproveTopic)
}
