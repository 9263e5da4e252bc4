package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	"cftl_backend/internals/features/students/students/controller"
	"cftl_backend/internals/helpers/storage"
	authMw "cftl_backend/internals/middlewares/auth"
)

func StudentRoutes(api fiber.Router, db *gorm.DB, g authMw.Guards, store storage.ObjectStorage) {
	ctl := &controller.StudentController{DB: db, Storage: store}

	r := api.Group("/students", g.Staff, authMw.OnlyRoles(constants.ErrInsufficientRole, constants.StaffRoles...))
	r.Get("/", ctl.GetAllStudents)
	r.Get("/latest-regno", ctl.GetLatestRegistrationNo)
	r.Get("/:id", ctl.GetStudentByID)
	r.Post("/", ctl.CreateStudent)
	r.Put("/:id", ctl.UpdateStudent)
	r.Delete("/:id", ctl.DeleteStudent)
}
