package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"cftl_backend/internals/configs"
	courseRoute "cftl_backend/internals/features/academics/courses/route"
	subjectRoute "cftl_backend/internals/features/academics/subjects/route"
	syllabusRoute "cftl_backend/internals/features/academics/syllabus/route"
	paymentRequestRoute "cftl_backend/internals/features/finance/payment_requests/route"
	paymentRoute "cftl_backend/internals/features/finance/payments/route"
	enrollmentRoute "cftl_backend/internals/features/students/enrollments/route"
	registrationRoute "cftl_backend/internals/features/students/registration_requests/route"
	studentRoute "cftl_backend/internals/features/students/students/route"
	uploadRoute "cftl_backend/internals/features/uploads/route"
	adminRoute "cftl_backend/internals/features/users/admins/route"
	parentRoute "cftl_backend/internals/features/users/parents/route"
	teacherRoute "cftl_backend/internals/features/users/teachers/route"
	"cftl_backend/internals/helpers/storage"
	authMw "cftl_backend/internals/middlewares/auth"
)

var startTime time.Time

// Deps are the shared services handed to every feature router.
type Deps struct {
	Config       configs.AppConfig
	Guards       authMw.Guards
	Storage      storage.ObjectStorage
	LimiterStore fiber.Storage // nil → in-memory limiter counters
}

func SetupRoutes(app *fiber.App, db *gorm.DB, d Deps) {
	startTime = time.Now()

	BaseRoutes(app, db)

	api := app.Group("/api")

	configs.Log.Info("mounting user routes")
	adminRoute.AdminRoutes(api, db, d.Guards)
	teacherRoute.TeacherRoutes(api, db, d.Guards)
	parentRoute.ParentRoutes(api, db, d.Guards, d.Config.JWTSecret, d.Config.ParentTokenTTL, d.LimiterStore)

	configs.Log.Info("mounting academic routes")
	courseRoute.CourseRoutes(api, db, d.Guards)
	subjectRoute.SubjectRoutes(api, db, d.Guards)
	syllabusRoute.SyllabusRoutes(api, db, d.Guards)

	configs.Log.Info("mounting student routes")
	studentRoute.StudentRoutes(api, db, d.Guards, d.Storage)
	enrollmentRoute.EnrollmentRoutes(api, db, d.Guards)
	registrationRoute.RegistrationRequestRoutes(api, db, d.Guards, d.LimiterStore)

	configs.Log.Info("mounting finance routes")
	paymentRoute.PaymentRoutes(api, db, d.Guards)
	paymentRequestRoute.PaymentRequestRoutes(api, db, d.Guards, d.Storage)

	uploadRoute.UploadRoutes(api, d.Guards, d.Storage)
}
