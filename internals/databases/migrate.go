package database

import (
	"gorm.io/gorm"

	courseModel "cftl_backend/internals/features/academics/courses/model"
	subjectModel "cftl_backend/internals/features/academics/subjects/model"
	syllabusModel "cftl_backend/internals/features/academics/syllabus/model"
	paymentRequestModel "cftl_backend/internals/features/finance/payment_requests/model"
	paymentModel "cftl_backend/internals/features/finance/payments/model"
	enrollmentModel "cftl_backend/internals/features/students/enrollments/model"
	registrationModel "cftl_backend/internals/features/students/registration_requests/model"
	studentModel "cftl_backend/internals/features/students/students/model"
	adminModel "cftl_backend/internals/features/users/admins/model"
	parentModel "cftl_backend/internals/features/users/parents/model"
	teacherModel "cftl_backend/internals/features/users/teachers/model"
)

// Models lists every table owned by this service.
func Models() []any {
	return []any{
		&adminModel.Admin{},
		&adminModel.AdminInvite{},
		&teacherModel.Teacher{},
		&parentModel.Parent{},
		&courseModel.Course{},
		&subjectModel.Subject{},
		&syllabusModel.Syllabus{},
		&studentModel.Student{},
		&studentModel.Counter{},
		&enrollmentModel.Enrollment{},
		&registrationModel.RegistrationRequest{},
		&registrationModel.Setting{},
		&paymentModel.Payment{},
		&paymentRequestModel.PaymentRequest{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
