package service

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cftl_backend/internals/constants"
	courseModel "cftl_backend/internals/features/academics/courses/model"
	paymentModel "cftl_backend/internals/features/finance/payments/model"
	"cftl_backend/internals/features/students/enrollments/model"
	studentModel "cftl_backend/internals/features/students/students/model"
	"cftl_backend/internals/helpers/dbtime"
)

const (
	maxOLOptionalSubjects = 4
	alStreamSubjects      = 3
)

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func allIn(chosen, allowed []string) bool {
	for _, s := range chosen {
		if !contains(allowed, s) {
			return false
		}
	}
	return true
}

// ResolveSubjects checks the chosen subjects against the course and returns
// the full subject list (common/mandatory + chosen) and the stream to store.
func ResolveSubjects(course *courseModel.Course, stream string, chosen []string) ([]string, *string, error) {
	switch course.CourseProgram {
	case constants.ProgramAL:
		stream = strings.ToLower(strings.TrimSpace(stream))
		if stream == "" {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "A stream is required for AL courses.")
		}
		streamSubjects, ok := course.Streams()[stream]
		if !ok {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid stream for this course.")
		}
		if len(chosen) != alStreamSubjects {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "You must choose exactly 3 subjects for an AL stream.")
		}
		if !allIn(chosen, streamSubjects) {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "One or more chosen subjects are not valid for the selected stream.")
		}
		out := append(append([]string{}, course.CourseCommonSubjects...), chosen...)
		return out, &stream, nil

	case constants.ProgramOL:
		if len(chosen) > maxOLOptionalSubjects {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "You can choose a maximum of 4 optional subjects for OL.")
		}
		if !allIn(chosen, course.CourseOptionalSubjects) {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "One or more chosen subjects are not in the optional list for this course.")
		}
		out := append(append([]string{}, course.CourseMandatorySubjects...), chosen...)
		return out, nil, nil
	}
	return append([]string{}, chosen...), nil, nil
}

// MonthlyFee splits the course fee evenly, rounding down.
func MonthlyFee(course *courseModel.Course) int64 {
	return course.CourseTotalFee / int64(course.DurationMonths())
}

// Schedule builds one unpaid installment per course month, starting at from's month.
func Schedule(e *model.Enrollment, months int, from time.Time) []paymentModel.Payment {
	keys := dbtime.MonthSequence(from, months)
	out := make([]paymentModel.Payment, 0, len(keys))
	enrollmentID := e.EnrollmentID
	for _, month := range keys {
		out = append(out, paymentModel.Payment{
			PaymentStudentID:       e.EnrollmentStudentID,
			PaymentCourseID:        e.EnrollmentCourseID,
			PaymentEnrollmentID:    &enrollmentID,
			PaymentMonth:           month,
			PaymentAmountDue:       e.EnrollmentMonthlyFee,
			PaymentAmountPaid:      0,
			PaymentRemainingAmount: e.EnrollmentMonthlyFee,
			PaymentStatus:          constants.PaymentUnpaid,
		})
	}
	return out
}

// CheckExisting rejects a second active enrollment and re-enrolling into a
// course the student was deactivated from.
func CheckExisting(tx *gorm.DB, studentID, courseID uuid.UUID) error {
	var existing []model.Enrollment
	if err := tx.Where("enrollment_student_id = ?", studentID).Find(&existing).Error; err != nil {
		return err
	}
	for _, e := range existing {
		if e.EnrollmentStatus == constants.EnrollmentActive {
			return fiber.NewError(fiber.StatusBadRequest, "Student already has an active enrollment")
		}
	}
	for _, e := range existing {
		if e.EnrollmentStatus == constants.EnrollmentInactive && e.EnrollmentCourseID == courseID {
			return fiber.NewError(fiber.StatusBadRequest, "Student already has an inactive enrollment in this course")
		}
	}
	return nil
}

// lockStudent holds the student row until the transaction ends so concurrent
// enrollments for the same student run CheckExisting one after the other.
func lockStudent(tx *gorm.DB, studentID uuid.UUID) error {
	var s studentModel.Student
	res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("student_id = ?", studentID).
		Limit(1).Find(&s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}
	return nil
}

// Enroll writes the enrollment and its payment schedule in one transaction.
func Enroll(db *gorm.DB, e *model.Enrollment, months int, now time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := lockStudent(tx, e.EnrollmentStudentID); err != nil {
			return err
		}
		if err := CheckExisting(tx, e.EnrollmentStudentID, e.EnrollmentCourseID); err != nil {
			return err
		}
		e.EnrollmentDate = now
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		payments := Schedule(e, months, now)
		return tx.CreateInBatches(&payments, 50).Error
	})
}
