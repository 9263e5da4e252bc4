package service_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cftl_backend/internals/constants"
	paymentModel "cftl_backend/internals/features/finance/payments/model"
	"cftl_backend/internals/features/students/enrollments/model"
	"cftl_backend/internals/features/students/enrollments/service"
	"cftl_backend/internals/testutil"
)

func TestEnrollLocksStudentAndRejectsSecondActive(t *testing.T) {
	db := testutil.NewDB(t)
	course := testutil.SeedOLCourse(t, db, testutil.CoordinatorEmail, 60000, nil, nil)
	student := testutil.SeedStudent(t, db, "STD0001", "Amal Silva", "197512345678")
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	newEnrollment := func(studentID uuid.UUID) *model.Enrollment {
		return &model.Enrollment{
			EnrollmentStudentID:  studentID,
			EnrollmentCourseID:   course.CourseID,
			EnrollmentStatus:     constants.EnrollmentActive,
			EnrollmentTotalFee:   course.CourseTotalFee,
			EnrollmentMonthlyFee: 10000,
			EnrollmentSubjects:   []string{},
		}
	}

	require.NoError(t, service.Enroll(db, newEnrollment(student.StudentID), 6, now))

	err := service.Enroll(db, newEnrollment(student.StudentID), 6, now)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Equal(t, "Student already has an active enrollment", fe.Message)

	err = service.Enroll(db, newEnrollment(uuid.New()), 6, now)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
	assert.Equal(t, "Student not found", fe.Message)

	var enrollments, payments int64
	db.Model(&model.Enrollment{}).Count(&enrollments)
	db.Model(&paymentModel.Payment{}).Count(&payments)
	assert.EqualValues(t, 1, enrollments)
	assert.EqualValues(t, 6, payments)
}
