package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"cftl_backend/internals/constants"
	courseModel "cftl_backend/internals/features/academics/courses/model"
	subjectModel "cftl_backend/internals/features/academics/subjects/model"
	paymentModel "cftl_backend/internals/features/finance/payments/model"
	studentModel "cftl_backend/internals/features/students/students/model"
	"cftl_backend/internals/seeds/counters"
)

func SeedSubject(t *testing.T, db *gorm.DB, name, program string, stream *string) subjectModel.Subject {
	t.Helper()
	m := subjectModel.Subject{SubjectName: name, SubjectProgram: program, SubjectStream: stream}
	require.NoError(t, db.Create(&m).Error)
	return m
}

// SeedALCourse creates a one-year AL course with a biology stream.
func SeedALCourse(t *testing.T, db *gorm.DB, coordinator string, totalFee int64, common []string, biology []string) courseModel.Course {
	t.Helper()
	m := courseModel.Course{
		CourseName: "AL Science", CourseProgram: "AL", CourseYear: "2026",
		CourseDuration: constants.DurationOneYear, CourseCoordinatorEmail: coordinator, CourseTotalFee: totalFee,
		CourseStartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		CourseEndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		CourseMandatorySubjects: datatypes.JSONSlice[string]{},
		CourseOptionalSubjects:  datatypes.JSONSlice[string]{},
		CourseCommonSubjects:    datatypes.JSONSlice[string](common),
		CourseStreams:           datatypes.NewJSONType(courseModel.CourseStreams{"biology": biology}),
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

// SeedOLCourse creates a six-month OL course.
func SeedOLCourse(t *testing.T, db *gorm.DB, coordinator string, totalFee int64, mandatory, optional []string) courseModel.Course {
	t.Helper()
	m := courseModel.Course{
		CourseName: "OL Classes", CourseProgram: "OL", CourseYear: "2026",
		CourseDuration: constants.DurationSixMonths, CourseCoordinatorEmail: coordinator, CourseTotalFee: totalFee,
		CourseStartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		CourseEndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		CourseMandatorySubjects: datatypes.JSONSlice[string](mandatory),
		CourseOptionalSubjects:  datatypes.JSONSlice[string](optional),
		CourseCommonSubjects:    datatypes.JSONSlice[string]{},
		CourseStreams:           datatypes.NewJSONType(courseModel.CourseStreams{}),
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func StrPtr(s string) *string { return &s }

// SeedStudent creates a student whose mother carries motherNIC.
func SeedStudent(t *testing.T, db *gorm.DB, regNo, name, motherNIC string) studentModel.Student {
	t.Helper()
	m := studentModel.Student{
		StudentRegistrationNo: regNo,
		StudentFullName:       name,
		StudentMother:         datatypes.NewJSONType(studentModel.Guardian{Name: "Mother " + name, NIC: motherNIC}),
		StudentFather:         datatypes.NewJSONType(studentModel.Guardian{}),
		StudentNominee:        datatypes.NewJSONType(studentModel.Guardian{}),
		StudentFees:           datatypes.NewJSONType(studentModel.StudentFees{}),
		StudentSubjects:       datatypes.JSONSlice[string]{},
		StudentPreferences:    datatypes.NewJSONType(studentModel.EnrollmentPreferences{}),
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

// SeedPayment creates an unpaid installment.
func SeedPayment(t *testing.T, db *gorm.DB, student studentModel.Student, course courseModel.Course, month string, due int64) paymentModel.Payment {
	t.Helper()
	m := paymentModel.Payment{
		PaymentStudentID:       student.StudentID,
		PaymentCourseID:        course.CourseID,
		PaymentMonth:           month,
		PaymentAmountDue:       due,
		PaymentRemainingAmount: due,
		PaymentStatus:          constants.PaymentUnpaid,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

// SeedCounter initialises the student registration counter.
func SeedCounter(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, counters.SeedStudentCounter(db))
}
