package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	courseModel "cftl_backend/internals/features/academics/courses/model"
	"cftl_backend/internals/features/students/enrollments/model"
)

func alCourse() *courseModel.Course {
	return &courseModel.Course{
		CourseProgram:        "AL",
		CourseDuration:       "1 Year",
		CourseTotalFee:       100000,
		CourseCommonSubjects: datatypes.JSONSlice[string]{"gen"},
		CourseStreams: datatypes.NewJSONType(courseModel.CourseStreams{
			"biology": {"bio", "chem", "phy", "agri"},
		}),
	}
}

func olCourse() *courseModel.Course {
	return &courseModel.Course{
		CourseProgram:           "OL",
		CourseDuration:          "6 Months",
		CourseTotalFee:          60001,
		CourseMandatorySubjects: datatypes.JSONSlice[string]{"maths", "sci"},
		CourseOptionalSubjects:  datatypes.JSONSlice[string]{"art", "music", "ict", "tamil", "drama"},
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	return fe.Code
}

func TestResolveSubjectsAL(t *testing.T) {
	subjects, stream, err := ResolveSubjects(alCourse(), " Biology ", []string{"bio", "chem", "phy"})
	require.NoError(t, err)
	assert.Equal(t, []string{"gen", "bio", "chem", "phy"}, subjects)
	require.NotNil(t, stream)
	assert.Equal(t, "biology", *stream)

	cases := map[string]struct {
		stream string
		chosen []string
		msg    string
	}{
		"no stream":    {"", []string{"bio", "chem", "phy"}, "A stream is required for AL courses."},
		"bad stream":   {"maths", []string{"bio", "chem", "phy"}, "Invalid stream for this course."},
		"two subjects": {"biology", []string{"bio", "chem"}, "You must choose exactly 3 subjects for an AL stream."},
		"foreign":      {"biology", []string{"bio", "chem", "econ"}, "One or more chosen subjects are not valid for the selected stream."},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := ResolveSubjects(alCourse(), tc.stream, tc.chosen)
			assert.Equal(t, fiber.StatusBadRequest, statusOf(t, err))
			assert.EqualError(t, err, tc.msg)
		})
	}
}

func TestResolveSubjectsOL(t *testing.T) {
	subjects, stream, err := ResolveSubjects(olCourse(), "", []string{"art"})
	require.NoError(t, err)
	assert.Nil(t, stream)
	assert.Equal(t, []string{"maths", "sci", "art"}, subjects)

	subjects, _, err = ResolveSubjects(olCourse(), "", []string{})
	require.NoError(t, err)
	assert.Equal(t, []string{"maths", "sci"}, subjects)

	_, _, err = ResolveSubjects(olCourse(), "", []string{"art", "music", "ict", "tamil", "drama"})
	assert.EqualError(t, err, "You can choose a maximum of 4 optional subjects for OL.")

	_, _, err = ResolveSubjects(olCourse(), "", []string{"maths"})
	assert.EqualError(t, err, "One or more chosen subjects are not in the optional list for this course.")
}

func TestMonthlyFeeRoundsDown(t *testing.T) {
	assert.Equal(t, int64(10000), MonthlyFee(olCourse()))
	assert.Equal(t, int64(8333), MonthlyFee(alCourse()))
}

func TestScheduleSpansYearBoundary(t *testing.T) {
	e := &model.Enrollment{
		EnrollmentID:         uuid.New(),
		EnrollmentStudentID:  uuid.New(),
		EnrollmentCourseID:   uuid.New(),
		EnrollmentMonthlyFee: 8333,
	}
	from := time.Date(2026, 11, 20, 10, 0, 0, 0, time.UTC)

	rows := Schedule(e, 12, from)
	require.Len(t, rows, 12)
	assert.Equal(t, "2026-11", rows[0].PaymentMonth)
	assert.Equal(t, "2027-01", rows[2].PaymentMonth)
	assert.Equal(t, "2027-10", rows[11].PaymentMonth)
	for _, p := range rows {
		assert.Equal(t, int64(8333), p.PaymentAmountDue)
		assert.Equal(t, int64(8333), p.PaymentRemainingAmount)
		assert.Equal(t, "Unpaid", p.PaymentStatus)
		require.NotNil(t, p.PaymentEnrollmentID)
		assert.Equal(t, e.EnrollmentID, *p.PaymentEnrollmentID)
	}
}
