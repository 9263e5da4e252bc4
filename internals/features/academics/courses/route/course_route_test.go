package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cftl_backend/internals/features/academics/courses/model"
	"cftl_backend/internals/features/academics/courses/route"
	enrollmentModel "cftl_backend/internals/features/students/enrollments/model"
	"cftl_backend/internals/testutil"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	db := testutil.NewDB(t)
	testutil.SeedStaff(t, db)
	app := testutil.NewApp()
	route.CourseRoutes(app.Group("/api"), db, testutil.Guards(db))
	return app, db
}

func alCourse() map[string]any {
	return map[string]any{
		"name": "AL 2026 Science", "program": "al", "year": "2026", "duration": "1 Year",
		"coordinatorEmail": testutil.CoordinatorEmail, "totalFee": 120000,
		"startDate": "2026-01-01", "endDate": "2026-12-31",
		"commonSubjects": []string{"gen-english"},
		"streams":        map[string][]string{"biology": {"bio", "chem", "phy"}},
	}
}

func TestCreateCourse(t *testing.T) {
	app, db := setup(t)

	res := testutil.Request(t, app, "POST", "/api/courses", testutil.AdminToken, alCourse())
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))

	var m model.Course
	require.NoError(t, db.First(&m, "course_id = ?", res.Data()["id"]).Error)
	assert.Equal(t, "AL", m.CourseProgram)
	assert.Equal(t, 12, m.DurationMonths())
	assert.Equal(t, []string{"bio", "chem", "phy"}, m.Streams()["biology"])
}

func TestCreateCourseValidation(t *testing.T) {
	app, _ := setup(t)

	cases := map[string]func(map[string]any){
		"missing name":   func(b map[string]any) { delete(b, "name") },
		"bad program":    func(b map[string]any) { b["program"] = "XL" },
		"no streams":     func(b map[string]any) { delete(b, "streams") },
		"empty streams":  func(b map[string]any) { b["streams"] = map[string][]string{} },
		"unknown stream": func(b map[string]any) { b["streams"] = map[string][]string{"music": {"x"}} },
		"ol without lists": func(b map[string]any) {
			b["program"] = "OL"
		},
		"bad date": func(b map[string]any) { b["startDate"] = "01/01/2026" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			body := alCourse()
			mutate(body)
			res := testutil.Request(t, app, "POST", "/api/courses", testutil.AdminToken, body)
			assert.Equal(t, fiber.StatusBadRequest, res.Status, string(res.Raw))
		})
	}
}

func TestCourseRoleChecks(t *testing.T) {
	app, _ := setup(t)

	res := testutil.Request(t, app, "POST", "/api/courses", testutil.CoordinatorToken, alCourse())
	assert.Equal(t, fiber.StatusForbidden, res.Status)
	assert.Equal(t, "Forbidden: Insufficient role", res.Message())

	res = testutil.Request(t, app, "POST", "/api/courses", "", alCourse())
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)
}

func TestListAndCoordinatorCourses(t *testing.T) {
	app, _ := setup(t)

	require.Equal(t, fiber.StatusCreated, testutil.Request(t, app, "POST", "/api/courses", testutil.AdminToken, alCourse()).Status)
	other := alCourse()
	other["coordinatorEmail"] = "someone@cftl.lk"
	require.Equal(t, fiber.StatusCreated, testutil.Request(t, app, "POST", "/api/courses", testutil.AdminToken, other).Status)

	res := testutil.Request(t, app, "GET", "/api/courses", "", nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Len(t, res.List(), 2)

	res = testutil.Request(t, app, "GET", "/api/courses/coordinator/courses", testutil.CoordinatorToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	list := res.List()
	require.Len(t, list, 1)
	assert.Equal(t, "2026-01-01", list[0]["startDate"])
}

func TestUpdateCourse(t *testing.T) {
	app, db := setup(t)
	id := testutil.Request(t, app, "POST", "/api/courses", testutil.AdminToken, alCourse()).Data()["id"].(string)

	res := testutil.Request(t, app, "PUT", "/api/courses/"+id, testutil.AdminToken, map[string]any{
		"totalFee": 60000, "duration": "6 Months", "endDate": "2026-06-30",
	})
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))

	var m model.Course
	require.NoError(t, db.First(&m, "course_id = ?", id).Error)
	assert.EqualValues(t, 60000, m.CourseTotalFee)
	assert.Equal(t, 6, m.DurationMonths())

	res = testutil.Request(t, app, "PUT", "/api/courses/"+id, testutil.AdminToken, map[string]any{"program": "OL"})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = testutil.Request(t, app, "PUT", "/api/courses/00000000-0000-0000-0000-000000000000", testutil.AdminToken, map[string]any{"name": "x"})
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}

func TestDeleteCourseDeactivatesEnrollments(t *testing.T) {
	app, db := setup(t)
	id := testutil.Request(t, app, "POST", "/api/courses", testutil.AdminToken, alCourse()).Data()["id"].(string)

	var course model.Course
	require.NoError(t, db.First(&course, "course_id = ?", id).Error)
	enr := enrollmentModel.Enrollment{
		EnrollmentCourseID: course.CourseID, EnrollmentStudentID: course.CourseID,
		EnrollmentStatus: "active", EnrollmentSubjects: []string{},
	}
	require.NoError(t, db.Create(&enr).Error)

	res := testutil.Request(t, app, "DELETE", "/api/courses/"+id, testutil.AdminToken, nil)
	assert.Equal(t, fiber.StatusNoContent, res.Status)

	require.NoError(t, db.First(&enr, "enrollment_id = ?", enr.EnrollmentID).Error)
	assert.Equal(t, "inactive", enr.EnrollmentStatus)

	res = testutil.Request(t, app, "DELETE", "/api/courses/"+id, testutil.AdminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}
