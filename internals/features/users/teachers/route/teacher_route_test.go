package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	subjectModel "cftl_backend/internals/features/academics/subjects/model"
	"cftl_backend/internals/features/users/teachers/model"
	"cftl_backend/internals/features/users/teachers/route"
	"cftl_backend/internals/testutil"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB, model.Teacher) {
	db := testutil.NewDB(t)
	teacher := testutil.SeedStaff(t, db)
	app := testutil.NewApp()
	route.TeacherRoutes(app.Group("/api"), db, testutil.Guards(db))
	return app, db, teacher
}

func TestProfileUpsert(t *testing.T) {
	app, db, _ := setup(t)

	res := testutil.Request(t, app, "GET", "/api/teachers/profile", testutil.StrangerToken, nil)
	assert.Equal(t, fiber.StatusNotFound, res.Status)

	res = testutil.Request(t, app, "POST", "/api/teachers/profile", testutil.StrangerToken, map[string]any{
		"fullName": "New Teacher", "employmentType": "visiting", "salary": 50000,
	})
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "teacher", res.Data()["role"])
	assert.Equal(t, "uid-stranger", res.Data()["uid"])

	res = testutil.Request(t, app, "POST", "/api/teachers/profile", testutil.StrangerToken, map[string]any{"telephone": "0712345678"})
	require.Equal(t, fiber.StatusOK, res.Status)

	var m model.Teacher
	require.NoError(t, db.First(&m, "teacher_email = ?", testutil.StrangerEmail).Error)
	assert.Equal(t, "New Teacher", m.TeacherFullName)
	assert.Equal(t, "0712345678", m.TeacherTelephone)

	var n int64
	db.Model(&model.Teacher{}).Where("teacher_email = ?", testutil.StrangerEmail).Count(&n)
	assert.EqualValues(t, 1, n)
}

func TestCreateTeacher(t *testing.T) {
	app, _, _ := setup(t)

	body := map[string]any{"email": "Second@cftl.lk", "fullName": "Second Teacher"}
	res := testutil.Request(t, app, "POST", "/api/teachers", testutil.CoordinatorToken, body)
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	res = testutil.Request(t, app, "POST", "/api/teachers", testutil.AdminToken, body)
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "second@cftl.lk", res.Data()["email"])
	assert.Equal(t, []any{}, res.Data()["assignedSubjects"])

	res = testutil.Request(t, app, "POST", "/api/teachers", testutil.AdminToken, body)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "Email already exists", res.Message())

	res = testutil.Request(t, app, "GET", "/api/teachers", testutil.CoordinatorToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Len(t, res.List(), 2)
}

func TestUpdateTeacher(t *testing.T) {
	app, db, teacher := setup(t)
	other := model.Teacher{TeacherEmail: "other@cftl.lk", TeacherFullName: "Other", TeacherRole: "teacher"}
	require.NoError(t, db.Create(&other).Error)
	path := "/api/teachers/" + teacher.TeacherID.String()

	res := testutil.Request(t, app, "PUT", path, testutil.AdminToken, map[string]any{"email": "other@cftl.lk"})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "Email already in use by another teacher", res.Message())

	res = testutil.Request(t, app, "PUT", path, testutil.AdminToken, map[string]any{"fullName": "Renamed", "role": "admin"})
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "Renamed", res.Data()["fullName"])
	assert.Equal(t, "teacher", res.Data()["role"])

	res = testutil.Request(t, app, "PUT", path, testutil.AdminToken, map[string]any{"assignedSubjects": "bio"})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = testutil.Request(t, app, "GET", "/api/teachers/"+other.TeacherID.String(), testutil.AdminToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	res = testutil.Request(t, app, "GET", "/api/teachers/not-a-uuid", testutil.AdminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}

func TestAssignSubjectsSyncsReverseIndex(t *testing.T) {
	app, db, teacher := setup(t)
	bio := testutil.SeedSubject(t, db, "Biology", "AL", testutil.StrPtr("biology"))
	chem := testutil.SeedSubject(t, db, "Chemistry", "AL", testutil.StrPtr("biology"))
	phy := testutil.SeedSubject(t, db, "Physics", "AL", testutil.StrPtr("biology"))
	path := "/api/teachers/" + teacher.TeacherID.String() + "/assign-subjects"
	tid := teacher.TeacherID.String()

	res := testutil.Request(t, app, "PUT", path, testutil.AdminToken, map[string]any{
		"assignedSubjects": []string{bio.SubjectID.String(), chem.SubjectID.String()},
	})
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))

	teacherIDs := func(id any) []string {
		var s subjectModel.Subject
		require.NoError(t, db.First(&s, "subject_id = ?", id).Error)
		return []string(s.SubjectTeacherIDs)
	}
	assert.Equal(t, []string{tid}, teacherIDs(bio.SubjectID))
	assert.Equal(t, []string{tid}, teacherIDs(chem.SubjectID))

	res = testutil.Request(t, app, "PUT", path, testutil.AdminToken, map[string]any{
		"assignedSubjects": []string{chem.SubjectID.String(), phy.SubjectID.String()},
	})
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Empty(t, teacherIDs(bio.SubjectID))
	assert.Equal(t, []string{tid}, teacherIDs(chem.SubjectID))
	assert.Equal(t, []string{tid}, teacherIDs(phy.SubjectID))

	res = testutil.Request(t, app, "GET", "/api/teachers/"+tid+"/subjects", testutil.CoordinatorToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Len(t, res.List(), 2)

	res = testutil.Request(t, app, "PUT", path, testutil.AdminToken, map[string]any{
		"assignedSubjects": []string{"00000000-0000-0000-0000-000000000001"},
	})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "One or more subject IDs are invalid", res.Message())

	res = testutil.Request(t, app, "PUT", path, testutil.AdminToken, map[string]any{})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = testutil.Request(t, app, "DELETE", "/api/teachers/"+tid, testutil.AdminToken, nil)
	assert.Equal(t, fiber.StatusNoContent, res.Status)
	assert.Empty(t, teacherIDs(chem.SubjectID))
}
