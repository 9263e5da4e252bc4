package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cftl_backend/internals/features/academics/syllabus/model"
	"cftl_backend/internals/features/academics/syllabus/route"
	"cftl_backend/internals/testutil"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB, uuid.UUID) {
	db := testutil.NewDB(t)
	testutil.SeedStaff(t, db)
	subject := testutil.SeedSubject(t, db, "Biology", "AL", testutil.StrPtr("biology"))
	app := testutil.NewApp()
	route.SyllabusRoutes(app.Group("/api"), db, testutil.Guards(db))
	return app, db, subject.SubjectID
}

func payload(subjectID uuid.UUID, topic string) map[string]any {
	return map[string]any{
		"subjectId": subjectID.String(),
		"month":     "2026-03",
		"weeks": []map[string]any{
			{"weekNumber": 1, "topics": []map[string]any{
				{"title": topic, "status": "pending", "subtopics": []map[string]any{
					{"title": "Structure", "status": "pending"},
					{"title": "Division", "status": "pending"},
				}},
			}},
		},
	}
}

func load(t *testing.T, db *gorm.DB, id string) model.Syllabus {
	t.Helper()
	var m model.Syllabus
	require.NoError(t, db.First(&m, "syllabus_id = ?", id).Error)
	return m
}

func TestUpsertUsesDeterministicID(t *testing.T) {
	app, db, subjectID := setup(t)
	wantID := subjectID.String() + "_2026-03"

	res := testutil.Request(t, app, "POST", "/api/syllabus/subject", testutil.TeacherToken, payload(subjectID, "Cells"))
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, wantID, res.Data()["id"])
	assert.Equal(t, testutil.TeacherEmail, load(t, db, wantID).SyllabusCreatedBy)

	res = testutil.Request(t, app, "POST", "/api/syllabus/admin/subject", testutil.CoordinatorToken, payload(subjectID, "Genetics"))
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))

	var n int64
	db.Model(&model.Syllabus{}).Count(&n)
	assert.EqualValues(t, 1, n)
	m := load(t, db, wantID)
	assert.Equal(t, "Genetics", m.SyllabusWeeks[0].Topics[0].Title)
	assert.Equal(t, testutil.CoordinatorEmail, m.SyllabusCreatedBy)
}

func TestUpsertRejectsBadPayloads(t *testing.T) {
	app, _, subjectID := setup(t)

	res := testutil.Request(t, app, "POST", "/api/syllabus/subject", testutil.TeacherToken, payload(uuid.New(), "Cells"))
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "Subject not found", res.Message())

	noWeeks := payload(subjectID, "Cells")
	delete(noWeeks, "weeks")
	noSubtopics := payload(subjectID, "Cells")
	noSubtopics["weeks"] = []map[string]any{{"weekNumber": 1, "topics": []map[string]any{{"title": "Cells", "status": "pending"}}}}
	badMonth := payload(subjectID, "Cells")
	badMonth["month"] = "March"
	stringWeek := payload(subjectID, "Cells")
	stringWeek["weeks"] = []map[string]any{{"weekNumber": "one", "topics": []map[string]any{}}}

	for name, body := range map[string]map[string]any{
		"no weeks":     noWeeks,
		"no subtopics": noSubtopics,
		"bad month":    badMonth,
		"string week":  stringWeek,
	} {
		res := testutil.Request(t, app, "POST", "/api/syllabus/subject", testutil.TeacherToken, body)
		assert.Equal(t, fiber.StatusBadRequest, res.Status, name)
	}
}

func TestGuardsPerPath(t *testing.T) {
	app, _, subjectID := setup(t)

	res := testutil.Request(t, app, "POST", "/api/syllabus/subject", testutil.CoordinatorToken, payload(subjectID, "Cells"))
	assert.Equal(t, fiber.StatusForbidden, res.Status)
	assert.Equal(t, "Not a teacher", res.Message())

	res = testutil.Request(t, app, "POST", "/api/syllabus/admin/subject", testutil.TeacherToken, payload(subjectID, "Cells"))
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	res = testutil.Request(t, app, "GET", "/api/syllabus", testutil.TeacherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	res = testutil.Request(t, app, "GET", "/api/syllabus", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)
}

func TestGetBySubjectAndMonth(t *testing.T) {
	app, _, subjectID := setup(t)
	testutil.Request(t, app, "POST", "/api/syllabus/subject", testutil.TeacherToken, payload(subjectID, "Cells"))

	res := testutil.Request(t, app, "GET", "/api/syllabus/subject/"+subjectID.String()+"/2026-03", testutil.TeacherToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "2026-03", res.Data()["month"])
	assert.Len(t, res.Data()["weeks"], 1)

	res = testutil.Request(t, app, "GET", "/api/syllabus/admin/subject/"+subjectID.String()+"/2026-04", testutil.AdminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
	assert.Equal(t, "No syllabus found", res.Message())

	res = testutil.Request(t, app, "GET", "/api/syllabus", testutil.CoordinatorToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Len(t, res.List(), 1)

	res = testutil.Request(t, app, "GET", "/api/syllabus?subjectId="+subjectID.String(), testutil.CoordinatorToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Len(t, res.List(), 1)

	res = testutil.Request(t, app, "GET", "/api/syllabus?subjectId=abc", testutil.CoordinatorToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "Invalid subjectId", res.Message())
}

func TestUpdateIgnoresIdentityFields(t *testing.T) {
	app, db, subjectID := setup(t)
	res := testutil.Request(t, app, "POST", "/api/syllabus/subject", testutil.TeacherToken, payload(subjectID, "Cells"))
	id := res.Data()["id"].(string)

	patch := payload(uuid.New(), "Ecology")
	patch["month"] = "2027-01"
	res = testutil.Request(t, app, "PUT", "/api/syllabus/admin/"+id, testutil.AdminToken, patch)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))

	m := load(t, db, id)
	assert.Equal(t, subjectID, m.SyllabusSubjectID)
	assert.Equal(t, "2026-03", m.SyllabusMonth)
	assert.Equal(t, "Ecology", m.SyllabusWeeks[0].Topics[0].Title)

	res = testutil.Request(t, app, "PUT", "/api/syllabus/"+subjectID.String()+"_2030-01", testutil.TeacherToken, patch)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}

func TestProgressAndApprovals(t *testing.T) {
	app, db, subjectID := setup(t)
	res := testutil.Request(t, app, "POST", "/api/syllabus/subject", testutil.TeacherToken, payload(subjectID, "Cells"))
	id := res.Data()["id"].(string)
	base := "/api/syllabus/" + id + "/weeks/1/topics/0"

	res = testutil.Request(t, app, "PATCH", base+"/subtopics/1/complete", testutil.TeacherToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	sub := load(t, db, id).SyllabusWeeks[0].Topics[0].Subtopics[1]
	assert.True(t, sub.Completed)
	assert.Equal(t, "completed", sub.Status)
	assert.Equal(t, testutil.TeacherEmail, sub.CompletedBy)

	cases := []struct{ path, msg string }{
		{"/api/syllabus/" + id + "/weeks/9/topics/0/subtopics/0/complete", "Invalid weekNumber"},
		{"/api/syllabus/" + id + "/weeks/1/topics/4/subtopics/0/complete", "Invalid topicIndex"},
		{base + "/subtopics/7/complete", "Invalid subIndex"},
		{base + "/subtopics/x/complete", "Invalid subIndex"},
	}
	for _, tc := range cases {
		res = testutil.Request(t, app, "PATCH", tc.path, testutil.TeacherToken, nil)
		assert.Equal(t, fiber.StatusBadRequest, res.Status, tc.path)
		assert.Equal(t, tc.msg, res.Message(), tc.path)
	}

	res = testutil.Request(t, app, "PATCH", base+"/approve", testutil.TeacherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	res = testutil.Request(t, app, "PATCH", base+"/approve", testutil.CoordinatorToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	topic := load(t, db, id).SyllabusWeeks[0].Topics[0]
	assert.True(t, topic.Approved)
	for _, s := range topic.Subtopics {
		assert.True(t, s.Approved)
		assert.Equal(t, testutil.CoordinatorEmail, s.ApprovedBy)
	}

	res = testutil.Request(t, app, "PATCH", "/api/syllabus/"+id+"/approve", testutil.AdminToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	m := load(t, db, id)
	assert.True(t, m.SyllabusApproved)
	require.NotNil(t, m.SyllabusApprovedBy)
	assert.Equal(t, testutil.AdminEmail, *m.SyllabusApprovedBy)

	res = testutil.Request(t, app, "PATCH", "/api/syllabus/nope/approve", testutil.AdminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}

func TestDeleteSyllabus(t *testing.T) {
	app, db, subjectID := setup(t)
	res := testutil.Request(t, app, "POST", "/api/syllabus/subject", testutil.TeacherToken, payload(subjectID, "Cells"))
	id := res.Data()["id"].(string)

	res = testutil.Request(t, app, "DELETE", "/api/syllabus/"+id, testutil.TeacherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	res = testutil.Request(t, app, "DELETE", "/api/syllabus/"+id, testutil.CoordinatorToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	var n int64
	db.Model(&model.Syllabus{}).Count(&n)
	assert.Zero(t, n)

	res = testutil.Request(t, app, "DELETE", "/api/syllabus/"+id, testutil.CoordinatorToken, nil)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}
