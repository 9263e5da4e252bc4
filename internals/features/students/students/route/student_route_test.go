package route_test

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cftl_backend/internals/features/students/students/model"
	"cftl_backend/internals/features/students/students/route"
	parentModel "cftl_backend/internals/features/users/parents/model"
	"cftl_backend/internals/helpers/storage"
	"cftl_backend/internals/testutil"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB, *storage.MemoryStorage) {
	db := testutil.NewDB(t)
	testutil.SeedStaff(t, db)
	testutil.SeedCounter(t, db)
	store := storage.NewMemoryStorage("https://cdn.test")
	app := testutil.NewApp()
	route.StudentRoutes(app.Group("/api"), db, testutil.Guards(db), store)
	return app, db, store
}

func studentData() map[string]any {
	return map[string]any{
		"fullName":        "Nimal Perera",
		"nameInitials":    "N. Perera",
		"nic":             "200512345678",
		"dob":             "2005-04-12",
		"email":           "Nimal@Example.com",
		"telephone":       "0771234567",
		"registrationFee": "2500",
		"monthlyFee":      10000,
		"mother":          map[string]any{"name": "Kamala Perera", "nic": "197512345678"},
		"father":          map[string]any{"name": "Sunil Perera", "nic": "197012345V"},
		"subjects":        []string{"bio", "chem"},
	}
}

func create(t *testing.T, app *fiber.App, data map[string]any, files ...testutil.File) testutil.Response {
	return testutil.Multipart(t, app, "POST", "/api/students", testutil.AdminToken,
		map[string]string{"data": testutil.MustJSON(t, data)}, files...)
}

func TestCreateStudentAllocatesRegistrationNumbers(t *testing.T) {
	app, db, _ := setup(t)

	res := create(t, app, studentData())
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "STD0001", res.Data()["registrationNo"])

	data := studentData()
	data["nic"] = "200612345678"
	res = create(t, app, data)
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "STD0002", res.Data()["registrationNo"])

	var m model.Student
	require.NoError(t, db.First(&m, "student_registration_no = ?", "STD0001").Error)
	assert.Equal(t, "nimal@example.com", m.StudentEmail)
	assert.Equal(t, int64(2500), m.StudentFees.Data().RegistrationFee)
	assert.Equal(t, "197512345678", m.StudentMother.Data().NIC)

	res = testutil.Request(t, app, "GET", "/api/students/latest-regno", testutil.CoordinatorToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, "STD0002", res.Data()["registrationNo"])
}

func TestCreateStudentCreatesParents(t *testing.T) {
	app, db, _ := setup(t)

	res := create(t, app, studentData())
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	res = create(t, app, studentData())
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))

	var parents []parentModel.Parent
	require.NoError(t, db.Order("parent_nic").Find(&parents).Error)
	require.Len(t, parents, 2)
	assert.Equal(t, "197012345V", parents[0].ParentNIC)
	assert.Equal(t, "Kamala Perera", parents[1].ParentName)
}

func TestCreateStudentValidation(t *testing.T) {
	app, _, _ := setup(t)

	res := testutil.Multipart(t, app, "POST", "/api/students", testutil.AdminToken,
		map[string]string{"data": "{not json"})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "Invalid JSON in `data` field", res.Message())

	data := studentData()
	data["mother"] = map[string]any{"name": "X", "nic": "12345"}
	res = create(t, app, data)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "Invalid mother NIC format", res.Message())

	data = studentData()
	data["nic"] = "abc"
	res = create(t, app, data)
	assert.Equal(t, "Invalid student NIC format", res.Message())

	for _, fee := range []any{"2500.75", 2500.75, "99999999999999999999"} {
		data = studentData()
		data["registrationFee"] = fee
		res = create(t, app, data)
		assert.Equal(t, fiber.StatusBadRequest, res.Status, fee)
		assert.Equal(t, "Invalid JSON in `data` field", res.Message(), fee)
	}
}

func TestCreateStudentWithoutCounter(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedStaff(t, db)
	app := testutil.NewApp()
	route.StudentRoutes(app.Group("/api"), db, testutil.Guards(db), storage.NewMemoryStorage(""))

	res := create(t, app, studentData())
	assert.Equal(t, fiber.StatusInternalServerError, res.Status)
	assert.Equal(t, "Student counter not initialized.", res.Message())

	var n int64
	require.NoError(t, db.Model(&parentModel.Parent{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateStudentUploadsPicture(t *testing.T) {
	app, _, store := setup(t)

	res := create(t, app, studentData(), testutil.File{
		Field: "image", Filename: "me.png", Content: testutil.SamplePNG(t, 800, 600),
	})
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))

	res = testutil.Request(t, app, "GET", "/api/students/"+res.Data()["id"].(string), testutil.AdminToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	url, _ := res.Data()["profilePictureUrl"].(string)
	require.True(t, strings.HasPrefix(url, "https://cdn.test/students/"), url)
	assert.True(t, strings.HasSuffix(url, ".webp"))

	_, ct, ok := store.Get(strings.TrimPrefix(url, "https://cdn.test/"))
	assert.True(t, ok)
	assert.Equal(t, "image/webp", ct)
}

func TestUpdateStudent(t *testing.T) {
	app, db, _ := setup(t)
	res := create(t, app, studentData())
	require.Equal(t, fiber.StatusCreated, res.Status)
	id := res.Data()["id"].(string)

	res = testutil.Multipart(t, app, "PUT", "/api/students/"+id, testutil.AdminToken, map[string]string{
		"data": testutil.MustJSON(t, map[string]any{
			"school":  "Royal College",
			"nominee": map[string]any{"name": "Uncle", "nic": "196012345678"},
		}),
	})
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "Royal College", res.Data()["school"])
	assert.Equal(t, "Nimal Perera", res.Data()["fullName"])

	var n int64
	require.NoError(t, db.Model(&parentModel.Parent{}).Where("parent_nic = ?", "196012345678").Count(&n).Error)
	assert.Equal(t, int64(1), n)

	res = testutil.Multipart(t, app, "PUT", "/api/students/"+id, testutil.AdminToken, map[string]string{
		"telephone":  "0710000000",
		"monthlyFee": "12000",
	})
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "0710000000", res.Data()["telephone"])
	assert.Equal(t, float64(12000), res.Data()["monthlyFee"])

	res = testutil.Request(t, app, "PUT", "/api/students/"+id, testutil.AdminToken,
		map[string]any{"mother": map[string]any{"nic": "bad"}})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "Invalid NIC format in mother.nic", res.Message())
}

func TestListAndDeleteStudents(t *testing.T) {
	app, _, _ := setup(t)
	for _, nic := range []string{"200112345678", "200212345678", "200312345678"} {
		data := studentData()
		data["nic"] = nic
		require.Equal(t, fiber.StatusCreated, create(t, app, data).Status)
	}

	res := testutil.Request(t, app, "GET", "/api/students?per_page=2", testutil.CoordinatorToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	require.Len(t, res.List(), 2)
	assert.Equal(t, "STD0003", res.List()[0]["registrationNo"])
	meta, _ := res.Body["pagination"].(map[string]any)
	assert.Equal(t, float64(3), meta["total"])

	res = testutil.Request(t, app, "GET", "/api/students?q=200212", testutil.CoordinatorToken, nil)
	require.Len(t, res.List(), 1)
	id := res.List()[0]["id"].(string)

	res = testutil.Request(t, app, "DELETE", "/api/students/"+id, testutil.AdminToken, nil)
	assert.Equal(t, fiber.StatusNoContent, res.Status)
	res = testutil.Request(t, app, "GET", "/api/students/"+id, testutil.AdminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, res.Status)

	res = testutil.Request(t, app, "GET", "/api/students", testutil.TeacherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, res.Status)
}
