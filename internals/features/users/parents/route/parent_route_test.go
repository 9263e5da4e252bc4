package route_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	studentModel "cftl_backend/internals/features/students/students/model"
	"cftl_backend/internals/features/users/parents/model"
	"cftl_backend/internals/features/users/parents/route"
	"cftl_backend/internals/features/users/parents/service"
	"cftl_backend/internals/testutil"
)

const motherNIC = "198512345678"

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	db := testutil.NewDB(t)
	require.NoError(t, service.EnsureParent(db, studentModel.Guardian{Name: "Kamala Perera", NIC: motherNIC}))
	app := testutil.NewApp()
	route.ParentRoutes(app.Group("/api"), db, testutil.Guards(db), testutil.ParentSecret, time.Hour, nil)
	return app, db
}

func login(t *testing.T, app *fiber.App, nic, password string) testutil.Response {
	return testutil.Request(t, app, "POST", "/api/parents/login", "", map[string]any{"nic": nic, "password": password})
}

func token(t *testing.T, app *fiber.App) string {
	res := login(t, app, motherNIC, motherNIC)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	tok, _ := res.Data()["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func TestLoginWithDefaultPassword(t *testing.T) {
	app, db := setup(t)

	res := login(t, app, motherNIC, motherNIC)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	parent, _ := res.Data()["parent"].(map[string]any)
	assert.Equal(t, "Kamala Perera", parent["name"])
	assert.NotEmpty(t, res.Data()["expiresAt"])

	var m model.Parent
	require.NoError(t, db.First(&m, "parent_nic = ?", motherNIC).Error)
	assert.NotNil(t, m.ParentLastLoginAt)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app, _ := setup(t)

	res := login(t, app, motherNIC, "wrong")
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)
	assert.Equal(t, "Invalid credentials", res.Message())

	res = login(t, app, "200012345678", "200012345678")
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)

	res = login(t, app, "abc", "x")
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
}

func TestLoginIsRateLimited(t *testing.T) {
	app, _ := setup(t)

	for i := 0; i < 5; i++ {
		res := login(t, app, motherNIC, "wrong")
		require.Equal(t, fiber.StatusUnauthorized, res.Status)
	}
	res := login(t, app, motherNIC, motherNIC)
	assert.Equal(t, fiber.StatusTooManyRequests, res.Status)
}

func TestParentSeesOnlyOwnStudentsAndPayments(t *testing.T) {
	app, db := setup(t)
	mine := testutil.SeedStudent(t, db, "STD0001", "Nimal Perera", motherNIC)
	other := testutil.SeedStudent(t, db, "STD0002", "Sunil Silva", "197012345678")
	course := testutil.SeedOLCourse(t, db, testutil.CoordinatorEmail, 60000, nil, nil)
	testutil.SeedPayment(t, db, mine, course, "2026-01", 10000)
	testutil.SeedPayment(t, db, other, course, "2026-01", 10000)

	tok := token(t, app)

	res := testutil.Request(t, app, "GET", "/api/parents/students", tok, nil)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	require.Len(t, res.List(), 1)
	assert.Equal(t, "STD0001", res.List()[0]["registrationNo"])

	res = testutil.Request(t, app, "GET", "/api/parents/payments", tok, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	require.Len(t, res.List(), 1)
	assert.Equal(t, mine.StudentID.String(), res.List()[0]["studentId"])

	res = testutil.Request(t, app, "GET", "/api/parents/me", tok, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, motherNIC, res.Data()["nic"])
}

func TestParentRoutesNeedToken(t *testing.T) {
	app, _ := setup(t)

	res := testutil.Request(t, app, "GET", "/api/parents/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)

	res = testutil.Request(t, app, "GET", "/api/parents/me", testutil.AdminToken, nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)
}

func TestChangePassword(t *testing.T) {
	app, _ := setup(t)
	tok := token(t, app)

	res := testutil.Request(t, app, "PUT", "/api/parents/password", tok,
		map[string]any{"currentPassword": "nope", "newPassword": "secret123"})
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)

	res = testutil.Request(t, app, "PUT", "/api/parents/password", tok,
		map[string]any{"currentPassword": motherNIC, "newPassword": "123"})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = testutil.Request(t, app, "PUT", "/api/parents/password", tok,
		map[string]any{"currentPassword": motherNIC, "newPassword": "secret123"})
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))

	res = login(t, app, motherNIC, "secret123")
	assert.Equal(t, fiber.StatusOK, res.Status)
}
