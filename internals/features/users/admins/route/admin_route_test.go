package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cftl_backend/internals/features/users/admins/model"
	"cftl_backend/internals/features/users/admins/route"
	"cftl_backend/internals/testutil"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	db := testutil.NewDB(t)
	testutil.SeedStaff(t, db)
	app := testutil.NewApp()
	route.AdminRoutes(app.Group("/api"), db, testutil.Guards(db))
	return app, db
}

func TestCreateAdminRequiresInvite(t *testing.T) {
	app, db := setup(t)
	body := map[string]any{"fullName": "New Admin", "nameInitials": "N. Admin", "telephone": "0770000000"}

	res := testutil.Request(t, app, "POST", "/api/admins", testutil.StrangerToken, body)
	assert.Equal(t, fiber.StatusForbidden, res.Status)
	assert.Equal(t, "Not invited", res.Message())

	res = testutil.Request(t, app, "POST", "/api/admins", testutil.TeacherToken, body)
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	require.NoError(t, db.Create(&model.AdminInvite{AdminInviteEmail: testutil.StrangerEmail}).Error)
	res = testutil.Request(t, app, "POST", "/api/admins", testutil.StrangerToken, body)
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.NotEmpty(t, res.Data()["id"])

	var invites int64
	db.Model(&model.AdminInvite{}).Count(&invites)
	assert.Zero(t, invites)

	res = testutil.Request(t, app, "GET", "/api/admins/me", testutil.StrangerToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, "admin", res.Data()["role"])
	assert.Equal(t, testutil.StrangerEmail, res.Data()["email"])
}

func TestCreateAdminDuplicateAndValidation(t *testing.T) {
	app, _ := setup(t)

	res := testutil.Request(t, app, "POST", "/api/admins", testutil.AdminToken, map[string]any{
		"fullName": "Main Admin", "nameInitials": "M. Admin", "telephone": "0771111111",
	})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "Admin with this email already exists", res.Message())

	res = testutil.Request(t, app, "POST", "/api/admins", testutil.AdminToken, map[string]any{"fullName": "X"})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
}

func TestAdminAuthErrors(t *testing.T) {
	app, _ := setup(t)

	res := testutil.Request(t, app, "GET", "/api/admins/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)

	res = testutil.Request(t, app, "GET", "/api/admins/me", "bogus", nil)
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	res = testutil.Request(t, app, "GET", "/api/admins/me", testutil.TeacherToken, nil)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}

func TestCheckInvite(t *testing.T) {
	app, db := setup(t)

	res := testutil.Request(t, app, "GET", "/api/admins/check-invite", "", nil)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = testutil.Request(t, app, "GET", "/api/admins/check-invite?email=someone@cftl.lk", "", nil)
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	require.NoError(t, db.Create(&model.AdminInvite{AdminInviteEmail: "Someone@CFTL.lk"}).Error)
	res = testutil.Request(t, app, "GET", "/api/admins/check-invite?email=SOMEONE@cftl.lk", "", nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, true, res.Data()["invited"])
}

func TestUpdateAndDeleteMe(t *testing.T) {
	app, db := setup(t)

	res := testutil.Request(t, app, "PUT", "/api/admins/me", testutil.CoordinatorToken, map[string]any{
		"telephone": "0779999999", "role": "admin",
	})
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.Equal(t, "0779999999", res.Data()["telephone"])
	assert.Equal(t, "coordinator", res.Data()["role"])

	res = testutil.Request(t, app, "DELETE", "/api/admins/me", testutil.CoordinatorToken, nil)
	assert.Equal(t, fiber.StatusNoContent, res.Status)

	var n int64
	db.Model(&model.Admin{}).Where("admin_email = ?", testutil.CoordinatorEmail).Count(&n)
	assert.Zero(t, n)
}

func TestInvitesAdminOnly(t *testing.T) {
	app, _ := setup(t)

	res := testutil.Request(t, app, "POST", "/api/admins/invites", testutil.CoordinatorToken, map[string]any{"email": "a@cftl.lk"})
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	res = testutil.Request(t, app, "POST", "/api/admins/invites", testutil.AdminToken, map[string]any{"email": "A@cftl.lk"})
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	id := res.Data()["id"].(string)
	assert.Equal(t, "a@cftl.lk", res.Data()["email"])
	assert.Equal(t, testutil.AdminEmail, res.Data()["invitedBy"])

	res = testutil.Request(t, app, "POST", "/api/admins/invites", testutil.AdminToken, map[string]any{"email": "a@cftl.lk"})
	assert.Equal(t, fiber.StatusConflict, res.Status)

	res = testutil.Request(t, app, "GET", "/api/admins/invites", testutil.AdminToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Len(t, res.List(), 1)

	res = testutil.Request(t, app, "DELETE", "/api/admins/invites/"+id, testutil.AdminToken, nil)
	assert.Equal(t, fiber.StatusNoContent, res.Status)
	res = testutil.Request(t, app, "DELETE", "/api/admins/invites/"+id, testutil.AdminToken, nil)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
}
