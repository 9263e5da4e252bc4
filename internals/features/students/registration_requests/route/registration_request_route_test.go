package route_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cftl_backend/internals/features/students/registration_requests/model"
	"cftl_backend/internals/features/students/registration_requests/route"
	"cftl_backend/internals/testutil"
)

// The public form allows three posts per client, so each app is short lived.
func newApp(db *gorm.DB) *fiber.App {
	app := testutil.NewApp()
	route.RegistrationRequestRoutes(app.Group("/api"), db, testutil.Guards(db), nil)
	return app
}

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	db := testutil.NewDB(t)
	testutil.SeedStaff(t, db)
	return newApp(db), db
}

func form() map[string]any {
	return map[string]any{
		"name": "Nimal Perera", "email": "nimal@example.com", "phone": "0771234567",
		"program": "AL", "stream": "Biology", "year": "2026", "duration": "1 year",
		"startingMonth": "January",
	}
}

func TestCreateRegistrationRequest(t *testing.T) {
	app, db := setup(t)

	res := testutil.Request(t, app, "POST", "/api/registration-requests", "", form())
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))
	assert.Equal(t, "Nimal Perera", res.Data()["name"])

	res = testutil.Request(t, app, "POST", "/api/registration-requests", "", form())
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "A request with this email and phone already exists", res.Message())

	ol := form()
	ol["program"] = "OL"
	ol["phone"] = "0770000000"
	res = testutil.Request(t, app, "POST", "/api/registration-requests", "", ol)
	require.Equal(t, fiber.StatusCreated, res.Status, string(res.Raw))

	var m model.RegistrationRequest
	require.NoError(t, db.First(&m, "registration_request_phone = ?", "0770000000").Error)
	assert.Nil(t, m.RegistrationRequestStream)

	res = testutil.Request(t, app, "POST", "/api/registration-requests", "", form())
	assert.Equal(t, fiber.StatusTooManyRequests, res.Status)
}

func TestRegistrationRequestValidation(t *testing.T) {
	db := testutil.NewDB(t)

	cases := map[string]struct {
		mutate func(map[string]any)
		msg    string
	}{
		"one word name": {func(b map[string]any) { b["name"] = "Nimal" }, "Name must contain at least 2 words"},
		"bad email":     {func(b map[string]any) { b["email"] = "nimal.example.com" }, "Invalid email format"},
		"short phone":   {func(b map[string]any) { b["phone"] = "07712" }, "Phone number must be 10 digits"},
		"bad program":   {func(b map[string]any) { b["program"] = "XL" }, "Program must be OL or AL"},
		"bad stream":    {func(b map[string]any) { b["stream"] = "Music" }, "Invalid stream selection"},
		"no stream":     {func(b map[string]any) { delete(b, "stream") }, "Invalid stream selection"},
		"bad duration":  {func(b map[string]any) { b["duration"] = "2 years" }, "Invalid duration"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			body := form()
			tc.mutate(body)
			res := testutil.Request(t, newApp(db), "POST", "/api/registration-requests", "", body)
			assert.Equal(t, fiber.StatusBadRequest, res.Status)
			assert.Equal(t, tc.msg, res.Message())
		})
	}
}

func TestListRegistrationRequests(t *testing.T) {
	app, _ := setup(t)
	require.Equal(t, fiber.StatusCreated, testutil.Request(t, app, "POST", "/api/registration-requests", "", form()).Status)

	res := testutil.Request(t, app, "GET", "/api/registration-requests", testutil.CoordinatorToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	require.Len(t, res.List(), 1)
	assert.Equal(t, "Biology", res.List()[0]["stream"])

	res = testutil.Request(t, app, "GET", "/api/registration-requests", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)
}

func TestStartingMonths(t *testing.T) {
	app, _ := setup(t)

	res := testutil.Request(t, app, "GET", "/api/registration-requests/starting-months", "", nil)
	assert.Equal(t, fiber.StatusNotFound, res.Status)

	res = testutil.Request(t, app, "PUT", "/api/registration-requests/starting-months", testutil.AdminToken,
		map[string]any{"months": []string{"January"}})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "Exactly two starting months must be provided", res.Message())

	res = testutil.Request(t, app, "PUT", "/api/registration-requests/starting-months", testutil.CoordinatorToken,
		map[string]any{"months": []string{"January", "July"}})
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	for _, months := range [][]string{{"January", "July"}, {"February", "August"}} {
		res = testutil.Request(t, app, "PUT", "/api/registration-requests/starting-months", testutil.AdminToken,
			map[string]any{"months": months})
		require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	}

	res = testutil.Request(t, app, "GET", "/api/registration-requests/starting-months", "", nil)
	require.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, []any{"February", "August"}, res.Data()["months"])
}
