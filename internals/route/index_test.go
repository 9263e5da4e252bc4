package routes_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"cftl_backend/internals/configs"
	"cftl_backend/internals/helpers/storage"
	routes "cftl_backend/internals/route"
	"cftl_backend/internals/testutil"
)

func TestSetupRoutesMountsEveryFeature(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedStaff(t, db)
	app := testutil.NewApp()
	routes.SetupRoutes(app, db, routes.Deps{
		Config:  configs.AppConfig{JWTSecret: testutil.ParentSecret},
		Guards:  testutil.Guards(db),
		Storage: storage.NewMemoryStorage("https://cdn.test"),
	})

	res := testutil.Request(t, app, "GET", "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, res.Status)
	assert.Equal(t, "Connected", res.Body["database"])

	// unauthenticated calls reach the feature guards instead of a 404
	for _, path := range []string{
		"/api/admins/me", "/api/teachers", "/api/courses/coordinator/courses", "/api/subjects", "/api/syllabus",
		"/api/students", "/api/enrollments/course/x", "/api/payments", "/api/payment-requests",
		"/api/parents/me", "/api/registration-requests",
	} {
		res := testutil.Request(t, app, "GET", path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, res.Status, path)
	}

	res = testutil.Request(t, app, "GET", "/api/registration-requests/starting-months", "", nil)
	assert.Equal(t, fiber.StatusNotFound, res.Status)
	assert.Equal(t, "Settings not found", res.Message())
}
