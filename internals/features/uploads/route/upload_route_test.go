package route_test

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cftl_backend/internals/features/uploads/route"
	"cftl_backend/internals/helpers/storage"
	"cftl_backend/internals/testutil"
)

const cdn = "https://cdn.test"

func setup(t *testing.T) (*fiber.App, *storage.MemoryStorage) {
	db := testutil.NewDB(t)
	testutil.SeedStaff(t, db)
	store := storage.NewMemoryStorage(cdn)
	app := testutil.NewApp()
	route.UploadRoutes(app.Group("/api"), testutil.Guards(db), store)
	return app, store
}

func TestSignedURLForReceipts(t *testing.T) {
	app, _ := setup(t)
	parent := testutil.ParentToken(t, "197512345678")

	res := testutil.Request(t, app, "POST", "/api/uploads/signed-url", "", map[string]any{"fileType": "image/jpeg", "fileName": "slip.jpg"})
	assert.Equal(t, fiber.StatusUnauthorized, res.Status)

	res = testutil.RawJSON(t, app, "POST", "/api/uploads/signed-url", parent, `{"fileType": "image/jpeg", "fileName":`)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "Invalid request body", res.Message())

	res = testutil.Request(t, app, "POST", "/api/uploads/signed-url", parent, map[string]any{"fileType": "image/jpeg"})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "Missing fileType or fileName", res.Message())

	res = testutil.Request(t, app, "POST", "/api/uploads/signed-url", parent, map[string]any{"fileType": "image/jpeg", "fileName": "bank slip.jpg"})
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	receipt := res.Data()["receiptUrl"].(string)
	upload := res.Data()["uploadUrl"].(string)
	assert.True(t, strings.HasPrefix(receipt, cdn+"/receipts/"), receipt)
	assert.True(t, strings.HasSuffix(receipt, "_bank_slip.jpg"), receipt)
	assert.True(t, strings.HasPrefix(upload, receipt+"?"), upload)
	assert.Contains(t, upload, "method=PUT")
}

func TestUploadImage(t *testing.T) {
	app, store := setup(t)

	res := testutil.Multipart(t, app, "POST", "/api/images", "", map[string]string{"note": "x"})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)
	assert.Equal(t, "No file uploaded", res.Message())

	res = testutil.Multipart(t, app, "POST", "/api/images", "", nil,
		testutil.File{Field: "file", Filename: "notes.txt", Content: []byte("hello")})
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = testutil.Multipart(t, app, "POST", "/api/images", "", nil,
		testutil.File{Field: "image", Filename: "banner.png", Content: testutil.SamplePNG(t, 800, 400)})
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	imageURL := res.Data()["imageUrl"].(string)
	assert.True(t, strings.HasPrefix(imageURL, cdn+"/images/"), imageURL)
	assert.True(t, strings.HasSuffix(imageURL, ".webp"), imageURL)

	_, contentType, ok := store.Get(strings.TrimPrefix(imageURL, cdn+"/"))
	require.True(t, ok)
	assert.Equal(t, "image/webp", contentType)
}

func TestViewURLIsStaffOnly(t *testing.T) {
	app, _ := setup(t)

	res := testutil.Request(t, app, "GET", "/api/uploads/view-url?key=receipts/a_slip.jpg", testutil.TeacherToken, nil)
	assert.Equal(t, fiber.StatusForbidden, res.Status)

	res = testutil.Request(t, app, "GET", "/api/uploads/view-url", testutil.CoordinatorToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, res.Status)

	res = testutil.Request(t, app, "GET", "/api/uploads/view-url?key=receipts/a_slip.jpg", testutil.CoordinatorToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.True(t, strings.HasPrefix(res.Data()["viewUrl"].(string), cdn+"/receipts/a_slip.jpg?"))
	assert.Contains(t, res.Data()["viewUrl"], "method=GET")

	res = testutil.Request(t, app, "GET", "/api/uploads/view-url?key="+cdn+"/receipts/b_slip.jpg", testutil.AdminToken, nil)
	require.Equal(t, fiber.StatusOK, res.Status, string(res.Raw))
	assert.True(t, strings.HasPrefix(res.Data()["viewUrl"].(string), cdn+"/receipts/b_slip.jpg?"))
}
