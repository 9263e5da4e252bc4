// Package testutil wires an in-memory sqlite database, fake identities and
// request helpers for handler tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "cftl_backend/internals/databases"
	adminModel "cftl_backend/internals/features/users/admins/model"
	teacherModel "cftl_backend/internals/features/users/teachers/model"
	helperAuth "cftl_backend/internals/helpers/auth"
	"cftl_backend/internals/middlewares"
	authMw "cftl_backend/internals/middlewares/auth"
)

const (
	AdminToken       = "admin-token"
	CoordinatorToken = "coordinator-token"
	TeacherToken     = "teacher-token"
	StrangerToken    = "stranger-token"

	AdminEmail       = "admin@cftl.lk"
	CoordinatorEmail = "coordinator@cftl.lk"
	TeacherEmail     = "teacher@cftl.lk"
	StrangerEmail    = "new.user@cftl.lk"

	ParentSecret = "parent-secret-for-tests"
)

// NewDB opens a private in-memory sqlite database with the full schema.
// A single connection is used, so code inside a transaction must use tx.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// FakeVerifier maps raw bearer tokens to identities.
type FakeVerifier map[string]authMw.Identity

func (f FakeVerifier) Verify(ctx context.Context, raw string) (authMw.Identity, error) {
	id, ok := f[raw]
	if !ok {
		return authMw.Identity{}, errors.New("invalid token")
	}
	return id, nil
}

func Verifier() FakeVerifier {
	return FakeVerifier{
		AdminToken:       {UID: "uid-admin", Email: AdminEmail},
		CoordinatorToken: {UID: "uid-coordinator", Email: CoordinatorEmail},
		TeacherToken:     {UID: "uid-teacher", Email: TeacherEmail},
		StrangerToken:    {UID: "uid-stranger", Email: StrangerEmail},
	}
}

func Guards(db *gorm.DB) authMw.Guards {
	return authMw.NewGuards(db, Verifier(), ParentSecret)
}

// SeedStaff creates the admin, coordinator and teacher behind the fake tokens.
func SeedStaff(t *testing.T, db *gorm.DB) teacherModel.Teacher {
	t.Helper()
	require.NoError(t, db.Create(&adminModel.Admin{
		AdminFullName: "Main Admin", AdminNameInitials: "M. Admin",
		AdminTelephone: "0771111111", AdminEmail: AdminEmail, AdminRole: "admin",
	}).Error)
	require.NoError(t, db.Create(&adminModel.Admin{
		AdminFullName: "Course Coordinator", AdminNameInitials: "C. Coordinator",
		AdminTelephone: "0772222222", AdminEmail: CoordinatorEmail, AdminRole: "coordinator",
	}).Error)
	teacher := teacherModel.Teacher{
		TeacherEmail: TeacherEmail, TeacherFullName: "Science Teacher", TeacherRole: "teacher",
	}
	require.NoError(t, db.Create(&teacher).Error)
	return teacher
}

func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: middlewares.ErrorHandler,
	})
}

type Response struct {
	Status int
	Body   map[string]any
	Raw    []byte
	Header http.Header
}

// Data returns body.data as an object.
func (r Response) Data() map[string]any {
	m, _ := r.Body["data"].(map[string]any)
	return m
}

// List returns body.data as an array of objects.
func (r Response) List() []map[string]any {
	arr, _ := r.Body["data"].([]any)
	out := make([]map[string]any, 0, len(arr))
	for _, v := range arr {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func (r Response) Message() string {
	s, _ := r.Body["message"].(string)
	return s
}

func do(t *testing.T, app *fiber.App, req *http.Request) Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := Response{Status: resp.StatusCode, Raw: raw, Header: resp.Header}
	if len(raw) > 0 && bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		require.NoError(t, json.Unmarshal(raw, &out.Body), string(raw))
	}
	return out
}

// Request sends a JSON request; body may be nil.
func Request(t *testing.T, app *fiber.App, method, path, token string, body any) Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return do(t, app, req)
}

// RawJSON sends body untouched with a JSON content type, for malformed payloads.
func RawJSON(t *testing.T, app *fiber.App, method, path, token, body string) Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return do(t, app, req)
}

type File struct {
	Field    string
	Filename string
	Content  []byte
}

// Multipart sends form fields plus optional files.
func Multipart(t *testing.T, app *fiber.App, method, path, token string, fields map[string]string, files ...File) Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.Field, f.Filename)
		require.NoError(t, err)
		_, err = fw.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return do(t, app, req)
}

// MustJSON marshals v for use as a multipart "data" field.
func MustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// ParentToken signs a parent session for nic; no parents row is required.
func ParentToken(t *testing.T, nic string) string {
	t.Helper()
	tok, _, err := helperAuth.IssueParentToken(ParentSecret, uuid.New(), nic, time.Hour)
	require.NoError(t, err)
	return tok
}
