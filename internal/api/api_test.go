package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/api"
	"task-planner/internal/repository"
	"task-planner/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", name)
	db, err := repository.NewDB(dsn, log)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	return api.NewApp(api.Deps{
		Auth:       service.NewAuthService(userRepo, "test-secret", time.Hour),
		Tasks:      service.NewTaskService(taskRepo, categoryRepo),
		Categories: service.NewCategoryService(categoryRepo),
		Users:      userRepo,
		Log:        log,
	})
}

// doJSON issues a request with an optional bearer token and JSON body, and
// decodes the response body into a generic map (nil for empty bodies).
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return resp.StatusCode, nil
	}

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	return resp.StatusCode, decoded
}

// doJSONList is doJSON for endpoints returning a JSON array.
func doJSONList(t *testing.T, app *fiber.App, method, path, token string) (int, []map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	return resp.StatusCode, decoded
}

// signup registers a user and returns a bearer token for it.
func signup(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	creds := map[string]string{"username": username, "password": "correct-horse"}
	status, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/login", "", creds)
	require.Equal(t, http.StatusOK, status)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRequiresAuthentication(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/api/tasks/", "/api/categories/"} {
		status, body := doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Contains(t, body, "error")
	}

	status, _ := doJSON(t, app, http.MethodGet, "/api/tasks/", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestTaskLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := signup(t, app, "u1")

	status, category := doJSON(t, app, http.MethodPost, "/api/categories/", token,
		map[string]any{"name": "Work", "color": "#ff0000"})
	require.Equal(t, http.StatusCreated, status)
	categoryID := category["id"].(float64)

	status, task := doJSON(t, app, http.MethodPost, "/api/tasks/", token, map[string]any{
		"title":      "Write report",
		"date":       "2024-05-01",
		"start_time": "09:00",
		"end_time":   "10:00",
		"priority":   "High",
		"category":   categoryID,
	})
	require.Equal(t, http.StatusCreated, status)
	taskID := task["id"].(float64)

	status, got := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/tasks/%.0f", taskID), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Write report", got["title"])
	assert.Equal(t, "High", got["priority"])
	assert.Equal(t, false, got["completed"])
	assert.Equal(t, "u1", got["owner"])

	// The category reference is expanded to the full object on read.
	gotCategory, ok := got["category"].(map[string]any)
	require.True(t, ok, "category should be an object, got %v", got["category"])
	assert.Equal(t, categoryID, gotCategory["id"])
	assert.Equal(t, "Work", gotCategory["name"])
	assert.Equal(t, "#ff0000", gotCategory["color"])

	status, list := doJSONList(t, app, http.MethodGet, "/api/tasks/", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, list, 1)

	status, updated := doJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/tasks/%.0f", taskID), token,
		map[string]any{"completed": true})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, updated["completed"])
	assert.Equal(t, "Write report", updated["title"])

	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/tasks/%.0f", taskID), token, nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/tasks/%.0f", taskID), token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTaskRoundTrip(t *testing.T) {
	app := newTestApp(t)
	token := signup(t, app, "u1")

	submitted := map[string]any{
		"title":      "Standup",
		"notes":      "bring coffee",
		"date":       "2024-06-10",
		"start_time": "09:30",
		"end_time":   "09:45",
		"completed":  true,
		"priority":   "Medium",
		"recurrence": "Mon,Tue,Wed",
		"reminders":  "15m,5m",
	}
	status, created := doJSON(t, app, http.MethodPost, "/api/tasks/", token, submitted)
	require.Equal(t, http.StatusCreated, status)

	status, got := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/tasks/%.0f", created["id"].(float64)), token, nil)
	require.Equal(t, http.StatusOK, status)
	for field, want := range submitted {
		assert.Equal(t, want, got[field], field)
	}
	assert.Nil(t, got["category"])
}

func TestOwnershipIsolation(t *testing.T) {
	app := newTestApp(t)
	u1 := signup(t, app, "u1")
	u2 := signup(t, app, "u2")

	status, task := doJSON(t, app, http.MethodPost, "/api/tasks/", u1, map[string]any{
		"title":      "Private",
		"date":       "2024-05-01",
		"start_time": "09:00",
		"end_time":   "10:00",
	})
	require.Equal(t, http.StatusCreated, status)
	path := fmt.Sprintf("/api/tasks/%.0f", task["id"].(float64))

	// Another user's task is indistinguishable from a missing one.
	status, _ = doJSON(t, app, http.MethodGet, path, u2, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, app, http.MethodDelete, path, u2, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, app, http.MethodPut, path, u2, map[string]any{
		"title":      "Hijacked",
		"date":       "2024-05-01",
		"start_time": "09:00",
		"end_time":   "10:00",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, list := doJSONList(t, app, http.MethodGet, "/api/tasks/", u2)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, list)

	// The owner still sees it untouched.
	status, got := doJSON(t, app, http.MethodGet, path, u1, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Private", got["title"])
}

func TestOwnerFieldIsNeverTrusted(t *testing.T) {
	app := newTestApp(t)
	u1 := signup(t, app, "u1")
	signup(t, app, "u2")

	status, created := doJSON(t, app, http.MethodPost, "/api/tasks/", u1, map[string]any{
		"title":      "Mine",
		"date":       "2024-05-01",
		"start_time": "09:00",
		"end_time":   "10:00",
		"owner":      "u2",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "u1", created["owner"])
}

func TestTaskValidationResponse(t *testing.T) {
	app := newTestApp(t)
	token := signup(t, app, "u1")

	status, body := doJSON(t, app, http.MethodPost, "/api/tasks/", token, map[string]any{
		"priority": "Urgent",
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)

	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok, "body: %v", body)
	for _, field := range []string{"title", "date", "start_time", "end_time", "priority"} {
		assert.Contains(t, errs, field)
	}
}

func TestCrossOwnerCategoryRejected(t *testing.T) {
	app := newTestApp(t)
	u1 := signup(t, app, "u1")
	u2 := signup(t, app, "u2")

	status, category := doJSON(t, app, http.MethodPost, "/api/categories/", u2,
		map[string]any{"name": "Secret", "color": "#000000"})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, app, http.MethodPost, "/api/tasks/", u1, map[string]any{
		"title":      "Sneaky",
		"date":       "2024-05-01",
		"start_time": "09:00",
		"end_time":   "10:00",
		"category":   category["id"],
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "category")
}

func TestCategoryConflict(t *testing.T) {
	app := newTestApp(t)
	u1 := signup(t, app, "u1")
	u2 := signup(t, app, "u2")

	status, _ := doJSON(t, app, http.MethodPost, "/api/categories/", u1,
		map[string]any{"name": "Work", "color": "#ff0000"})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/categories/", u1,
		map[string]any{"name": "Work", "color": "#00ff00"})
	assert.Equal(t, http.StatusConflict, status)

	// The same name under another owner is allowed.
	status, _ = doJSON(t, app, http.MethodPost, "/api/categories/", u2,
		map[string]any{"name": "Work", "color": "#0000ff"})
	assert.Equal(t, http.StatusCreated, status)
}

func TestCategoryDeleteClearsTaskReference(t *testing.T) {
	app := newTestApp(t)
	token := signup(t, app, "u1")

	status, category := doJSON(t, app, http.MethodPost, "/api/categories/", token,
		map[string]any{"name": "Work", "color": "#ff0000"})
	require.Equal(t, http.StatusCreated, status)

	status, task := doJSON(t, app, http.MethodPost, "/api/tasks/", token, map[string]any{
		"title":      "Write report",
		"date":       "2024-05-01",
		"start_time": "09:00",
		"end_time":   "10:00",
		"category":   category["id"],
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/categories/%.0f", category["id"].(float64)), token, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, got := doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/tasks/%.0f", task["id"].(float64)), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, got["category"])
	assert.Equal(t, "Write report", got["title"])
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	app := newTestApp(t)
	token := signup(t, app, "u1")

	req := httptest.NewRequest(http.MethodPost, "/api/tasks/", strings.NewReader("{not json"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
