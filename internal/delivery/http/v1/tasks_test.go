package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"task-tracker/internal/models"
	"task-tracker/internal/services"
	"task-tracker/internal/storage"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "tasks.json")
	repo := services.NewTaskRepository(zerolog.Nop(), storage.NewFileStore(path, false))

	router := gin.New()
	RegisterRoutes(router, New(zerolog.Nop(), repo))
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeTask(t *testing.T, w *httptest.ResponseRecorder) taskResponse {
	t.Helper()
	var task taskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode task response: %v", err)
	}
	return task
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return payload["error"]
}

func createTask(t *testing.T, router *gin.Engine, description string) taskResponse {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/tasks", gin.H{"description": description})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	return decodeTask(t, w)
}

func TestCreateTask(t *testing.T) {
	router := setupRouter(t)

	task := createTask(t, router, "  Buy milk  ")
	if task.ID != 1 {
		t.Fatalf("expected id 1, got %d", task.ID)
	}
	if task.Description != "Buy milk" {
		t.Fatalf("expected trimmed description, got %q", task.Description)
	}
	if task.Status != models.StatusTodo {
		t.Fatalf("expected status todo, got %q", task.Status)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	router := setupRouter(t)

	cases := []struct {
		name string
		body any
	}{
		{name: "missing description", body: gin.H{}},
		{name: "empty description", body: gin.H{"description": ""}},
		{name: "whitespace description", body: gin.H{"description": "   "}},
		{name: "over-length description", body: gin.H{"description": strings.Repeat("x", 501)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/tasks", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestGetTask(t *testing.T) {
	router := setupRouter(t)
	created := createTask(t, router, "Buy milk")

	w := doRequest(t, router, http.MethodGet, "/tasks/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	got := decodeTask(t, w)
	if got.ID != created.ID || got.Description != created.Description {
		t.Fatalf("got unexpected task: %+v", got)
	}

	w = doRequest(t, router, http.MethodGet, "/tasks/42", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if msg := decodeError(t, w); !strings.Contains(msg, "42") {
		t.Fatalf("expected message naming id 42, got %q", msg)
	}
}

func TestInvalidTaskIDFormat(t *testing.T) {
	router := setupRouter(t)

	for _, target := range []string{"/tasks/abc", "/tasks/1.5"} {
		w := doRequest(t, router, http.MethodGet, target, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, w.Code)
		}
		if msg := decodeError(t, w); msg != "invalid task ID" {
			t.Fatalf("%s: expected invalid task ID message, got %q", target, msg)
		}
	}
}

func TestUpdateTaskDescription(t *testing.T) {
	router := setupRouter(t)
	createTask(t, router, "before")

	w := doRequest(t, router, http.MethodPut, "/tasks/1", gin.H{"description": "after"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeTask(t, w); got.Description != "after" {
		t.Fatalf("expected updated description, got %q", got.Description)
	}

	w = doRequest(t, router, http.MethodPut, "/tasks/99", gin.H{"description": "after"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = doRequest(t, router, http.MethodPut, "/tasks/1", gin.H{"description": "  "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSetTaskStatus(t *testing.T) {
	router := setupRouter(t)
	createTask(t, router, "task")

	w := doRequest(t, router, http.MethodPatch, "/tasks/1/status", gin.H{"status": models.StatusDone})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeTask(t, w); got.Status != models.StatusDone {
		t.Fatalf("expected status done, got %q", got.Status)
	}

	w = doRequest(t, router, http.MethodPatch, "/tasks/1/status", gin.H{"status": "bogus"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	w = doRequest(t, router, http.MethodPatch, "/tasks/99/status", gin.H{"status": models.StatusDone})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestMarkRoutes(t *testing.T) {
	router := setupRouter(t)
	createTask(t, router, "task")

	w := doRequest(t, router, http.MethodPatch, "/tasks/1/mark-in-progress", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decodeTask(t, w); got.Status != models.StatusInProgress {
		t.Fatalf("expected status in-progress, got %q", got.Status)
	}

	w = doRequest(t, router, http.MethodPatch, "/tasks/1/mark-done", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := decodeTask(t, w); got.Status != models.StatusDone {
		t.Fatalf("expected status done, got %q", got.Status)
	}

	w = doRequest(t, router, http.MethodPatch, "/tasks/99/mark-done", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDeleteTask(t *testing.T) {
	router := setupRouter(t)
	createTask(t, router, "task")

	w := doRequest(t, router, http.MethodDelete, "/tasks/1", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", w.Body.String())
	}

	w = doRequest(t, router, http.MethodDelete, "/tasks/1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/tasks/1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestListTasks(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/tasks", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var tasks []taskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty list, got %d tasks", len(tasks))
	}

	createTask(t, router, "one")
	createTask(t, router, "two")
	doRequest(t, router, http.MethodPatch, "/tasks/1/mark-done", nil)

	w = doRequest(t, router, http.MethodGet, "/tasks?status=done", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != 1 {
		t.Fatalf("expected exactly task 1, got %v", tasks)
	}

	w = doRequest(t, router, http.MethodGet, "/tasks?status=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid filter, got %d", w.Code)
	}
}
