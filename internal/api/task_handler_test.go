package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge-api/internal/api/shared"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/mocks"
	"github.com/taskforge/taskforge-api/internal/service"
)

// newTaskTestRouter wires a task handler over a mock store behind the task
// routes, with a stub middleware standing in for JWT authentication.
func newTaskTestRouter(t *testing.T) (chi.Router, *mocks.MockTaskStore) {
	t.Helper()

	taskStore := mocks.NewMockTaskStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	taskService := service.NewTaskService(
		taskStore, service.NewLogNotificationService(logger), nil, logger)
	handler := NewTaskHandler(taskService, validator.New())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), shared.UsernameContextKey, "alice")
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/api/tasks", handler.List)
	r.Post("/api/tasks", handler.Create)
	r.Get("/api/tasks/filter", handler.Filter)
	r.Get("/api/tasks/statistics", handler.Statistics)
	r.Get("/api/tasks/{id}", handler.Get)
	r.Put("/api/tasks/{id}", handler.Update)
	r.Delete("/api/tasks/{id}", handler.Delete)
	r.Post("/api/tasks/{id}/complete", handler.Complete)

	return r, taskStore
}

func TestTaskHandlerCreate(t *testing.T) {
	t.Parallel()
	router, taskStore := newTaskTestRouter(t)

	body, err := json.Marshal(CreateTaskRequest{
		Title:    "write report",
		Priority: "high",
		Tags:     []string{"reporting"},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "write report", created.Title)
	assert.Equal(t, domain.TaskStatusPending, created.Status)
	assert.Equal(t, "alice", created.CreatedBy,
		"creator comes from the authenticated identity, not the request body")
	assert.Len(t, taskStore.Tasks, 1)
}

func TestTaskHandlerCreateValidation(t *testing.T) {
	t.Parallel()
	router, taskStore := newTaskTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tasks",
		bytes.NewReader([]byte(`{"title":""}`))))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, taskStore.Tasks)
}

func TestTaskHandlerCreateUnknownPriority(t *testing.T) {
	t.Parallel()
	router, _ := newTaskTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tasks",
		bytes.NewReader([]byte(`{"title":"x","priority":"urgent"}`))))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskHandlerGetNotFound(t *testing.T) {
	t.Parallel()
	router, _ := newTaskTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/tasks/2c3a4f90-0000-0000-0000-000000000000", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task not found")
}

func TestTaskHandlerGetInvalidID(t *testing.T) {
	t.Parallel()
	router, _ := newTaskTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks/not-a-uuid", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskHandlerCompleteFlow(t *testing.T) {
	t.Parallel()
	router, _ := newTaskTestRouter(t)

	body := []byte(`{"title":"finish me"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/tasks/"+created.ID.String()+"/complete", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var completed domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &completed))
	assert.Equal(t, domain.TaskStatusCompleted, completed.Status)
	assert.NotNil(t, completed.CompletedAt)
}

func TestTaskHandlerFilterListsMatchingPage(t *testing.T) {
	t.Parallel()
	router, _ := newTaskTestRouter(t)

	for _, payload := range []string{
		`{"title":"zeta","priority":"High"}`,
		`{"title":"alpha","priority":"Low"}`,
		`{"title":"bravo","priority":"High"}`,
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tasks",
			bytes.NewReader([]byte(payload))))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/tasks/filter?priority=high&sortBy=title&sortDescending=false", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TaskListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "bravo", resp.Tasks[0].Title)
	assert.Equal(t, "zeta", resp.Tasks[1].Title)
}

func TestTaskHandlerStatistics(t *testing.T) {
	t.Parallel()
	router, _ := newTaskTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks/statistics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var stats service.TaskStatistics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 0, stats.TotalTasks)
	assert.Zero(t, stats.CompletionRate)
}

func TestTaskHandlerDelete(t *testing.T) {
	t.Parallel()
	router, taskStore := newTaskTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/tasks",
		bytes.NewReader([]byte(`{"title":"delete me"}`))))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete,
		"/api/tasks/"+created.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, taskStore.Tasks)
}
