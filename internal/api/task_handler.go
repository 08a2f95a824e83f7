package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/taskforge/taskforge-api/internal/api/middleware"
	"github.com/taskforge/taskforge-api/internal/api/shared"
	"github.com/taskforge/taskforge-api/internal/service"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService *service.TaskService
	validate    *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService *service.TaskService, validate *validator.Validate) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validate:    validate,
	}
}

// List handles GET /api/tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListAll(r.Context())
	if err != nil {
		HandleServiceError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// Filter handles GET /api/tasks/filter. Filter conditions arrive as query
// parameters; unparsable values drop their condition rather than failing.
func (h *TaskHandler) Filter(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListFiltered(r.Context(), parseTaskFilter(r))
	if err != nil {
		HandleServiceError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// Overdue handles GET /api/tasks/overdue.
func (h *TaskHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListOverdue(r.Context())
	if err != nil {
		HandleServiceError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// Statistics handles GET /api/tasks/statistics.
func (h *TaskHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.taskService.Statistics(r.Context())
	if err != nil {
		HandleServiceError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// ListByUser handles GET /api/tasks/user/{username}.
func (h *TaskHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "username is required")
		return
	}
	tasks, err := h.taskService.ListByUser(r.Context(), username)
	if err != nil {
		HandleServiceError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}
	task, err := h.taskService.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err, "Task not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Create handles POST /api/tasks. The creator is the authenticated username
// from the token, never a client-supplied field.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTaskRequest
	if !DecodeAndValidate(w, r, h.validate, &req) {
		return
	}

	task, err := h.taskService.Create(r.Context(), req.ToInput(), username)
	if err != nil {
		HandleServiceError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// Update handles PUT /api/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !DecodeAndValidate(w, r, h.validate, &req) {
		return
	}

	task, err := h.taskService.Update(r.Context(), id, req.ToInput())
	if err != nil {
		HandleServiceError(w, r, err, "Task not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.taskService.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err, "Task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Complete handles POST /api/tasks/{id}/complete.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.taskService.Complete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err, "Task not found")
		return
	}
	task, err := h.taskService.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err, "Task not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}
