package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/taskforge/taskforge-api/internal/api/shared"
	"github.com/taskforge/taskforge-api/internal/service"
)

// UserHandler handles user management HTTP requests.
type UserHandler struct {
	userService *service.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userService *service.UserService, validate *validator.Validate) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validate,
	}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewUserListResponse(users))
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}
	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err, "User not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// GetByUsername handles GET /api/users/username/{username}.
func (h *UserHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "username is required")
		return
	}
	user, err := h.userService.GetByUsername(r.Context(), username)
	if err != nil {
		HandleServiceError(w, r, err, "User not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !DecodeAndValidate(w, r, h.validate, &req) {
		return
	}

	user, err := h.userService.Create(r.Context(), req.ToInput())
	if err != nil {
		HandleServiceError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// Update handles PUT /api/users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !DecodeAndValidate(w, r, h.validate, &req) {
		return
	}

	user, err := h.userService.Update(r.Context(), id, req.ToInput())
	if err != nil {
		HandleServiceError(w, r, err, "User not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.userService.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, r, err, "User not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Activate handles POST /api/users/{id}/activate.
func (h *UserHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// Deactivate handles POST /api/users/{id}/deactivate.
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *UserHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	var err error
	if active {
		err = h.userService.Activate(r.Context(), id)
	} else {
		err = h.userService.Deactivate(r.Context(), id)
	}
	if err != nil {
		HandleServiceError(w, r, err, "User not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
