package api

import (
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
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/mocks"
	"github.com/taskforge/taskforge-api/internal/service"
	"github.com/taskforge/taskforge-api/internal/service/auth"
)

func newUserTestRouter(t *testing.T) (chi.Router, *mocks.MockUserStore) {
	t.Helper()

	userStore := mocks.NewMockUserStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userService := service.NewUserService(
		userStore, mocks.NewMockTaskStore(), auth.NewBcryptHasher(), nil, logger)
	handler := NewUserHandler(userService, validator.New())

	r := chi.NewRouter()
	r.Get("/api/users/username/{username}", handler.GetByUsername)
	r.Get("/api/users/{id}", handler.Get)

	return r, userStore
}

func TestUserHandlerGetByUsername(t *testing.T) {
	t.Parallel()
	router, userStore := newUserTestRouter(t)

	user := domain.NewUser("alice", "alice@example.com")
	require.NoError(t, userStore.Create(context.Background(), user))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/username/alice", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summary service.UserSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.NotNil(t, summary.User)
	assert.Equal(t, user.ID, summary.User.ID)
	assert.Equal(t, "alice", summary.User.Username)
	assert.Zero(t, summary.TaskCount)
}

func TestUserHandlerGetByUsernameNotFound(t *testing.T) {
	t.Parallel()
	router, _ := newUserTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/username/nobody", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestUserHandlerUsernameRouteWinsOverID(t *testing.T) {
	t.Parallel()
	router, userStore := newUserTestRouter(t)

	user := domain.NewUser("username", "literal@example.com")
	require.NoError(t, userStore.Create(context.Background(), user))

	// The static /username/ segment must not be swallowed by the {id} route.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/username/username", nil))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
