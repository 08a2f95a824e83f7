package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge-api/internal/config"
	"github.com/taskforge/taskforge-api/internal/mocks"
	"github.com/taskforge/taskforge-api/internal/service"
	"github.com/taskforge/taskforge-api/internal/service/auth"
)

func newAuthTestHandler(t *testing.T) *AuthHandler {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		Issuer:               "taskforge-api",
		Audience:             "taskforge-clients",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hasher := auth.NewBcryptHasher()
	authService := service.NewAuthService(
		mocks.NewMockUserStore(), mocks.NewMockTaskStore(),
		hasher, hasher, jwtService,
		service.NewLogNotificationService(logger), nil, logger)

	return NewAuthHandler(authService, validator.New())
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body)))
	return rec
}

func TestAuthHandlerRegisterAndLogin(t *testing.T) {
	t.Parallel()
	handler := newAuthTestHandler(t)

	rec := postJSON(t, handler.Register, "/api/auth/register", RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var registered AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.True(t, registered.Success)
	assert.NotEmpty(t, registered.Token)
	require.NotNil(t, registered.User)
	assert.Equal(t, "alice", registered.User.User.Username)

	rec = postJSON(t, handler.Login, "/api/auth/login", LoginRequest{
		Username: "alice",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var loggedIn AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loggedIn))
	assert.Equal(t, "Login successful.", loggedIn.Message)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestAuthHandlerRegisterConflict(t *testing.T) {
	t.Parallel()
	handler := newAuthTestHandler(t)

	first := postJSON(t, handler.Register, "/api/auth/register", RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	require.Equal(t, http.StatusCreated, first.Code)

	second := postJSON(t, handler.Register, "/api/auth/register", RegisterRequest{
		Username:        "alice",
		Email:           "other@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "Username already exists.")
}

func TestAuthHandlerRegisterRejectsInvalidBody(t *testing.T) {
	t.Parallel()
	handler := newAuthTestHandler(t)

	rec := postJSON(t, handler.Register, "/api/auth/register", RegisterRequest{
		Username: "alice",
		Email:    "not-an-email",
		Password: "password123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	t.Parallel()
	handler := newAuthTestHandler(t)

	rec := postJSON(t, handler.Register, "/api/auth/register", RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, handler.Login, "/api/auth/login", LoginRequest{
		Username: "alice",
		Password: "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username or password.")
}

func TestAuthHandlerRefreshUnimplemented(t *testing.T) {
	t.Parallel()
	handler := newAuthTestHandler(t)

	rec := postJSON(t, handler.Refresh, "/api/auth/refresh", RefreshTokenRequest{
		RefreshToken: "anything",
	})
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Contains(t, rec.Body.String(), "Refresh token functionality not implemented yet.")
}

func TestAuthHandlerValidate(t *testing.T) {
	t.Parallel()
	handler := newAuthTestHandler(t)

	rec := postJSON(t, handler.Register, "/api/auth/register", RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))

	rec = postJSON(t, handler.Validate, "/api/auth/validate", ValidateTokenRequest{
		Token: registered.Token,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var valid ValidateTokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &valid))
	assert.True(t, valid.Valid)

	rec = postJSON(t, handler.Validate, "/api/auth/validate", ValidateTokenRequest{
		Token: "garbage",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &valid))
	assert.False(t, valid.Valid)
}
