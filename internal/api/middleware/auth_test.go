package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge-api/internal/mocks"
	"github.com/taskforge/taskforge-api/internal/service/auth"
)

func authedRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	return req
}

func TestAuthenticateMissingHeader(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(&mocks.MockJWTService{})
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest(""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(&mocks.MockJWTService{})
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	for _, header := range []string{"token-without-scheme", "Basic abc123", "Bearer"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest(header))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthenticateInvalidAndExpiredTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		validateErr error
		wantBody    string
	}{
		{"invalid token", auth.ErrInvalidToken, "Invalid token"},
		{"expired token", auth.ErrExpiredToken, "Token expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewAuthMiddleware(&mocks.MockJWTService{ValidateErr: tt.validateErr})
			handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not be reached")
			}))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, authedRequest("Bearer sometoken"))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestAuthenticateAddsIdentityToContext(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	mw := NewAuthMiddleware(&mocks.MockJWTService{
		Claims: &auth.Claims{UserID: userID, Username: "alice"},
	})

	var gotID uuid.UUID
	var gotUsername string
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r)
		require.True(t, ok)
		gotID = id
		username, ok := GetUsername(r)
		require.True(t, ok)
		gotUsername = username
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest("Bearer validtoken"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "alice", gotUsername)
}
