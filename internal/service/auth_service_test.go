package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge-api/internal/config"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/mocks"
	"github.com/taskforge/taskforge-api/internal/service/auth"
)

func newTestAuthService(t *testing.T) (*AuthService, *mocks.MockUserStore, *mocks.MockTaskStore) {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		Issuer:               "taskforge-api",
		Audience:             "taskforge-clients",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	userStore := mocks.NewMockUserStore()
	taskStore := mocks.NewMockTaskStore()
	hasher := auth.NewBcryptHasher()
	logger := testLogger()

	svc := NewAuthService(
		userStore, taskStore, hasher, hasher, jwtService,
		NewLogNotificationService(logger), nil, logger)
	return svc, userStore, taskStore
}

func registerTestUser(t *testing.T, svc *AuthService, username, email, password string) *AuthResult {
	t.Helper()
	result := svc.Register(context.Background(), RegisterInput{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	require.True(t, result.Success, "registration should succeed: %s", result.Message)
	return result
}

func TestRegisterSuccess(t *testing.T) {
	t.Parallel()
	svc, userStore, _ := newTestAuthService(t)

	result := svc.Register(context.Background(), RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
		FirstName:       "Alice",
		LastName:        "Smith",
	})

	require.True(t, result.Success)
	assert.Equal(t, "Registration successful.", result.Message)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	require.NotNil(t, result.ExpiresAt)
	require.NotNil(t, result.User)
	assert.Equal(t, domain.RoleUser, result.User.User.Role)
	assert.True(t, result.User.User.IsActive)
	assert.Equal(t, 0, result.User.TaskCount)

	stored, ok := userStore.Users["alice"]
	require.True(t, ok)
	assert.NotEqual(t, "password123", stored.HashedPassword,
		"password must never be stored in plaintext")
}

func TestRegisterPasswordMismatch(t *testing.T) {
	t.Parallel()
	svc, userStore, _ := newTestAuthService(t)

	result := svc.Register(context.Background(), RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "different",
	})

	assert.False(t, result.Success)
	assert.Equal(t, FailureValidation, result.Failure)
	assert.Equal(t, "Passwords do not match.", result.Message)
	assert.Empty(t, userStore.Users, "nothing should be stored on validation failure")
}

func TestRegisterMissingFields(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAuthService(t)

	result := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
	})

	assert.False(t, result.Success)
	assert.Equal(t, FailureValidation, result.Failure)
	assert.Equal(t, "Username, email, and password are required.", result.Message)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAuthService(t)
	registerTestUser(t, svc, "alice", "alice@example.com", "password123")

	result := svc.Register(context.Background(), RegisterInput{
		Username:        "alice",
		Email:           "other@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})

	assert.False(t, result.Success)
	assert.Equal(t, FailureConflict, result.Failure)
	assert.Equal(t, "Username already exists.", result.Message)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAuthService(t)
	registerTestUser(t, svc, "alice", "alice@example.com", "password123")

	result := svc.Register(context.Background(), RegisterInput{
		Username:        "bob",
		Email:           "alice@example.com",
		Password:        "password123",
		ConfirmPassword: "password123",
	})

	assert.False(t, result.Success)
	assert.Equal(t, FailureConflict, result.Failure)
	assert.Equal(t, "Email already exists.", result.Message)
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()
	svc, userStore, _ := newTestAuthService(t)
	registerTestUser(t, svc, "alice", "alice@example.com", "password123")

	result := svc.Login(context.Background(), LoginInput{
		Username: "alice",
		Password: "password123",
	})

	require.True(t, result.Success)
	assert.Equal(t, "Login successful.", result.Message)
	assert.NotEmpty(t, result.Token)
	assert.NotNil(t, result.User)

	stored := userStore.Users["alice"]
	assert.NotNil(t, stored.LastLoginAt, "login must stamp the last login time")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAuthService(t)
	registerTestUser(t, svc, "alice", "alice@example.com", "password123")

	unknownUser := svc.Login(context.Background(), LoginInput{
		Username: "mallory",
		Password: "password123",
	})
	wrongPassword := svc.Login(context.Background(), LoginInput{
		Username: "alice",
		Password: "wrongpassword",
	})

	assert.False(t, unknownUser.Success)
	assert.False(t, wrongPassword.Success)
	assert.Equal(t, FailureUnauthorized, unknownUser.Failure)
	assert.Equal(t, FailureUnauthorized, wrongPassword.Failure)
	assert.Equal(t, "Invalid username or password.", unknownUser.Message)
	assert.Equal(t, unknownUser.Message, wrongPassword.Message,
		"responses must not reveal which usernames exist")
}

func TestLoginDeactivatedAccount(t *testing.T) {
	t.Parallel()
	svc, userStore, _ := newTestAuthService(t)
	registerTestUser(t, svc, "alice", "alice@example.com", "password123")
	userStore.Users["alice"].IsActive = false

	result := svc.Login(context.Background(), LoginInput{
		Username: "alice",
		Password: "password123",
	})

	assert.False(t, result.Success)
	assert.Equal(t, FailureForbidden, result.Failure)
	assert.Equal(t, "Account is deactivated.", result.Message)
}

func TestLoginDeactivatedWithWrongPasswordStaysGeneric(t *testing.T) {
	t.Parallel()
	svc, userStore, _ := newTestAuthService(t)
	registerTestUser(t, svc, "alice", "alice@example.com", "password123")
	userStore.Users["alice"].IsActive = false

	// Deactivation is only reported after the password verifies.
	result := svc.Login(context.Background(), LoginInput{
		Username: "alice",
		Password: "wrongpassword",
	})

	assert.Equal(t, FailureUnauthorized, result.Failure)
	assert.Equal(t, "Invalid username or password.", result.Message)
}

func TestLoginCountsTasks(t *testing.T) {
	t.Parallel()
	svc, _, taskStore := newTestAuthService(t)
	registerTestUser(t, svc, "alice", "alice@example.com", "password123")

	task := domain.NewTask("assigned work", "bob")
	task.AssignedTo = "alice"
	require.NoError(t, taskStore.Create(context.Background(), task))

	result := svc.Login(context.Background(), LoginInput{
		Username: "alice",
		Password: "password123",
	})

	require.True(t, result.Success)
	assert.Equal(t, 1, result.User.TaskCount)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAuthService(t)
	result := registerTestUser(t, svc, "alice", "alice@example.com", "password123")

	assert.True(t, svc.ValidateToken(context.Background(), result.Token))
	assert.False(t, svc.ValidateToken(context.Background(), "not-a-token"))
	assert.False(t, svc.ValidateToken(context.Background(), ""))
}

func TestRefreshTokenUnimplemented(t *testing.T) {
	t.Parallel()
	svc, _, _ := newTestAuthService(t)
	result := registerTestUser(t, svc, "alice", "alice@example.com", "password123")

	refresh := svc.RefreshToken(context.Background(), result.RefreshToken)

	assert.False(t, refresh.Success)
	assert.Equal(t, FailureUnimplemented, refresh.Failure)
	assert.Equal(t, "Refresh token functionality not implemented yet.", refresh.Message)
}
