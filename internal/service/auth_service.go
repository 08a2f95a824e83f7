package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/service/auth"
	"github.com/taskforge/taskforge-api/internal/store"
)

// FailureKind classifies an unsuccessful auth result so transport layers can
// map it to a status code without parsing messages.
type FailureKind string

// Failure kinds for auth results.
const (
	FailureNone          FailureKind = ""
	FailureValidation    FailureKind = "validation"
	FailureConflict      FailureKind = "conflict"
	FailureUnauthorized  FailureKind = "unauthorized"
	FailureForbidden     FailureKind = "forbidden"
	FailureInternal      FailureKind = "internal"
	FailureUnimplemented FailureKind = "unimplemented"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
}

// LoginInput carries the fields of a login request.
type LoginInput struct {
	Username string
	Password string
}

// UserSummary is the user payload of a successful auth result.
type UserSummary struct {
	User      *domain.User `json:"user"`
	TaskCount int          `json:"task_count"`
}

// AuthResult is the structured outcome of an auth operation. Auth operations
// never return raw errors to their callers: unexpected failures are logged
// and converted to a generic failure result.
type AuthResult struct {
	Success      bool
	Failure      FailureKind
	Message      string
	Token        string
	RefreshToken string
	ExpiresAt    *time.Time
	User         *UserSummary
}

func authFailure(kind FailureKind, message string) *AuthResult {
	return &AuthResult{Failure: kind, Message: message}
}

// AuthService orchestrates registration, login, and token validation.
type AuthService struct {
	userStore  store.UserStore
	taskStore  store.TaskStore
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	jwtService auth.JWTService
	notifier   NotificationService
	logger     *slog.Logger
	db         *sql.DB
	timeFunc   func() time.Time // Injectable for testing
}

// NewAuthService creates a new AuthService. A nil db puts the service in
// direct-store mode (in-memory stores in tests); see NewTaskService.
func NewAuthService(
	userStore store.UserStore,
	taskStore store.TaskStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	jwtService auth.JWTService,
	notifier NotificationService,
	db *sql.DB,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userStore:  userStore,
		taskStore:  taskStore,
		hasher:     hasher,
		verifier:   verifier,
		jwtService: jwtService,
		notifier:   notifier,
		db:         db,
		logger:     logger.With("component", "auth_service"),
		timeFunc:   time.Now,
	}
}

// Register creates a new account. Validation failures and username/email
// conflicts produce typed failure results; nothing is written to the store
// until all checks pass. On success the new user gets role User, an active
// account, and a signed token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) *AuthResult {
	if strings.TrimSpace(input.Username) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Password) == "" {
		return authFailure(FailureValidation, "Username, email, and password are required.")
	}
	if input.Password != input.ConfirmPassword {
		return authFailure(FailureValidation, "Passwords do not match.")
	}

	if _, err := s.userStore.GetByUsername(ctx, input.Username); err == nil {
		return authFailure(FailureConflict, "Username already exists.")
	} else if !store.IsNotFoundError(err) {
		s.logger.Error("registration failed: username lookup", "error", err)
		return authFailure(FailureInternal, "An error occurred during registration.")
	}

	if _, err := s.userStore.GetByEmail(ctx, input.Email); err == nil {
		return authFailure(FailureConflict, "Email already exists.")
	} else if !store.IsNotFoundError(err) {
		s.logger.Error("registration failed: email lookup", "error", err)
		return authFailure(FailureInternal, "An error occurred during registration.")
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("registration failed: password hashing", "error", err)
		return authFailure(FailureInternal, "An error occurred during registration.")
	}

	user := domain.NewUser(input.Username, input.Email)
	user.HashedPassword = hashed
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.CreatedAt = s.timeFunc().UTC()

	if err := s.userStore.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			return authFailure(FailureConflict, "Username already exists.")
		case errors.Is(err, store.ErrEmailExists):
			return authFailure(FailureConflict, "Email already exists.")
		default:
			s.logger.Error("registration failed: user creation", "error", err)
			return authFailure(FailureInternal, "An error occurred during registration.")
		}
	}

	result, ok := s.issueTokens(ctx, user, "registration")
	if !ok {
		return authFailure(FailureInternal, "An error occurred during registration.")
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	s.notifier.SendWelcome(ctx, user.Username, user.Email)

	result.Message = "Registration successful."
	result.User = &UserSummary{User: user, TaskCount: 0}
	return result
}

// Login verifies credentials and issues a token. An unknown username and a
// wrong password both yield the identical generic message, so responses leak
// no information about which usernames exist. Deactivated accounts are only
// reported after the password verifies.
func (s *AuthService) Login(ctx context.Context, input LoginInput) *AuthResult {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Password) == "" {
		return authFailure(FailureValidation, "Username and password are required.")
	}

	user, err := s.userStore.GetByUsername(ctx, input.Username)
	if err != nil {
		if store.IsNotFoundError(err) {
			return authFailure(FailureUnauthorized, "Invalid username or password.")
		}
		s.logger.Error("login failed: user lookup", "error", err)
		return authFailure(FailureInternal, "An error occurred during login.")
	}

	if err := s.verifier.Compare(user.HashedPassword, input.Password); err != nil {
		return authFailure(FailureUnauthorized, "Invalid username or password.")
	}

	if !user.IsActive {
		return authFailure(FailureForbidden, "Account is deactivated.")
	}

	now := s.timeFunc().UTC()
	user.LastLoginAt = &now
	if err := s.updateUser(ctx, user); err != nil {
		s.logger.Error("login failed: last login update", "error", err, "user_id", user.ID)
		return authFailure(FailureInternal, "An error occurred during login.")
	}

	result, ok := s.issueTokens(ctx, user, "login")
	if !ok {
		return authFailure(FailureInternal, "An error occurred during login.")
	}

	taskCount, err := s.taskStore.CountByUser(ctx, user.Username)
	if err != nil {
		s.logger.Error("login failed: task count", "error", err, "user_id", user.ID)
		return authFailure(FailureInternal, "An error occurred during login.")
	}

	s.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)

	result.Message = "Login successful."
	result.User = &UserSummary{User: user, TaskCount: taskCount}
	return result
}

// ValidateToken reports whether the token is valid: well-formed, correctly
// signed, unexpired, and bearing the expected issuer and audience. Any
// failure yields false; the reason is logged, never surfaced.
func (s *AuthService) ValidateToken(ctx context.Context, token string) bool {
	_, err := s.jwtService.ValidateToken(ctx, token)
	return err == nil
}

// RefreshToken would exchange a refresh token for a new token pair. Refresh
// tokens are generated but not persisted, so there is nothing to redeem them
// against; the operation reports the feature as unimplemented.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) *AuthResult {
	return authFailure(FailureUnimplemented, "Refresh token functionality not implemented yet.")
}

// issueTokens signs an access token and generates an (unredeemable) refresh
// token for the user.
func (s *AuthService) issueTokens(ctx context.Context, user *domain.User, operation string) (*AuthResult, bool) {
	token, expiresAt, err := s.jwtService.GenerateToken(ctx, user)
	if err != nil {
		s.logger.Error("failed to generate token", "error", err, "operation", operation, "user_id", user.ID)
		return nil, false
	}
	refreshToken, err := auth.GenerateRefreshToken()
	if err != nil {
		s.logger.Error("failed to generate refresh token", "error", err, "operation", operation, "user_id", user.ID)
		return nil, false
	}
	return &AuthResult{
		Success:      true,
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresAt:    &expiresAt,
	}, true
}

// updateUser persists a user mutation, transactionally when a database is
// configured.
func (s *AuthService) updateUser(ctx context.Context, user *domain.User) error {
	if s.db == nil {
		return s.userStore.Update(ctx, user)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Update(ctx, user)
	})
}
