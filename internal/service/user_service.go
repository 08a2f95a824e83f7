package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/service/auth"
	"github.com/taskforge/taskforge-api/internal/store"
)

// CreateUserInput carries the fields for an administratively created user.
type CreateUserInput struct {
	Username    string
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	Bio         string
	Role        string
}

// UpdateUserInput carries a partial profile update: nil fields are untouched.
type UpdateUserInput struct {
	FirstName         *string
	LastName          *string
	PhoneNumber       *string
	Bio               *string
	ProfilePictureURL *string
	IsActive          *bool
}

// UserService provides user management operations.
type UserService struct {
	userStore store.UserStore
	taskStore store.TaskStore
	hasher    auth.PasswordHasher
	logger    *slog.Logger
	db        *sql.DB
}

// NewUserService creates a new UserService. A nil db puts the service in
// direct-store mode; see NewTaskService.
func NewUserService(
	userStore store.UserStore,
	taskStore store.TaskStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userStore: userStore,
		taskStore: taskStore,
		hasher:    hasher,
		db:        db,
		logger:    logger.With("component", "user_service"),
	}
}

// List returns all users ordered by username, each with their live task count.
func (s *UserService) List(ctx context.Context) ([]*UserSummary, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	summaries := make([]*UserSummary, 0, len(users))
	for _, user := range users {
		count, err := s.taskStore.CountByUser(ctx, user.Username)
		if err != nil {
			s.logger.Error("failed to count tasks for user", "error", err, "username", user.Username)
			return nil, fmt.Errorf("failed to count tasks for user: %w", err)
		}
		summaries = append(summaries, &UserSummary{User: user, TaskCount: count})
	}
	return summaries, nil
}

// GetByID retrieves a user with their task count.
// Returns store.ErrUserNotFound when the id is absent.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserSummary, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to get user", "error", err, "user_id", id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return s.withTaskCount(ctx, user)
}

// GetByUsername retrieves a user with their task count.
// Returns store.ErrUserNotFound when the username is absent.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*UserSummary, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to get user by username", "error", err, "username", username)
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return s.withTaskCount(ctx, user)
}

// Create adds a user with the given role (default User when empty).
// Returns store.ErrUsernameExists/ErrEmailExists on uniqueness conflicts and
// ErrValidation on an unknown role.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*UserSummary, error) {
	role := domain.RoleUser
	if input.Role != "" {
		parsed, err := domain.ParseUserRole(input.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		role = parsed
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.logger.Error("failed to hash password for new user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user := domain.NewUser(input.Username, input.Email)
	user.HashedPassword = hashed
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.PhoneNumber = input.PhoneNumber
	user.Bio = input.Bio
	user.Role = role

	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if !store.IsDuplicateError(err) {
			s.logger.Error("failed to create user", "error", err, "username", input.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID, "username", user.Username)
	return &UserSummary{User: user, TaskCount: 0}, nil
}

// Update applies a partial profile update inside a transaction and returns
// the updated record. Returns store.ErrUserNotFound when the id is absent.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserSummary, error) {
	err := s.inUserTx(ctx, func(us store.UserStore) error {
		user, err := us.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get user for update: %w", err)
		}

		if input.FirstName != nil && *input.FirstName != "" {
			user.FirstName = *input.FirstName
		}
		if input.LastName != nil && *input.LastName != "" {
			user.LastName = *input.LastName
		}
		if input.PhoneNumber != nil {
			user.PhoneNumber = *input.PhoneNumber
		}
		if input.Bio != nil {
			user.Bio = *input.Bio
		}
		if input.ProfilePictureURL != nil {
			user.ProfilePictureURL = *input.ProfilePictureURL
		}
		if input.IsActive != nil {
			user.IsActive = *input.IsActive
		}

		return us.Update(ctx, user)
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to update user", "error", err, "user_id", id)
		}
		return nil, err
	}

	s.logger.Info("user updated", "user_id", id)
	return s.GetByID(ctx, id)
}

// Delete removes a user. Their tasks keep the denormalized username but lose
// the relational link; owned categories block the delete.
// Returns store.ErrUserNotFound when the id is absent.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to delete user", "error", err, "user_id", id)
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// Deactivate marks the user inactive, blocking future logins.
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.setActive(ctx, id, false)
}

// Activate marks the user active again.
func (s *UserService) Activate(ctx context.Context, id uuid.UUID) error {
	return s.setActive(ctx, id, true)
}

func (s *UserService) setActive(ctx context.Context, id uuid.UUID, active bool) error {
	err := s.inUserTx(ctx, func(us store.UserStore) error {
		user, err := us.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get user for activation change: %w", err)
		}
		user.IsActive = active
		return us.Update(ctx, user)
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to change user activation", "error", err, "user_id", id, "active", active)
		}
		return err
	}
	s.logger.Info("user activation changed", "user_id", id, "active", active)
	return nil
}

func (s *UserService) withTaskCount(ctx context.Context, user *domain.User) (*UserSummary, error) {
	count, err := s.taskStore.CountByUser(ctx, user.Username)
	if err != nil {
		s.logger.Error("failed to count tasks for user", "error", err, "username", user.Username)
		return nil, fmt.Errorf("failed to count tasks for user: %w", err)
	}
	return &UserSummary{User: user, TaskCount: count}, nil
}

func (s *UserService) inUserTx(ctx context.Context, fn func(us store.UserStore) error) error {
	if s.db == nil {
		return fn(s.userStore)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(s.userStore.WithTx(tx))
	})
}
