package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/taskfilter"
)

// TaskStore defines the interface for task data persistence. Read operations
// hydrate the linked category's name and color onto the returned tasks.
type TaskStore interface {
	// List returns all tasks, newest-created first.
	List(ctx context.Context) ([]*domain.Task, error)

	// ListFiltered returns the page of tasks selected by the criteria,
	// ordered by its sort key and windowed by its (skip, take).
	ListFiltered(ctx context.Context, criteria taskfilter.Criteria) ([]*domain.Task, error)

	// ListByUser returns tasks assigned to or created by the username,
	// newest-created first.
	ListByUser(ctx context.Context, username string) ([]*domain.Task, error)

	// ListOverdue returns tasks with a due date before now that are neither
	// Completed nor Cancelled, ordered by due date ascending.
	ListOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Create saves a new task to the store.
	Create(ctx context.Context, task *domain.Task) error

	// Update modifies an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByUser returns the number of tasks assigned to or created by
	// the username.
	CountByUser(ctx context.Context, username string) (int, error)

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction, so multiple operations can run atomically.
	WithTx(tx *sql.Tx) TaskStore
}
