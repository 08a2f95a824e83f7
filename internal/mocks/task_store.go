package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/store"
	"github.com/taskforge/taskforge-api/internal/taskfilter"
)

// MockTaskStore implements store.TaskStore for testing. The default
// implementation keeps tasks in a map and reuses the taskfilter criteria for
// ListFiltered, so filter semantics in tests match the real store.
type MockTaskStore struct {
	// Function fields for customizable behavior
	ListFn         func(ctx context.Context) ([]*domain.Task, error)
	ListFilteredFn func(ctx context.Context, criteria taskfilter.Criteria) ([]*domain.Task, error)
	ListByUserFn   func(ctx context.Context, username string) ([]*domain.Task, error)
	ListOverdueFn  func(ctx context.Context, now time.Time) ([]*domain.Task, error)
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	CreateFn       func(ctx context.Context, task *domain.Task) error
	UpdateFn       func(ctx context.Context, task *domain.Task) error
	DeleteFn       func(ctx context.Context, id uuid.UUID) error
	CountByUserFn  func(ctx context.Context, username string) (int, error)

	// Data for default implementation
	Tasks       map[uuid.UUID]*domain.Task
	CreateError error
	UpdateError error
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Ensure MockTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*MockTaskStore)(nil)

// List implements the TaskStore interface, newest-created first.
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	tasks := m.all()
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// ListFiltered implements the TaskStore interface using the criteria's own
// predicate, ordering, and window.
func (m *MockTaskStore) ListFiltered(ctx context.Context, criteria taskfilter.Criteria) ([]*domain.Task, error) {
	if m.ListFilteredFn != nil {
		return m.ListFilteredFn(ctx, criteria)
	}

	var matched []*domain.Task
	for _, task := range m.all() {
		if criteria.Matches(task) {
			matched = append(matched, task)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return criteria.Less(matched[i], matched[j])
	})

	skip, take := criteria.Window()
	if skip >= len(matched) {
		return nil, nil
	}
	matched = matched[skip:]
	if take < len(matched) {
		matched = matched[:take]
	}
	return matched, nil
}

// ListByUser implements the TaskStore interface
func (m *MockTaskStore) ListByUser(ctx context.Context, username string) ([]*domain.Task, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, username)
	}

	var tasks []*domain.Task
	for _, task := range m.all() {
		if task.AssignedTo == username || task.CreatedBy == username {
			tasks = append(tasks, task)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// ListOverdue implements the TaskStore interface
func (m *MockTaskStore) ListOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error) {
	if m.ListOverdueFn != nil {
		return m.ListOverdueFn(ctx, now)
	}

	var tasks []*domain.Task
	for _, task := range m.all() {
		if task.IsOverdue(now) {
			tasks = append(tasks, task)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueDate.Before(*tasks[j].DueDate)
	})
	return tasks, nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Tasks[task.ID] = task
	return nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if m.UpdateError != nil {
		return m.UpdateError
	}

	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// CountByUser implements the TaskStore interface
func (m *MockTaskStore) CountByUser(ctx context.Context, username string) (int, error) {
	if m.CountByUserFn != nil {
		return m.CountByUserFn(ctx, username)
	}

	count := 0
	for _, task := range m.Tasks {
		if task.AssignedTo == username || task.CreatedBy == username {
			count++
		}
	}
	return count, nil
}

// WithTx implements the TaskStore interface for transaction support
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	// For mock purposes, just return the same mock
	return m
}

func (m *MockTaskStore) all() []*domain.Task {
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		tasks = append(tasks, task)
	}
	return tasks
}
