package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/store"
	"github.com/taskforge/taskforge-api/internal/taskfilter"
)

// CreateTaskInput carries the caller-supplied fields for a new task.
// Status is never an input: new tasks always start Pending.
type CreateTaskInput struct {
	Title          string
	Description    string
	Priority       string
	DueDate        *time.Time
	AssignedTo     string
	Tags           []string
	EstimatedHours *int
	Notes          string
	CategoryID     *uuid.UUID
}

// UpdateTaskInput carries a partial update: nil fields are left untouched
// (absence is a no-op, not a reset-to-null).
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	Status         *string
	Priority       *string
	DueDate        *time.Time
	AssignedTo     *string
	Tags           []string
	EstimatedHours *int
	ActualHours    *int
	Notes          *string
	CategoryID     *uuid.UUID
}

// PriorityCount is one row of the statistics priority breakdown.
type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}

// CategoryCount is one row of the statistics category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TaskStatistics aggregates the task collection.
type TaskStatistics struct {
	TotalTasks        int             `json:"total_tasks"`
	CompletedTasks    int             `json:"completed_tasks"`
	PendingTasks      int             `json:"pending_tasks"`
	InProgressTasks   int             `json:"in_progress_tasks"`
	CancelledTasks    int             `json:"cancelled_tasks"`
	OnHoldTasks       int             `json:"on_hold_tasks"`
	OverdueTasks      int             `json:"overdue_tasks"`
	CompletionRate    float64         `json:"completion_rate"`
	PriorityBreakdown []PriorityCount `json:"priority_breakdown"`
	CategoryBreakdown []CategoryCount `json:"category_breakdown"`
}

// TaskService implements the task query/filter/statistics engine.
type TaskService struct {
	taskStore store.TaskStore
	notifier  NotificationService
	logger    *slog.Logger
	db        *sql.DB
	timeFunc  func() time.Time // Injectable for testing
}

// NewTaskService creates a new TaskService. A nil db puts the service in
// direct-store mode (used with in-memory stores in tests), where
// read-modify-write sequences are not wrapped in a transaction and concurrent
// updates to the same id are last-writer-wins.
func NewTaskService(
	taskStore store.TaskStore,
	notifier NotificationService,
	db *sql.DB,
	logger *slog.Logger,
) *TaskService {
	return &TaskService{
		taskStore: taskStore,
		notifier:  notifier,
		db:        db,
		logger:    logger.With("component", "task_service"),
		timeFunc:  time.Now,
	}
}

// inTaskTx runs fn against a transaction-scoped task store when a database is
// available, or directly against the configured store otherwise.
func (s *TaskService) inTaskTx(ctx context.Context, fn func(ts store.TaskStore) error) error {
	if s.db == nil {
		return fn(s.taskStore)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(s.taskStore.WithTx(tx))
	})
}

// ListAll returns every task, newest-created first.
func (s *TaskService) ListAll(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetByID retrieves a single task.
// Returns store.ErrTaskNotFound when the id is absent.
func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to get task", "error", err, "task_id", id)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListFiltered applies the filter specification and returns the selected page.
// Unparsable enum values in the filter silently drop their condition rather
// than failing; the response carries only the page, not a total count.
func (s *TaskService) ListFiltered(ctx context.Context, filter taskfilter.Filter) ([]*domain.Task, error) {
	criteria := filter.Build()
	tasks, err := s.taskStore.ListFiltered(ctx, criteria)
	if err != nil {
		s.logger.Error("failed to list filtered tasks", "error", err)
		return nil, fmt.Errorf("failed to list filtered tasks: %w", err)
	}
	return tasks, nil
}

// Create persists a new task created by the given username and returns the
// hydrated record. Field validation is the caller's concern; the priority
// string is parsed here defensively and rejects unknown values.
func (s *TaskService) Create(ctx context.Context, input CreateTaskInput, createdBy string) (*domain.Task, error) {
	task := domain.NewTask(input.Title, createdBy)
	task.Description = input.Description
	task.DueDate = input.DueDate
	task.AssignedTo = input.AssignedTo
	task.EstimatedHours = input.EstimatedHours
	task.Notes = input.Notes
	task.CategoryID = input.CategoryID
	if input.Tags != nil {
		task.Tags = input.Tags
	}
	task.CreatedAt = s.timeFunc().UTC()

	if input.Priority != "" {
		priority, err := domain.ParseTaskPriority(input.Priority)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		task.Priority = priority
	}

	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task", "error", err, "created_by", createdBy)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created", "task_id", task.ID, "created_by", createdBy)

	if task.AssignedTo != "" {
		s.notifier.SendTaskAssigned(ctx, task.Title, task.AssignedTo, createdBy)
	}

	// Re-read to return the hydrated record (category name/color joined in).
	created, err := s.taskStore.GetByID(ctx, task.ID)
	if err != nil {
		s.logger.Error("failed to retrieve created task", "error", err, "task_id", task.ID)
		return nil, fmt.Errorf("failed to retrieve created task: %w", err)
	}
	return created, nil
}

// Update applies a partial update inside a transaction and returns the
// hydrated record. Only supplied fields change; updatedAt is stamped.
// Any parsable status may be written here; Complete is the only transition
// the service enforces.
func (s *TaskService) Update(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*domain.Task, error) {
	err := s.inTaskTx(ctx, func(ts store.TaskStore) error {
		task, err := ts.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get task for update: %w", err)
		}

		if input.Title != nil && *input.Title != "" {
			task.Title = *input.Title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.Status != nil && *input.Status != "" {
			status, err := domain.ParseTaskStatus(*input.Status)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
			task.Status = status
		}
		if input.Priority != nil && *input.Priority != "" {
			priority, err := domain.ParseTaskPriority(*input.Priority)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrValidation, err)
			}
			task.Priority = priority
		}
		if input.DueDate != nil {
			task.DueDate = input.DueDate
		}
		if input.AssignedTo != nil {
			task.AssignedTo = *input.AssignedTo
		}
		if input.Tags != nil {
			task.Tags = input.Tags
		}
		if input.EstimatedHours != nil {
			task.EstimatedHours = input.EstimatedHours
		}
		if input.ActualHours != nil {
			task.ActualHours = input.ActualHours
		}
		if input.Notes != nil {
			task.Notes = *input.Notes
		}
		if input.CategoryID != nil {
			task.CategoryID = input.CategoryID
		}

		now := s.timeFunc().UTC()
		task.UpdatedAt = &now

		if err := task.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}

		return ts.Update(ctx, task)
	})
	if err != nil {
		if !store.IsNotFoundError(err) && !errors.Is(err, ErrValidation) {
			s.logger.Error("failed to update task", "error", err, "task_id", id)
		}
		return nil, err
	}

	s.logger.Info("task updated", "task_id", id)
	return s.GetByID(ctx, id)
}

// Delete removes a task.
// Returns store.ErrTaskNotFound when the id is absent.
func (s *TaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.taskStore.Delete(ctx, id); err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to delete task", "error", err, "task_id", id)
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.logger.Info("task deleted", "task_id", id)
	return nil
}

// Complete forces the task to Completed, stamping completedAt and updatedAt
// with the same timestamp. Repeating the call succeeds and re-stamps the
// timestamps. Returns store.ErrTaskNotFound when the id is absent.
func (s *TaskService) Complete(ctx context.Context, id uuid.UUID) error {
	var title string
	err := s.inTaskTx(ctx, func(ts store.TaskStore) error {
		task, err := ts.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get task for completion: %w", err)
		}
		task.Complete(s.timeFunc().UTC())
		title = task.Title
		return ts.Update(ctx, task)
	})
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to complete task", "error", err, "task_id", id)
		}
		return err
	}

	s.logger.Info("task completed", "task_id", id)
	s.notifier.SendTaskCompleted(ctx, title, "")
	return nil
}

// ListByUser returns tasks assigned to or created by the username,
// newest-created first.
func (s *TaskService) ListByUser(ctx context.Context, username string) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListByUser(ctx, username)
	if err != nil {
		s.logger.Error("failed to list tasks by user", "error", err, "username", username)
		return nil, fmt.Errorf("failed to list tasks by user: %w", err)
	}
	return tasks, nil
}

// ListOverdue returns the overdue tasks, due date ascending. A task is overdue
// when its due date is set and past and it is neither Completed nor Cancelled.
func (s *TaskService) ListOverdue(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListOverdue(ctx, s.timeFunc().UTC())
	if err != nil {
		s.logger.Error("failed to list overdue tasks", "error", err)
		return nil, fmt.Errorf("failed to list overdue tasks: %w", err)
	}
	return tasks, nil
}

// Statistics computes aggregate counts over the whole task collection:
// totals and per-status counts, the overdue count, the completion rate
// (zero when the collection is empty), and breakdowns by priority and by
// category name, with uncategorized tasks grouped under a sentinel label.
func (s *TaskService) Statistics(ctx context.Context) (*TaskStatistics, error) {
	tasks, err := s.taskStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to load tasks for statistics", "error", err)
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	now := s.timeFunc().UTC()
	stats := &TaskStatistics{TotalTasks: len(tasks)}

	priorityCounts := make(map[domain.TaskPriority]int)
	categoryCounts := make(map[string]int)

	for _, t := range tasks {
		switch t.Status {
		case domain.TaskStatusCompleted:
			stats.CompletedTasks++
		case domain.TaskStatusPending:
			stats.PendingTasks++
		case domain.TaskStatusInProgress:
			stats.InProgressTasks++
		case domain.TaskStatusCancelled:
			stats.CancelledTasks++
		case domain.TaskStatusOnHold:
			stats.OnHoldTasks++
		}
		if t.IsOverdue(now) {
			stats.OverdueTasks++
		}
		priorityCounts[t.Priority]++

		name := t.CategoryName
		if name == "" {
			name = domain.UncategorizedLabel
		}
		categoryCounts[name]++
	}

	if stats.TotalTasks > 0 {
		stats.CompletionRate = float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
	}

	// Only priorities actually present appear, in rank order.
	for _, p := range []domain.TaskPriority{
		domain.TaskPriorityLow,
		domain.TaskPriorityMedium,
		domain.TaskPriorityHigh,
		domain.TaskPriorityCritical,
	} {
		if count := priorityCounts[p]; count > 0 {
			stats.PriorityBreakdown = append(stats.PriorityBreakdown, PriorityCount{
				Priority: string(p),
				Count:    count,
			})
		}
	}

	names := make([]string, 0, len(categoryCounts))
	for name := range categoryCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		stats.CategoryBreakdown = append(stats.CategoryBreakdown, CategoryCount{
			Category: name,
			Count:    categoryCounts[name],
		})
	}

	return stats, nil
}
