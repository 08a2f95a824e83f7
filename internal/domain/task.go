package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common task validation errors
var (
	ErrEmptyTaskID        = errors.New("task ID cannot be empty")
	ErrEmptyTitle         = errors.New("task title cannot be empty")
	ErrTitleTooLong       = errors.New("task title must be at most 200 characters")
	ErrDescriptionTooLong = errors.New("task description must be at most 1000 characters")
	ErrNotesTooLong       = errors.New("task notes must be at most 500 characters")
	ErrInvalidStatus      = errors.New("invalid task status")
	ErrInvalidPriority    = errors.New("invalid task priority")
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// Task statuses, in their canonical sort order.
const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "InProgress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusCancelled  TaskStatus = "Cancelled"
	TaskStatusOnHold     TaskStatus = "OnHold"
)

// statusRanks fixes the relative order of statuses for sorting.
var statusRanks = map[TaskStatus]int{
	TaskStatusPending:    0,
	TaskStatusInProgress: 1,
	TaskStatusCompleted:  2,
	TaskStatusCancelled:  3,
	TaskStatusOnHold:     4,
}

// ParseTaskStatus parses a status string case-insensitively.
// Returns ErrInvalidStatus for unknown values.
func ParseTaskStatus(s string) (TaskStatus, error) {
	for status := range statusRanks {
		if strings.EqualFold(s, string(status)) {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

// Rank returns the status sort rank. Unknown statuses sort last.
func (s TaskStatus) Rank() int {
	if rank, ok := statusRanks[s]; ok {
		return rank
	}
	return len(statusRanks)
}

// TaskPriority is the urgency level of a task.
type TaskPriority string

// Task priorities, lowest to highest.
const (
	TaskPriorityLow      TaskPriority = "Low"
	TaskPriorityMedium   TaskPriority = "Medium"
	TaskPriorityHigh     TaskPriority = "High"
	TaskPriorityCritical TaskPriority = "Critical"
)

var priorityRanks = map[TaskPriority]int{
	TaskPriorityLow:      0,
	TaskPriorityMedium:   1,
	TaskPriorityHigh:     2,
	TaskPriorityCritical: 3,
}

// ParseTaskPriority parses a priority string case-insensitively.
// Returns ErrInvalidPriority for unknown values.
func ParseTaskPriority(s string) (TaskPriority, error) {
	for priority := range priorityRanks {
		if strings.EqualFold(s, string(priority)) {
			return priority, nil
		}
	}
	return "", ErrInvalidPriority
}

// Rank returns the priority sort rank. Unknown priorities sort last.
func (p TaskPriority) Rank() int {
	if rank, ok := priorityRanks[p]; ok {
		return rank
	}
	return len(priorityRanks)
}

// Task represents a unit of trackable work.
//
// AssignedTo and CreatedBy are denormalized username copies, not foreign keys:
// renaming a user does not cascade to existing tasks. UserID and CategoryID are
// the only relational links, both nullable and nulled out when the referenced
// row is deleted.
type Task struct {
	ID             uuid.UUID    `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	DueDate        *time.Time   `json:"due_date,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      *time.Time   `json:"updated_at,omitempty"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
	AssignedTo     string       `json:"assigned_to,omitempty"`
	CreatedBy      string       `json:"created_by"`
	Tags           []string     `json:"tags"`
	EstimatedHours *int         `json:"estimated_hours,omitempty"`
	ActualHours    *int         `json:"actual_hours,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	UserID         *uuid.UUID   `json:"user_id,omitempty"`
	CategoryID     *uuid.UUID   `json:"category_id,omitempty"`

	// CategoryName and CategoryColor are hydrated from the linked category on
	// read; they are not stored on the task row itself.
	CategoryName  string `json:"category_name,omitempty"`
	CategoryColor string `json:"category_color,omitempty"`
}

// NewTask creates a Task in its initial state: status Pending, createdAt set,
// updatedAt and completedAt unset.
func NewTask(title, createdBy string) *Task {
	return &Task{
		ID:        uuid.New(),
		Title:     title,
		Status:    TaskStatusPending,
		Priority:  TaskPriorityMedium,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
		Tags:      []string{},
	}
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.Title == "" {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return ErrTitleTooLong
	}
	if len(t.Description) > 1000 {
		return ErrDescriptionTooLong
	}
	if len(t.Notes) > 500 {
		return ErrNotesTooLong
	}
	if _, ok := statusRanks[t.Status]; !ok {
		return ErrInvalidStatus
	}
	if _, ok := priorityRanks[t.Priority]; !ok {
		return ErrInvalidPriority
	}
	return nil
}

// IsOverdue reports whether the task is overdue at the given instant:
// the due date is set and in the past, and the task is neither Completed
// nor Cancelled.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == TaskStatusCompleted || t.Status == TaskStatusCancelled {
		return false
	}
	return t.DueDate.Before(now)
}

// Complete is the single enforced status transition: it forces the task to
// Completed and stamps completedAt and updatedAt with the same timestamp.
// Every other status change is a plain field write through an update; calling
// Complete on an already-completed task re-stamps the timestamps, matching
// the permissive lifecycle this model deliberately keeps.
func (t *Task) Complete(now time.Time) {
	t.Status = TaskStatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = &now
}
