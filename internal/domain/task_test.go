package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseTaskStatus("inprogress")
	require.NoError(t, err)
	assert.Equal(t, TaskStatusInProgress, status)

	status, err = ParseTaskStatus("COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, TaskStatusCompleted, status)

	_, err = ParseTaskStatus("done")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParseTaskPriority(t *testing.T) {
	t.Parallel()

	priority, err := ParseTaskPriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, TaskPriorityHigh, priority)

	_, err = ParseTaskPriority("urgent")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestNewTaskDefaults(t *testing.T) {
	t.Parallel()

	task := NewTask("write report", "alice")

	assert.NotEqual(t, uuid.Nil, task.ID)
	assert.Equal(t, TaskStatusPending, task.Status)
	assert.Equal(t, TaskPriorityMedium, task.Priority)
	assert.Equal(t, "alice", task.CreatedBy)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Nil(t, task.UpdatedAt)
	assert.Nil(t, task.CompletedAt)
	assert.NotNil(t, task.Tags)
	assert.Empty(t, task.Tags)
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	valid := NewTask("ok", "alice")
	assert.NoError(t, valid.Validate())

	empty := NewTask("", "alice")
	assert.ErrorIs(t, empty.Validate(), ErrEmptyTitle)

	long := NewTask(strings.Repeat("x", 201), "alice")
	assert.ErrorIs(t, long.Validate(), ErrTitleTooLong)

	desc := NewTask("ok", "alice")
	desc.Description = strings.Repeat("x", 1001)
	assert.ErrorIs(t, desc.Validate(), ErrDescriptionTooLong)

	notes := NewTask("ok", "alice")
	notes.Notes = strings.Repeat("x", 501)
	assert.ErrorIs(t, notes.Validate(), ErrNotesTooLong)

	badStatus := NewTask("ok", "alice")
	badStatus.Status = "Done"
	assert.ErrorIs(t, badStatus.Validate(), ErrInvalidStatus)
}

func TestIsOverdue(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	pastDuePending := NewTask("A", "alice")
	pastDuePending.DueDate = &yesterday
	assert.True(t, pastDuePending.IsOverdue(now))

	pastDueCompleted := NewTask("B", "alice")
	pastDueCompleted.DueDate = &yesterday
	pastDueCompleted.Status = TaskStatusCompleted
	assert.False(t, pastDueCompleted.IsOverdue(now))

	pastDueCancelled := NewTask("cancelled", "alice")
	pastDueCancelled.DueDate = &yesterday
	pastDueCancelled.Status = TaskStatusCancelled
	assert.False(t, pastDueCancelled.IsOverdue(now))

	noDueDate := NewTask("C", "alice")
	assert.False(t, noDueDate.IsOverdue(now))

	futureDue := NewTask("future", "alice")
	futureDue.DueDate = &tomorrow
	assert.False(t, futureDue.IsOverdue(now))
}

func TestCompleteStampsTimestamps(t *testing.T) {
	t.Parallel()

	task := NewTask("finish me", "alice")
	first := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	task.Complete(first)

	assert.Equal(t, TaskStatusCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)
	require.NotNil(t, task.UpdatedAt)
	assert.Equal(t, first, *task.CompletedAt)
	assert.Equal(t, *task.CompletedAt, *task.UpdatedAt)

	// Completing again re-stamps rather than failing.
	second := first.Add(time.Hour)
	task.Complete(second)
	assert.Equal(t, second, *task.CompletedAt)
	assert.Equal(t, second, *task.UpdatedAt)
}
