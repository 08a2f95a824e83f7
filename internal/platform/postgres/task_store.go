package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/platform/logger"
	"github.com/taskforge/taskforge-api/internal/store"
	"github.com/taskforge/taskforge-api/internal/taskfilter"
)

// TaskStore implements the store.TaskStore interface using PostgreSQL.
// Read operations LEFT JOIN the categories table so returned tasks carry the
// hydrated category name and color.
type TaskStore struct {
	db store.DBTX
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface.
func NewTaskStore(db store.DBTX) *TaskStore {
	return &TaskStore{db: db}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

const taskSelect = `
	SELECT t.id, t.title, t.description, t.status, t.priority, t.due_date,
	       t.created_at, t.updated_at, t.completed_at, t.assigned_to,
	       t.created_by, t.tags, t.estimated_hours, t.actual_hours, t.notes,
	       t.user_id, t.category_id, c.name, c.color
	FROM tasks t
	LEFT JOIN categories c ON c.id = t.category_id
`

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return s.queryTasks(ctx, taskSelect+` ORDER BY t.created_at DESC`)
}

// ListByUser implements store.TaskStore.ListByUser
func (s *TaskStore) ListByUser(ctx context.Context, username string) ([]*domain.Task, error) {
	query := taskSelect + `
		WHERE t.assigned_to = $1 OR t.created_by = $1
		ORDER BY t.created_at DESC
	`
	return s.queryTasks(ctx, query, username)
}

// ListOverdue implements store.TaskStore.ListOverdue
func (s *TaskStore) ListOverdue(ctx context.Context, now time.Time) ([]*domain.Task, error) {
	query := taskSelect + `
		WHERE t.due_date IS NOT NULL
		  AND t.due_date < $1
		  AND t.status NOT IN ($2, $3)
		ORDER BY t.due_date ASC
	`
	return s.queryTasks(ctx, query, now,
		string(domain.TaskStatusCompleted), string(domain.TaskStatusCancelled))
}

// ListFiltered implements store.TaskStore.ListFiltered by translating the
// normalized criteria into a WHERE clause, ORDER BY, and LIMIT/OFFSET.
func (s *TaskStore) ListFiltered(ctx context.Context, criteria taskfilter.Criteria) ([]*domain.Task, error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if criteria.Status != nil {
		conditions = append(conditions, "t.status = "+arg(string(*criteria.Status)))
	}
	if criteria.Priority != nil {
		conditions = append(conditions, "t.priority = "+arg(string(*criteria.Priority)))
	}
	if criteria.AssignedTo != "" {
		conditions = append(conditions, "t.assigned_to = "+arg(criteria.AssignedTo))
	}
	if criteria.CreatedBy != "" {
		conditions = append(conditions, "t.created_by = "+arg(criteria.CreatedBy))
	}
	if criteria.DueDateFrom != nil {
		conditions = append(conditions, "t.due_date >= "+arg(*criteria.DueDateFrom))
	}
	if criteria.DueDateTo != nil {
		conditions = append(conditions, "t.due_date <= "+arg(*criteria.DueDateTo))
	}
	if len(criteria.Tags) > 0 {
		// Tags are stored as a JSONB array; ?| tests for any key overlap.
		tags, err := json.Marshal(criteria.Tags)
		if err != nil {
			return nil, fmt.Errorf("failed to encode filter tags: %w", err)
		}
		conditions = append(conditions,
			"t.tags ?| (SELECT array_agg(x) FROM jsonb_array_elements_text("+arg(tags)+"::jsonb) AS x)")
	}
	if criteria.CategoryID != nil {
		conditions = append(conditions, "t.category_id = "+arg(*criteria.CategoryID))
	}

	query := taskSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY " + orderClause(criteria)

	skip, take := criteria.Window()
	query += fmt.Sprintf(" LIMIT %s OFFSET %s", arg(take), arg(skip))

	return s.queryTasks(ctx, query, args...)
}

// orderClause maps the criteria sort key and direction to SQL. Enum columns
// sort by their canonical rank, not alphabetically, and NULL due dates sort
// first ascending to match the in-memory ordering.
func orderClause(criteria taskfilter.Criteria) string {
	direction := "ASC"
	nulls := " NULLS FIRST"
	if criteria.SortDescending {
		direction = "DESC"
		nulls = " NULLS LAST"
	}
	switch criteria.SortKey {
	case taskfilter.SortByTitle:
		return "t.title " + direction
	case taskfilter.SortByDueDate:
		return "t.due_date " + direction + nulls
	case taskfilter.SortByPriority:
		return priorityRankSQL + " " + direction
	case taskfilter.SortByStatus:
		return statusRankSQL + " " + direction
	default:
		return "t.created_at " + direction
	}
}

const priorityRankSQL = `CASE t.priority
	WHEN 'Low' THEN 0 WHEN 'Medium' THEN 1 WHEN 'High' THEN 2 WHEN 'Critical' THEN 3
	ELSE 4 END`

const statusRankSQL = `CASE t.status
	WHEN 'Pending' THEN 0 WHEN 'InProgress' THEN 1 WHEN 'Completed' THEN 2
	WHEN 'Cancelled' THEN 3 WHEN 'OnHold' THEN 4
	ELSE 5 END`

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := s.db.QueryRowContext(ctx, taskSelect+` WHERE t.id = $1`, id)
	task, err := scanTaskRow(row)
	if err != nil {
		return nil, notFoundAs(err, store.ErrTaskNotFound)
	}
	return task, nil
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	tags, err := json.Marshal(task.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode task tags: %w", err)
	}

	query := `
		INSERT INTO tasks (id, title, description, status, priority, due_date,
			created_at, updated_at, completed_at, assigned_to, created_by, tags,
			estimated_hours, actual_hours, notes, user_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err = s.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		nullString(task.Description),
		string(task.Status),
		string(task.Priority),
		task.DueDate,
		task.CreatedAt,
		task.UpdatedAt,
		task.CompletedAt,
		nullString(task.AssignedTo),
		task.CreatedBy,
		tags,
		task.EstimatedHours,
		task.ActualHours,
		nullString(task.Notes),
		task.UserID,
		task.CategoryID,
	)
	if err != nil {
		log.Error("failed to insert task", "error", err, "task_id", task.ID)
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	tags, err := json.Marshal(task.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode task tags: %w", err)
	}

	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5,
		    due_date = $6, updated_at = $7, completed_at = $8, assigned_to = $9,
		    tags = $10, estimated_hours = $11, actual_hours = $12, notes = $13,
		    user_id = $14, category_id = $15
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		nullString(task.Description),
		string(task.Status),
		string(task.Priority),
		task.DueDate,
		task.UpdatedAt,
		task.CompletedAt,
		nullString(task.AssignedTo),
		tags,
		task.EstimatedHours,
		task.ActualHours,
		nullString(task.Notes),
		task.UserID,
		task.CategoryID,
	)
	if err != nil {
		log.Error("failed to update task", "error", err, "task_id", task.ID)
		return fmt.Errorf("failed to update task: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}
	return nil
}

// CountByUser implements store.TaskStore.CountByUser
func (s *TaskStore) CountByUser(ctx context.Context, username string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM tasks WHERE assigned_to = $1 OR created_by = $1`
	if err := s.db.QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tasks by user: %w", err)
	}
	return count, nil
}

// WithTx implements store.TaskStore.WithTx
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return NewTaskStore(tx)
}

func (s *TaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTaskRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	return tasks, nil
}

func scanTaskRow(row rowScanner) (*domain.Task, error) {
	var (
		task          domain.Task
		description   sql.NullString
		status        string
		priority      string
		dueDate       sql.NullTime
		updatedAt     sql.NullTime
		completedAt   sql.NullTime
		assignedTo    sql.NullString
		tags          []byte
		notes         sql.NullString
		categoryName  sql.NullString
		categoryColor sql.NullString
	)
	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&status,
		&priority,
		&dueDate,
		&task.CreatedAt,
		&updatedAt,
		&completedAt,
		&assignedTo,
		&task.CreatedBy,
		&tags,
		&task.EstimatedHours,
		&task.ActualHours,
		&notes,
		&task.UserID,
		&task.CategoryID,
		&categoryName,
		&categoryColor,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	task.AssignedTo = assignedTo.String
	task.Notes = notes.String
	task.CategoryName = categoryName.String
	task.CategoryColor = categoryColor.String
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		task.UpdatedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		task.CompletedAt = &t
	}
	if err := json.Unmarshal(tags, &task.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode task tags: %w", err)
	}
	return &task, nil
}
