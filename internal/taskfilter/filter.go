// Package taskfilter translates a task filter specification into a normalized
// query criteria: a conjunctive predicate over tasks, a total order, and a
// pagination window. It is pure and performs no I/O, so the same criteria can
// drive both in-memory filtering and SQL generation in the store layer.
package taskfilter

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
)

// DefaultPageSize is used when the filter does not specify a page size.
const DefaultPageSize = 10

// SortKey identifies the field a task listing is ordered by.
type SortKey string

// Supported sort keys. Anything else falls back to SortByCreatedAt.
const (
	SortByCreatedAt SortKey = "createdat"
	SortByTitle     SortKey = "title"
	SortByDueDate   SortKey = "duedate"
	SortByPriority  SortKey = "priority"
	SortByStatus    SortKey = "status"
)

// Filter is the raw, optional-field filter specification as supplied by a
// caller. String enum values are matched case-insensitively; values that do
// not parse are silently dropped rather than rejected, preserving the
// best-effort filtering contract callers rely on.
type Filter struct {
	Status         string
	Priority       string
	AssignedTo     string
	CreatedBy      string
	DueDateFrom    *time.Time
	DueDateTo      *time.Time
	Tags           []string
	CategoryID     *uuid.UUID
	Page           int
	PageSize       int
	SortBy         string
	SortDescending bool
}

// Criteria is the normalized form of a Filter: parsed enum conditions, a
// resolved sort key and direction, and an absolute (skip, take) window.
type Criteria struct {
	Status         *domain.TaskStatus
	Priority       *domain.TaskPriority
	AssignedTo     string
	CreatedBy      string
	DueDateFrom    *time.Time
	DueDateTo      *time.Time
	Tags           []string
	CategoryID     *uuid.UUID
	SortKey        SortKey
	SortDescending bool

	skip int
	take int
}

// Build normalizes the filter into query criteria.
//
// Pagination is clamped: page values below 1 become 1, and page sizes below 1
// fall back to DefaultPageSize, so the window is always well-formed.
func (f Filter) Build() Criteria {
	c := Criteria{
		AssignedTo:     f.AssignedTo,
		CreatedBy:      f.CreatedBy,
		DueDateFrom:    f.DueDateFrom,
		DueDateTo:      f.DueDateTo,
		Tags:           f.Tags,
		CategoryID:     f.CategoryID,
		SortDescending: f.SortDescending,
	}

	// Unparsable status/priority values drop their condition entirely.
	if f.Status != "" {
		if status, err := domain.ParseTaskStatus(f.Status); err == nil {
			c.Status = &status
		}
	}
	if f.Priority != "" {
		if priority, err := domain.ParseTaskPriority(f.Priority); err == nil {
			c.Priority = &priority
		}
	}

	switch SortKey(strings.ToLower(f.SortBy)) {
	case SortByTitle:
		c.SortKey = SortByTitle
	case SortByDueDate:
		c.SortKey = SortByDueDate
	case SortByPriority:
		c.SortKey = SortByPriority
	case SortByStatus:
		c.SortKey = SortByStatus
	default:
		c.SortKey = SortByCreatedAt
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	pageSize := f.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	c.skip = (page - 1) * pageSize
	c.take = pageSize

	return c
}

// Window returns the pagination window as (skip, take).
func (c Criteria) Window() (skip, take int) {
	return c.skip, c.take
}

// Matches reports whether the task satisfies every present condition.
// Absent conditions impose no constraint.
func (c Criteria) Matches(t *domain.Task) bool {
	if c.Status != nil && t.Status != *c.Status {
		return false
	}
	if c.Priority != nil && t.Priority != *c.Priority {
		return false
	}
	if c.AssignedTo != "" && t.AssignedTo != c.AssignedTo {
		return false
	}
	if c.CreatedBy != "" && t.CreatedBy != c.CreatedBy {
		return false
	}
	if c.DueDateFrom != nil && (t.DueDate == nil || t.DueDate.Before(*c.DueDateFrom)) {
		return false
	}
	if c.DueDateTo != nil && (t.DueDate == nil || t.DueDate.After(*c.DueDateTo)) {
		return false
	}
	if len(c.Tags) > 0 && !anyTagMatches(c.Tags, t.Tags) {
		return false
	}
	if c.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *c.CategoryID) {
		return false
	}
	return true
}

// anyTagMatches reports whether any filter tag appears in the task's tag list.
func anyTagMatches(filterTags, taskTags []string) bool {
	for _, want := range filterTags {
		for _, have := range taskTags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Less orders two tasks by the criteria's sort key and direction. Ties have no
// defined secondary order; a stable sort preserves input order for equal keys.
func (c Criteria) Less(a, b *domain.Task) bool {
	if c.SortDescending {
		a, b = b, a
	}
	switch c.SortKey {
	case SortByTitle:
		return a.Title < b.Title
	case SortByDueDate:
		return timePtrBefore(a.DueDate, b.DueDate)
	case SortByPriority:
		return a.Priority.Rank() < b.Priority.Rank()
	case SortByStatus:
		return a.Status.Rank() < b.Status.Rank()
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

// timePtrBefore orders optional times with nil (no due date) first, matching
// how SQL NULLs order ascending in the backing store.
func timePtrBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	default:
		return a.Before(*b)
	}
}
