package taskfilter

import (
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge-api/internal/domain"
)

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	c := Filter{}.Build()

	skip, take := c.Window()
	assert.Equal(t, 0, skip)
	assert.Equal(t, DefaultPageSize, take)
	assert.Equal(t, SortByCreatedAt, c.SortKey)
	assert.False(t, c.SortDescending)
	assert.Nil(t, c.Status)
	assert.Nil(t, c.Priority)
}

func TestBuildClampsPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		page     int
		pageSize int
		wantSkip int
		wantTake int
	}{
		{"zero values", 0, 0, 0, DefaultPageSize},
		{"negative values", -3, -1, 0, DefaultPageSize},
		{"first page", 1, 5, 0, 5},
		{"third page", 3, 5, 10, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skip, take := Filter{Page: tt.page, PageSize: tt.pageSize}.Build().Window()
			assert.Equal(t, tt.wantSkip, skip)
			assert.Equal(t, tt.wantTake, take)
		})
	}
}

func TestBuildDropsUnparsableEnums(t *testing.T) {
	t.Parallel()

	c := Filter{Status: "bogus", Priority: "urgent"}.Build()

	assert.Nil(t, c.Status, "unknown status should drop the condition")
	assert.Nil(t, c.Priority, "unknown priority should drop the condition")

	// A dropped condition imposes no constraint.
	task := domain.NewTask("anything", "alice")
	assert.True(t, c.Matches(task))
}

func TestBuildParsesEnumsCaseInsensitively(t *testing.T) {
	t.Parallel()

	c := Filter{Status: "inprogress", Priority: "HIGH"}.Build()

	require.NotNil(t, c.Status)
	require.NotNil(t, c.Priority)
	assert.Equal(t, domain.TaskStatusInProgress, *c.Status)
	assert.Equal(t, domain.TaskPriorityHigh, *c.Priority)
}

func TestBuildSortKeyFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SortByTitle, Filter{SortBy: "TITLE"}.Build().SortKey)
	assert.Equal(t, SortByDueDate, Filter{SortBy: "DueDate"}.Build().SortKey)
	assert.Equal(t, SortByPriority, Filter{SortBy: "priority"}.Build().SortKey)
	assert.Equal(t, SortByStatus, Filter{SortBy: "status"}.Build().SortKey)
	assert.Equal(t, SortByCreatedAt, Filter{SortBy: "garbage"}.Build().SortKey)
	assert.Equal(t, SortByCreatedAt, Filter{}.Build().SortKey)
}

func TestMatchesIsConjunctive(t *testing.T) {
	t.Parallel()

	task := domain.NewTask("deploy service", "alice")
	task.AssignedTo = "bob"
	task.Priority = domain.TaskPriorityHigh

	both := Filter{Priority: "high", AssignedTo: "bob"}.Build()
	assert.True(t, both.Matches(task))

	oneFails := Filter{Priority: "high", AssignedTo: "carol"}.Build()
	assert.False(t, oneFails.Matches(task))
}

func TestMatchesTagOverlap(t *testing.T) {
	t.Parallel()

	task := domain.NewTask("tagged", "alice")
	task.Tags = []string{"infra", "urgent"}

	assert.True(t, Filter{Tags: []string{"urgent", "docs"}}.Build().Matches(task),
		"any overlapping tag should match")
	assert.False(t, Filter{Tags: []string{"docs"}}.Build().Matches(task))

	untagged := domain.NewTask("untagged", "alice")
	assert.False(t, Filter{Tags: []string{"docs"}}.Build().Matches(untagged))
}

func TestMatchesDueDateRange(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	task := domain.NewTask("due in march", "alice")
	task.DueDate = &due

	from := due.Add(-24 * time.Hour)
	to := due.Add(24 * time.Hour)

	assert.True(t, Filter{DueDateFrom: &from, DueDateTo: &to}.Build().Matches(task))

	after := due.Add(time.Hour)
	assert.False(t, Filter{DueDateFrom: &after}.Build().Matches(task))

	noDue := domain.NewTask("no due date", "alice")
	assert.False(t, Filter{DueDateFrom: &from}.Build().Matches(noDue),
		"date bounds exclude tasks without a due date")
}

func TestMatchesCategory(t *testing.T) {
	t.Parallel()

	catID := uuid.New()
	task := domain.NewTask("categorized", "alice")
	task.CategoryID = &catID

	assert.True(t, Filter{CategoryID: &catID}.Build().Matches(task))

	other := uuid.New()
	assert.False(t, Filter{CategoryID: &other}.Build().Matches(task))

	uncategorized := domain.NewTask("uncategorized", "alice")
	assert.False(t, Filter{CategoryID: &catID}.Build().Matches(uncategorized))
}

func TestLessOrdersNilDueDatesFirst(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	withDue := domain.NewTask("with due", "alice")
	withDue.DueDate = &due
	withoutDue := domain.NewTask("without due", "alice")

	asc := Filter{SortBy: "duedate"}.Build()
	assert.True(t, asc.Less(withoutDue, withDue))
	assert.False(t, asc.Less(withDue, withoutDue))

	desc := Filter{SortBy: "duedate", SortDescending: true}.Build()
	assert.True(t, desc.Less(withDue, withoutDue))
}

func TestLessByPriorityRank(t *testing.T) {
	t.Parallel()

	low := domain.NewTask("low", "alice")
	low.Priority = domain.TaskPriorityLow
	critical := domain.NewTask("critical", "alice")
	critical.Priority = domain.TaskPriorityCritical

	asc := Filter{SortBy: "priority"}.Build()
	assert.True(t, asc.Less(low, critical))

	desc := Filter{SortBy: "priority", SortDescending: true}.Build()
	assert.True(t, desc.Less(critical, low))
}

func TestHighPriorityTitleAscendingScenario(t *testing.T) {
	t.Parallel()

	mk := func(title string, priority domain.TaskPriority) *domain.Task {
		task := domain.NewTask(title, "alice")
		task.Priority = priority
		return task
	}
	tasks := []*domain.Task{
		mk("zeta", domain.TaskPriorityHigh),
		mk("alpha", domain.TaskPriorityLow),
		mk("mike", domain.TaskPriorityHigh),
		mk("bravo", domain.TaskPriorityHigh),
	}

	c := Filter{Priority: "HIGH", SortBy: "title"}.Build()

	var matched []*domain.Task
	for _, task := range tasks {
		if c.Matches(task) {
			matched = append(matched, task)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return c.Less(matched[i], matched[j]) })

	require.Len(t, matched, 3)
	assert.Equal(t, "bravo", matched[0].Title)
	assert.Equal(t, "mike", matched[1].Title)
	assert.Equal(t, "zeta", matched[2].Title)
}
