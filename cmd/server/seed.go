package main

import (
	"context"
	"fmt"
	"time"

	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/service/auth"
	"github.com/taskforge/taskforge-api/internal/store"
)

// seedData inserts a development data set: an admin user, three categories,
// and a handful of sample tasks. It is a no-op when tasks already exist.
func (app *application) seedData(ctx context.Context, hasher auth.PasswordHasher) error {
	existing, err := app.taskStore.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing tasks: %w", err)
	}
	if len(existing) > 0 {
		app.logger.Info("seed skipped, tasks already present", "count", len(existing))
		return nil
	}

	admin, err := app.userStore.GetByUsername(ctx, "admin")
	if store.IsNotFoundError(err) {
		hashed, err := hasher.Hash("admin123")
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		admin = domain.NewUser("admin", "admin@taskforge.local")
		admin.HashedPassword = hashed
		admin.FirstName = "Admin"
		admin.LastName = "User"
		admin.Role = domain.RoleAdmin
		if err := app.userStore.Create(ctx, admin); err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	categories := []*domain.Category{
		domain.NewCategory("Development", admin.ID),
		domain.NewCategory("Operations", admin.ID),
		domain.NewCategory("Documentation", admin.ID),
	}
	categories[1].Color = "#28a745"
	categories[2].Color = "#ffc107"
	for _, category := range categories {
		if err := app.categoryStore.Create(ctx, category); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", category.Name, err)
		}
	}

	now := time.Now().UTC()
	dueSoon := now.Add(72 * time.Hour)
	overdue := now.Add(-24 * time.Hour)

	tasks := []*domain.Task{
		domain.NewTask("Set up project repository", admin.Username),
		domain.NewTask("Configure deployment pipeline", admin.Username),
		domain.NewTask("Write API documentation", admin.Username),
	}
	tasks[0].Priority = domain.TaskPriorityHigh
	tasks[0].CategoryID = &categories[0].ID
	tasks[0].AssignedTo = admin.Username
	tasks[0].Tags = []string{"setup", "infrastructure"}
	tasks[1].CategoryID = &categories[1].ID
	tasks[1].DueDate = &dueSoon
	tasks[1].Tags = []string{"ci", "infrastructure"}
	tasks[2].Priority = domain.TaskPriorityLow
	tasks[2].CategoryID = &categories[2].ID
	tasks[2].DueDate = &overdue
	tasks[2].Tags = []string{"docs"}
	for _, task := range tasks {
		if err := app.taskStore.Create(ctx, task); err != nil {
			return fmt.Errorf("failed to seed task %q: %w", task.Title, err)
		}
	}

	app.logger.Info("seed data inserted",
		"users", 1, "categories", len(categories), "tasks", len(tasks))
	return nil
}
