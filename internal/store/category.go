package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// List returns all categories ordered by name ascending.
	List(ctx context.Context) ([]*domain.Category, error)

	// GetByID retrieves a category by its unique ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// Create saves a new category to the store.
	Create(ctx context.Context, category *domain.Category) error

	// WithTx returns a new CategoryStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) CategoryStore
}
