package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/store"
)

// CategoryStore implements the store.CategoryStore interface using PostgreSQL.
type CategoryStore struct {
	db store.DBTX
}

// NewCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface.
func NewCategoryStore(db store.DBTX) *CategoryStore {
	return &CategoryStore{db: db}
}

// Ensure CategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*CategoryStore)(nil)

const categoryColumns = `id, name, description, color, is_active, created_by_id, created_at, updated_at`

// List implements store.CategoryStore.List
func (s *CategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategoryRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

// GetByID implements store.CategoryStore.GetByID
func (s *CategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	category, err := scanCategoryRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFoundAs(err, store.ErrCategoryNotFound)
	}
	return category, nil
}

// Create implements store.CategoryStore.Create
func (s *CategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		category.ID,
		category.Name,
		nullString(category.Description),
		nullString(category.Color),
		category.IsActive,
		category.CreatedByID,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// WithTx implements store.CategoryStore.WithTx
func (s *CategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return NewCategoryStore(tx)
}

func scanCategoryRow(row rowScanner) (*domain.Category, error) {
	var (
		category    domain.Category
		description sql.NullString
		color       sql.NullString
		updatedAt   sql.NullTime
	)
	err := row.Scan(
		&category.ID,
		&category.Name,
		&description,
		&color,
		&category.IsActive,
		&category.CreatedByID,
		&category.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	category.Description = description.String
	category.Color = color.String
	if updatedAt.Valid {
		t := updatedAt.Time
		category.UpdatedAt = &t
	}
	return &category, nil
}
