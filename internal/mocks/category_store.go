package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
	"github.com/taskforge/taskforge-api/internal/store"
)

// MockCategoryStore implements store.CategoryStore for testing
type MockCategoryStore struct {
	// Function fields for customizable behavior
	ListFn    func(ctx context.Context) ([]*domain.Category, error)
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	CreateFn  func(ctx context.Context, category *domain.Category) error

	// Data for default implementation
	Categories map[uuid.UUID]*domain.Category
}

// NewMockCategoryStore creates a new mock store with initialized defaults
func NewMockCategoryStore() *MockCategoryStore {
	return &MockCategoryStore{
		Categories: make(map[uuid.UUID]*domain.Category),
	}
}

// Ensure MockCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*MockCategoryStore)(nil)

// List implements the CategoryStore interface, ordered by name ascending.
func (m *MockCategoryStore) List(ctx context.Context) ([]*domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	categories := make([]*domain.Category, 0, len(m.Categories))
	for _, category := range m.Categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// GetByID implements the CategoryStore interface
func (m *MockCategoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	category, exists := m.Categories[id]
	if !exists {
		return nil, store.ErrCategoryNotFound
	}
	return category, nil
}

// Create implements the CategoryStore interface
func (m *MockCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, category)
	}

	m.Categories[category.ID] = category
	return nil
}

// WithTx implements the CategoryStore interface for transaction support
func (m *MockCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	// For mock purposes, just return the same mock
	return m
}
