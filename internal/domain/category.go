package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common category validation errors
var (
	ErrEmptyCategoryID   = errors.New("category ID cannot be empty")
	ErrEmptyCategoryName = errors.New("category name cannot be empty")
)

// DefaultCategoryColor is applied when a category is created without a color.
const DefaultCategoryColor = "#007bff"

// UncategorizedLabel groups tasks without a category in statistics breakdowns.
const UncategorizedLabel = "Uncategorized"

// Category groups tasks. Every category is owned by the user who created it;
// deleting a user with categories is restricted, while deleting a category
// nulls out the reference on its tasks.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Color       string     `json:"color,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedByID uuid.UUID  `json:"created_by_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// NewCategory creates an active Category owned by the given user, applying the
// default color when none is provided.
func NewCategory(name string, createdByID uuid.UUID) *Category {
	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Color:       DefaultCategoryColor,
		IsActive:    true,
		CreatedByID: createdByID,
		CreatedAt:   time.Now().UTC(),
	}
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCategoryID
	}
	if c.Name == "" {
		return ErrEmptyCategoryName
	}
	if c.CreatedByID == uuid.Nil {
		return errors.New("category must have a creating user")
	}
	return nil
}
