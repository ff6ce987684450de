package repository

import (
	"alcyxob/exercise-log/internal/domain"
	"context"
)

// Error constants for repository layer
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("unique constraint violated")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseRepository defines the interface for interacting with exercise and description data.
// Every returned exercise is a full aggregate: its descriptions are loaded in append order.
type ExerciseRepository interface {
	// Create inserts a new exercise. A duplicate name yields ErrConflict.
	Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error)
	// List returns all exercises ordered by id; an empty slice when there are none.
	List(ctx context.Context) ([]domain.Exercise, error)
	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)
	GetByName(ctx context.Context, name string) (*domain.Exercise, error)
	// DeleteByName removes the named exercise and its descriptions, returning rows removed (0 or 1).
	DeleteByName(ctx context.Context, name string) (int64, error)
	// AddDescription appends a description to an existing exercise and returns the reloaded aggregate.
	// Missing exercises yield ErrNotFound and nothing is written.
	AddDescription(ctx context.Context, exerciseID int64, description *domain.Description) (*domain.Exercise, error)
}
