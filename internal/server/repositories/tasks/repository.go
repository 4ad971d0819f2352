// Package tasks persists task records scoped to their owning user.
package tasks

import (
	"context"

	"github.com/jtech/tasklist/internal/server/models"
)

// Filter narrows a listing. Title is matched as a case-insensitive substring;
// TaskListID, when set, restricts the result to one parent list.
type Filter struct {
	Title      string
	TaskListID string
}

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// GetByOwnerAndID returns the active task with the given id owned by
	// ownerID, or common.ErrNotFound.
	GetByOwnerAndID(ctx context.Context, id, ownerID string) (*models.Task, error)

	// ListByOwner returns one page of the owner's active tasks plus the total
	// row count of the filtered set, ordered by creation time.
	ListByOwner(ctx context.Context, ownerID string, f Filter, p models.PageRequest) ([]*models.Task, int64, error)

	// ListAllByOwner returns every active task of the owner in the same order
	// as ListByOwner.
	ListAllByOwner(ctx context.Context, ownerID string, f Filter) ([]*models.Task, error)

	// Update rewrites the mutable fields and refreshes updated_at.
	Update(ctx context.Context, task *models.Task) (*models.Task, error)

	// Delete removes the row permanently. Referential violations are returned
	// as common.ErrConflict.
	Delete(ctx context.Context, id string) error

	// SetInactive flags the row inactive (soft delete).
	SetInactive(ctx context.Context, id string) error
}
