// Package tasklists persists task lists scoped to their owning user.
package tasklists

import (
	"context"

	"github.com/jtech/tasklist/internal/server/models"
)

// Filter narrows a listing. Name, when set, is matched as a case-insensitive
// substring.
type Filter struct {
	Name string
}

type Repository interface {
	Create(ctx context.Context, list *models.TaskList) (*models.TaskList, error)

	// GetByOwnerAndID returns the active list with the given id owned by
	// ownerID, or common.ErrNotFound.
	GetByOwnerAndID(ctx context.Context, id, ownerID string) (*models.TaskList, error)

	// ListByOwner returns one page of the owner's active lists plus the total
	// row count of the filtered set, ordered by creation time.
	ListByOwner(ctx context.Context, ownerID string, f Filter, p models.PageRequest) ([]*models.TaskList, int64, error)

	// ListAllByOwner returns every active list of the owner in the same order
	// as ListByOwner.
	ListAllByOwner(ctx context.Context, ownerID string, f Filter) ([]*models.TaskList, error)

	// Update rewrites the mutable fields and refreshes updated_at.
	Update(ctx context.Context, list *models.TaskList) (*models.TaskList, error)

	// Delete removes the row permanently. Referential violations are returned
	// as common.ErrConflict.
	Delete(ctx context.Context, id string) error

	// SetInactive flags the row inactive (soft delete).
	SetInactive(ctx context.Context, id string) error
}
