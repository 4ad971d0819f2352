// Package users persists account records. The email unique constraint is the
// authoritative duplicate-registration guard.
package users

import (
	"context"

	"github.com/jtech/tasklist/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
