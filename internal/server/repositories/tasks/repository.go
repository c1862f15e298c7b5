package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository is owner-scoped task storage. Every lookup takes the owner
// alongside the id so a row belonging to another user is indistinguishable
// from a missing one.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	SelectByOwner(ctx context.Context, userID string) ([]*models.Task, error)
	GetByID(ctx context.Context, userID string, id int64) (*models.Task, error)
	GetByIDForUpdate(ctx context.Context, userID string, id int64) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, userID string, id int64) error
}
