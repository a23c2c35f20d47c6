// internal/interfaces/task_repository.go
package interfaces

import (
	"context"

	"tarefas/internal/models"
)

// TaskRepository defines task persistence. Every method takes the owner id
// and must never touch a row owned by somebody else.
type TaskRepository interface {
	List(ctx context.Context, ownerID string) ([]models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, id int64, ownerID string, fields map[string]any) (*models.Task, error)
	Delete(ctx context.Context, id int64, ownerID string) (*models.Task, error)
}
