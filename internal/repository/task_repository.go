// internal/repository/task_repository.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tarefas/internal/interfaces"
	"tarefas/internal/models"
)

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) interfaces.TaskRepository {
	return &taskRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var t models.Task
	var prazo sql.NullTime
	var prioridade sql.NullString
	if err := row.Scan(&t.ID, &t.Texto, &prazo, &prioridade, &t.Concluida, &t.UsuarioID); err != nil {
		return nil, err
	}
	if prazo.Valid {
		s := prazo.Time.Format(models.DateLayout)
		t.Prazo = &s
	}
	if prioridade.Valid {
		s := prioridade.String
		t.Prioridade = &s
	}
	return &t, nil
}

// List returns the owner's tasks in creation order.
func (r *taskRepository) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	query := `
		SELECT ` + taskReturning + `
		FROM tarefas
		WHERE usuario_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}
	return tasks, nil
}

// Create inserts task and overwrites it with the stored row.
func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tarefas (texto, prazo, prioridade, usuario_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + taskReturning

	created, err := scanTask(r.db.QueryRowContext(ctx, query, task.Texto, task.Prazo, task.Prioridade, task.UsuarioID))
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	*task = *created
	return nil
}

func (r *taskRepository) Update(ctx context.Context, id int64, ownerID string, fields map[string]any) (*models.Task, error) {
	query, args, err := buildTaskUpdate(fields, id, ownerID)
	if err != nil {
		return nil, err
	}

	t, err := scanTask(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return t, nil
}

// Delete removes the row and returns its last state.
func (r *taskRepository) Delete(ctx context.Context, id int64, ownerID string) (*models.Task, error) {
	query := `
		DELETE FROM tarefas
		WHERE id = $1 AND usuario_id = $2
		RETURNING ` + taskReturning

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return t, nil
}
