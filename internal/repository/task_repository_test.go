package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"tarefas/internal/interfaces"
	"tarefas/internal/models"
)

var taskCols = []string{"id", "texto", "prazo", "prioridade", "concluida", "usuario_id"}

func TestTaskListScopedAndOrdered(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, texto, prazo, prioridade, concluida, usuario_id\s+FROM tarefas\s+WHERE usuario_id = \$1\s+ORDER BY id ASC`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow(int64(1), "primeira", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "alta", false, "u1").
			AddRow(int64(2), "segunda", nil, nil, true, "u1"))

	tasks, err := NewTaskRepository(db).List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks got %d", len(tasks))
	}
	if tasks[0].ID != 1 || tasks[1].ID != 2 {
		t.Fatalf("unexpected order: %+v", tasks)
	}
	if tasks[0].Prazo == nil || *tasks[0].Prazo != "2025-03-01" {
		t.Fatalf("expected prazo 2025-03-01 got %v", tasks[0].Prazo)
	}
	if tasks[1].Prazo != nil || tasks[1].Prioridade != nil {
		t.Fatalf("expected null prazo and prioridade got %+v", tasks[1])
	}
	if !tasks[1].Concluida {
		t.Fatalf("expected concluida=true")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTaskListEmptyIsNotNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM tarefas").WithArgs("u1").WillReturnRows(sqlmock.NewRows(taskCols))

	tasks, err := NewTaskRepository(db).List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("expected empty slice got %#v", tasks)
	}
}

func TestTaskCreateReturnsStoredRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	prazo := "2025-03-01"
	mock.ExpectQuery(`INSERT INTO tarefas \(texto, prazo, prioridade, usuario_id\)`).
		WithArgs("Comprar pão", "2025-03-01", nil, "u1").
		WillReturnRows(sqlmock.NewRows(taskCols).
			AddRow(int64(10), "Comprar pão", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), nil, false, "u1"))

	task := &models.Task{Texto: "Comprar pão", Prazo: &prazo, UsuarioID: "u1"}
	if err := NewTaskRepository(db).Create(context.Background(), task); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if task.ID != 10 {
		t.Fatalf("expected id 10 got %d", task.ID)
	}
	if task.Concluida {
		t.Fatalf("expected concluida=false")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTaskUpdateBindsOwnership(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE tarefas SET texto = $1, concluida = $2 WHERE id = $3 AND usuario_id = $4 RETURNING")).
		WithArgs("novo", true, int64(7), "u1").
		WillReturnRows(sqlmock.NewRows(taskCols).AddRow(int64(7), "novo", nil, "baixa", true, "u1"))

	task, err := NewTaskRepository(db).Update(context.Background(), 7, "u1", map[string]any{"texto": "novo", "concluida": true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if task.Texto != "novo" || !task.Concluida || task.Prioridade == nil || *task.Prioridade != "baixa" {
		t.Fatalf("unexpected task %+v", task)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTaskUpdateNotOwnedIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("UPDATE tarefas SET").
		WithArgs("x", int64(7), "intruso").
		WillReturnError(sql.ErrNoRows)

	_, err = NewTaskRepository(db).Update(context.Background(), 7, "intruso", map[string]any{"texto": "x"})
	if !errors.Is(err, interfaces.ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}

func TestTaskUpdateInvalidFieldsNeverReachDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewTaskRepository(db)
	if _, err := repo.Update(context.Background(), 1, "u1", map[string]any{}); !errors.Is(err, interfaces.ErrNoFields) {
		t.Fatalf("expected ErrNoFields got %v", err)
	}
	var fe *interfaces.FieldError
	if _, err := repo.Update(context.Background(), 1, "u1", map[string]any{"usuario_id": "u2"}); !errors.As(err, &fe) {
		t.Fatalf("expected FieldError got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTaskDeleteReturnsRemovedRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`DELETE FROM tarefas\s+WHERE id = \$1 AND usuario_id = \$2`).
		WithArgs(int64(4), "u1").
		WillReturnRows(sqlmock.NewRows(taskCols).AddRow(int64(4), "feita", nil, nil, true, "u1"))

	task, err := NewTaskRepository(db).Delete(context.Background(), 4, "u1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if task.ID != 4 || task.Texto != "feita" {
		t.Fatalf("unexpected task %+v", task)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestTaskDeleteMissingIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("DELETE FROM tarefas").
		WithArgs(int64(99), "u1").
		WillReturnRows(sqlmock.NewRows(taskCols))

	if _, err := NewTaskRepository(db).Delete(context.Background(), 99, "u1"); !errors.Is(err, interfaces.ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
}
