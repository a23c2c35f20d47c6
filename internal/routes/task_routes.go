package routes

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"tarefas/internal/handlers"
	"tarefas/internal/repository"
)

func RegisterTaskRoutes(router chi.Router, db *sql.DB, guard func(http.Handler) http.Handler, logger *zap.Logger) {
	taskRepo := repository.NewTaskRepository(db)
	taskHandler := handlers.NewTaskHandler(taskRepo, logger)

	router.Route("/tarefas", func(r chi.Router) {
		r.Use(guard)
		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", taskHandler.UpdateTask)
			r.Delete("/", taskHandler.DeleteTask)
		})
	})
}
