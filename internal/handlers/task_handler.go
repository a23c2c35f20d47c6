package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"tarefas/internal/interfaces"
	"tarefas/internal/middleware"
	"tarefas/internal/models"
)

type TaskHandler struct {
	repo   interfaces.TaskRepository
	logger *zap.Logger
	v      *validator.Validate
}

func NewTaskHandler(repo interfaces.TaskRepository, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		repo:   repo,
		logger: logger.Named("tasks"),
		v:      newValidator(),
	}
}

// ownerID returns the authenticated user, writing 401 when there is none.
func ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSONErrorResponse(w, http.StatusUnauthorized, "unauthenticated", "Access token required")
	}
	return id, ok
}

func parseTaskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Task ID must be a positive integer")
		return 0, false
	}
	return id, true
}

// @Tags Tasks
// @Summary List the caller's tasks
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Task
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/tarefas [get]
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	tasks, err := h.repo.List(r.Context(), owner)
	if err != nil {
		h.logger.Error("list tasks", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	writeJSON(w, http.StatusOK, tasks)
}

// @Tags Tasks
// @Summary Create a task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.CreateTaskRequest true "Task"
// @Success 201 {object} models.Task
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/tarefas [post]
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Prazo != nil && *req.Prazo == "" {
		req.Prazo = nil
	}
	if err := h.v.Struct(req); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", validationMessage(err))
		return
	}
	if strings.TrimSpace(req.Texto) == "" {
		writeJSONErrorResponse(w, http.StatusBadRequest, "validation_error", "texto is required")
		return
	}

	task := &models.Task{
		Texto:      req.Texto,
		Prazo:      req.Prazo,
		Prioridade: req.Prioridade,
		UsuarioID:  owner,
	}
	if err := h.repo.Create(r.Context(), task); err != nil {
		h.logger.Error("create task", zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to create task")
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// UpdateTask applies a partial update. Only keys present in the body are
// written; a JSON null clears prazo or prioridade.
//
// @Tags Tasks
// @Summary Partially update a task
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param body body map[string]interface{} true "Subset of texto, prazo, prioridade, concluida"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/tarefas/{id} [put]
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	var fields map[string]any
	if err := decodeJSON(w, r, &fields); err != nil {
		writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_request", "Request body must be a JSON object")
		return
	}

	task, err := h.repo.Update(r.Context(), id, owner, fields)
	if err != nil {
		var fe *interfaces.FieldError
		switch {
		case errors.As(err, &fe):
			writeJSONErrorResponse(w, http.StatusBadRequest, "invalid_field", fe.Error())
		case errors.Is(err, interfaces.ErrNoFields):
			writeJSONErrorResponse(w, http.StatusBadRequest, "no_fields", "No fields to update")
		case errors.Is(err, interfaces.ErrNotFound):
			writeJSONErrorResponse(w, http.StatusNotFound, "task_not_found", "Task not found")
		default:
			h.logger.Error("update task", zap.Int64("task_id", id), zap.Error(err))
			writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to update task")
		}
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// @Tags Tasks
// @Summary Delete a task
// @Security BearerAuth
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} models.DeleteTaskResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/tarefas/{id} [delete]
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	id, ok := parseTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.repo.Delete(r.Context(), id, owner)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			writeJSONErrorResponse(w, http.StatusNotFound, "task_not_found", "Task not found")
			return
		}
		h.logger.Error("delete task", zap.Int64("task_id", id), zap.Error(err))
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to delete task")
		return
	}

	writeJSON(w, http.StatusOK, models.DeleteTaskResponse{Message: "Task deleted successfully", DeletedTask: task})
}
