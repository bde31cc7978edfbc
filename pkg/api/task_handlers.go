package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/tasklist/pkg/auth"
	"github.com/platinummonkey/tasklist/pkg/httputil"
	"github.com/platinummonkey/tasklist/pkg/middleware"
	"github.com/platinummonkey/tasklist/pkg/storage"
)

// Bodies of successful update and delete responses, as existing clients
// expect them
const (
	msgTaskUpdated = "Todo Updated"
	msgTaskDeleted = "Todo deleted"
)

// TaskHandlers handles the owner-scoped task routes. Every route runs
// behind the bearer guard; the store only ever sees the caller's id.
type TaskHandlers struct {
	tasks  storage.TaskStore
	guard  *middleware.AuthMiddleware
	logger logrus.FieldLogger
}

// NewTaskHandlers creates a new task handlers instance
func NewTaskHandlers(tasks storage.TaskStore, guard *middleware.AuthMiddleware, logger logrus.FieldLogger) *TaskHandlers {
	return &TaskHandlers{
		tasks:  tasks,
		guard:  guard,
		logger: logger,
	}
}

// RegisterRoutes registers task routes
func (h *TaskHandlers) RegisterRoutes(router *mux.Router) {
	router.Handle("/todos", h.guard.Require(h.listTasks)).Methods("GET")
	router.Handle("/todos", h.guard.Require(h.createTask)).Methods("POST")
	router.Handle("/todos/{id}", h.guard.Require(h.updateTask)).Methods("PUT")
	router.Handle("/todos/{id}", h.guard.Require(h.deleteTask)).Methods("DELETE")
}

type createTaskRequest struct {
	Task *string `json:"task"`
}

type updateTaskRequest struct {
	Completed *bool `json:"completed"`
}

// listTasks handles GET /todos
func (h *TaskHandlers) listTasks(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	tasks, err := h.tasks.ListTasks(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, r, h.logger, err, msgTaskNotFound)
		return
	}

	httputil.WriteSuccess(w, tasks)
}

// createTask handles POST /todos
func (h *TaskHandlers) createTask(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	var req createTaskRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequirePresent(w, req.Task, "task") {
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), identity.UserID, *req.Task)
	if err != nil {
		writeError(w, r, h.logger, err, msgTaskNotFound)
		return
	}

	httputil.WriteSuccess(w, task)
}

// updateTask handles PUT /todos/{id}
func (h *TaskHandlers) updateTask(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	taskID, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	var req updateTaskRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequirePresent(w, req.Completed, "completed") {
		return
	}

	if err := h.tasks.UpdateTaskCompleted(r.Context(), identity.UserID, taskID, *req.Completed); err != nil {
		writeError(w, r, h.logger, err, msgTaskNotFound)
		return
	}

	httputil.WriteSuccess(w, msgTaskUpdated)
}

// deleteTask handles DELETE /todos/{id}
func (h *TaskHandlers) deleteTask(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	taskID, ok := httputil.ParsePathInt64OrError(w, r, "id")
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), identity.UserID, taskID); err != nil {
		writeError(w, r, h.logger, err, msgTaskNotFound)
		return
	}

	httputil.WriteSuccess(w, msgTaskDeleted)
}
