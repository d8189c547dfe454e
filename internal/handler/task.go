package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agustinleonardi/TaskManagerPro/internal/app"
	"github.com/agustinleonardi/TaskManagerPro/internal/telemetry"
)

const taskRoute = "/api/v1/tasks"

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	service *app.TaskService
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service *app.TaskService, logger *slog.Logger, metrics *telemetry.Metrics) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Routes returns the chi router with task routes.
func (h *TaskHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/complete", h.Complete)
	r.Post("/{id}/start", h.Start)
	r.Post("/{id}/cancel", h.Cancel)
	r.Get("/user/{userID}", h.ListByUser)
	r.Get("/user/{userID}/counts", h.CountsByUser)

	return r
}

// Create adds a new task.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	ctx, span := tracer.Start(ctx, "TaskHandler.Create")
	defer span.End()

	var req app.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		recordMetrics(ctx, h.metrics, "POST", taskRoute, http.StatusBadRequest, start)
		return
	}

	task, err := h.service.CreateTask(ctx, req)
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "POST", taskRoute, status, start)
		return
	}

	span.SetAttributes(attribute.String("task.id", task.ID.String()))
	respondJSON(w, http.StatusCreated, task)
	recordMetrics(ctx, h.metrics, "POST", taskRoute, http.StatusCreated, start)
}

// GetByID returns a task by ID.
func (h *TaskHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		recordMetrics(ctx, h.metrics, "GET", taskRoute+"/{id}", http.StatusBadRequest, start)
		return
	}

	ctx, span := tracer.Start(ctx, "TaskHandler.GetByID",
		trace.WithAttributes(attribute.String("task.id", id.String())),
	)
	defer span.End()

	task, err := h.service.GetTaskByID(ctx, id)
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "GET", taskRoute+"/{id}", status, start)
		return
	}

	respondJSON(w, http.StatusOK, task)
	recordMetrics(ctx, h.metrics, "GET", taskRoute+"/{id}", http.StatusOK, start)
}

// Update modifies an existing task. Absent fields keep their current values.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		recordMetrics(ctx, h.metrics, "PUT", taskRoute+"/{id}", http.StatusBadRequest, start)
		return
	}

	ctx, span := tracer.Start(ctx, "TaskHandler.Update",
		trace.WithAttributes(attribute.String("task.id", id.String())),
	)
	defer span.End()

	var req app.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		recordMetrics(ctx, h.metrics, "PUT", taskRoute+"/{id}", http.StatusBadRequest, start)
		return
	}

	task, err := h.service.UpdateTask(ctx, id, req)
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "PUT", taskRoute+"/{id}", status, start)
		return
	}

	respondJSON(w, http.StatusOK, task)
	recordMetrics(ctx, h.metrics, "PUT", taskRoute+"/{id}", http.StatusOK, start)
}

// Delete removes a task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		recordMetrics(ctx, h.metrics, "DELETE", taskRoute+"/{id}", http.StatusBadRequest, start)
		return
	}

	ctx, span := tracer.Start(ctx, "TaskHandler.Delete",
		trace.WithAttributes(attribute.String("task.id", id.String())),
	)
	defer span.End()

	if err := h.service.DeleteTask(ctx, id); err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "DELETE", taskRoute+"/{id}", status, start)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	recordMetrics(ctx, h.metrics, "DELETE", taskRoute+"/{id}", http.StatusNoContent, start)
}

// Complete marks a task completed.
func (h *TaskHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, taskRoute+"/{id}/complete", "TaskHandler.Complete", h.service.CompleteTask)
}

// Start marks a pending task in-progress.
func (h *TaskHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, taskRoute+"/{id}/start", "TaskHandler.Start", h.service.StartTask)
}

// Cancel marks a task cancelled.
func (h *TaskHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, taskRoute+"/{id}/cancel", "TaskHandler.Cancel", h.service.CancelTask)
}

// ListByUser returns a user's tasks, optionally filtered by the status,
// priority or category query parameters.
func (h *TaskHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	route := taskRoute + "/user/{userID}"

	userID, ok := pathID(w, r, "userID")
	if !ok {
		recordMetrics(ctx, h.metrics, "GET", route, http.StatusBadRequest, start)
		return
	}

	ctx, span := tracer.Start(ctx, "TaskHandler.ListByUser",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	filter := app.TaskFilter{
		Status:   r.URL.Query().Get("status"),
		Priority: r.URL.Query().Get("priority"),
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			respondBadRequest(w, "category must be a valid id")
			recordMetrics(ctx, h.metrics, "GET", route, http.StatusBadRequest, start)
			return
		}
		filter.CategoryID = &categoryID
	}

	tasks, err := h.service.ListTasksByUser(ctx, userID, filter)
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "GET", route, status, start)
		return
	}

	span.SetAttributes(attribute.Int("task.count", len(tasks)))
	respondJSON(w, http.StatusOK, tasks)
	recordMetrics(ctx, h.metrics, "GET", route, http.StatusOK, start)
}

// CountsByUser returns the user's task tally per status.
func (h *TaskHandler) CountsByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	route := taskRoute + "/user/{userID}/counts"

	userID, ok := pathID(w, r, "userID")
	if !ok {
		recordMetrics(ctx, h.metrics, "GET", route, http.StatusBadRequest, start)
		return
	}

	ctx, span := tracer.Start(ctx, "TaskHandler.CountsByUser")
	defer span.End()

	counts, err := h.service.CountTasksByStatus(ctx, userID)
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "GET", route, status, start)
		return
	}

	respondJSON(w, http.StatusOK, counts)
	recordMetrics(ctx, h.metrics, "GET", route, http.StatusOK, start)
}

func (h *TaskHandler) transition(w http.ResponseWriter, r *http.Request, route, spanName string, op func(ctx context.Context, id uuid.UUID) (*app.TaskResponse, error)) {
	ctx := r.Context()
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		recordMetrics(ctx, h.metrics, "POST", route, http.StatusBadRequest, start)
		return
	}

	ctx, span := tracer.Start(ctx, spanName,
		trace.WithAttributes(attribute.String("task.id", id.String())),
	)
	defer span.End()

	task, err := op(ctx, id)
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "POST", route, status, start)
		return
	}

	span.SetAttributes(attribute.String("task.status", task.Status))
	respondJSON(w, http.StatusOK, task)
	recordMetrics(ctx, h.metrics, "POST", route, http.StatusOK, start)
}

// pathID parses the named uuid path parameter, answering 400 on malformed
// input.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondBadRequest(w, name+" must be a valid id")
		return uuid.Nil, false
	}
	return id, true
}
