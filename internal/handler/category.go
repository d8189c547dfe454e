package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agustinleonardi/TaskManagerPro/internal/app"
	"github.com/agustinleonardi/TaskManagerPro/internal/telemetry"
)

const categoryRoute = "/api/v1/categories"

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *app.CategoryService
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *app.CategoryService, logger *slog.Logger, metrics *telemetry.Metrics) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Routes returns the chi router with category routes.
func (h *CategoryHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/user/{userID}", h.ListByUser)

	return r
}

// Create adds a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	ctx, span := tracer.Start(ctx, "CategoryHandler.Create")
	defer span.End()

	var req app.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		recordMetrics(ctx, h.metrics, "POST", categoryRoute, http.StatusBadRequest, start)
		return
	}

	category, err := h.service.CreateCategory(ctx, req)
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "POST", categoryRoute, status, start)
		return
	}

	span.SetAttributes(attribute.String("category.id", category.ID.String()))
	respondJSON(w, http.StatusCreated, category)
	recordMetrics(ctx, h.metrics, "POST", categoryRoute, http.StatusCreated, start)
}

// GetByID returns a category by ID.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		recordMetrics(ctx, h.metrics, "GET", categoryRoute+"/{id}", http.StatusBadRequest, start)
		return
	}

	ctx, span := tracer.Start(ctx, "CategoryHandler.GetByID",
		trace.WithAttributes(attribute.String("category.id", id.String())),
	)
	defer span.End()

	category, err := h.service.GetCategoryByID(ctx, id)
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "GET", categoryRoute+"/{id}", status, start)
		return
	}

	respondJSON(w, http.StatusOK, category)
	recordMetrics(ctx, h.metrics, "GET", categoryRoute+"/{id}", http.StatusOK, start)
}

// Update modifies an existing category. Absent fields keep their current
// values.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		recordMetrics(ctx, h.metrics, "PUT", categoryRoute+"/{id}", http.StatusBadRequest, start)
		return
	}

	ctx, span := tracer.Start(ctx, "CategoryHandler.Update",
		trace.WithAttributes(attribute.String("category.id", id.String())),
	)
	defer span.End()

	var req app.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		recordMetrics(ctx, h.metrics, "PUT", categoryRoute+"/{id}", http.StatusBadRequest, start)
		return
	}

	category, err := h.service.UpdateCategory(ctx, id, req)
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "PUT", categoryRoute+"/{id}", status, start)
		return
	}

	respondJSON(w, http.StatusOK, category)
	recordMetrics(ctx, h.metrics, "PUT", categoryRoute+"/{id}", http.StatusOK, start)
}

// Delete removes a category.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		recordMetrics(ctx, h.metrics, "DELETE", categoryRoute+"/{id}", http.StatusBadRequest, start)
		return
	}

	ctx, span := tracer.Start(ctx, "CategoryHandler.Delete",
		trace.WithAttributes(attribute.String("category.id", id.String())),
	)
	defer span.End()

	if err := h.service.DeleteCategory(ctx, id); err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "DELETE", categoryRoute+"/{id}", status, start)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	recordMetrics(ctx, h.metrics, "DELETE", categoryRoute+"/{id}", http.StatusNoContent, start)
}

// ListByUser returns a user's categories.
func (h *CategoryHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	route := categoryRoute + "/user/{userID}"

	userID, ok := pathID(w, r, "userID")
	if !ok {
		recordMetrics(ctx, h.metrics, "GET", route, http.StatusBadRequest, start)
		return
	}

	ctx, span := tracer.Start(ctx, "CategoryHandler.ListByUser",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	categories, err := h.service.ListCategoriesByUser(ctx, userID)
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "GET", route, status, start)
		return
	}

	span.SetAttributes(attribute.Int("category.count", len(categories)))
	respondJSON(w, http.StatusOK, categories)
	recordMetrics(ctx, h.metrics, "GET", route, http.StatusOK, start)
}
