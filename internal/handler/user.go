package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agustinleonardi/TaskManagerPro/internal/app"
	"github.com/agustinleonardi/TaskManagerPro/internal/telemetry"
)

const userRoute = "/api/v1/users"

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service *app.UserService
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *app.UserService, logger *slog.Logger, metrics *telemetry.Metrics) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Routes returns the chi router with user routes.
func (h *UserHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/by-email/{email}", h.GetByEmail)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create registers a new user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	ctx, span := tracer.Start(ctx, "UserHandler.Create")
	defer span.End()

	var req app.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		recordMetrics(ctx, h.metrics, "POST", userRoute, http.StatusBadRequest, start)
		return
	}

	user, err := h.service.CreateUser(ctx, req)
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "POST", userRoute, status, start)
		return
	}

	span.SetAttributes(attribute.String("user.id", user.ID.String()))
	respondJSON(w, http.StatusCreated, user)
	recordMetrics(ctx, h.metrics, "POST", userRoute, http.StatusCreated, start)
}

// List returns all users; skip/take query parameters select a page.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	ctx, span := tracer.Start(ctx, "UserHandler.List")
	defer span.End()

	var users []*app.UserResponse
	var err error
	if r.URL.Query().Has("skip") || r.URL.Query().Has("take") {
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		take, _ := strconv.Atoi(r.URL.Query().Get("take"))
		users, err = h.service.ListUsersPaged(ctx, skip, take)
	} else {
		users, err = h.service.ListUsers(ctx)
	}
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "GET", userRoute, status, start)
		return
	}

	span.SetAttributes(attribute.Int("user.count", len(users)))
	respondJSON(w, http.StatusOK, users)
	recordMetrics(ctx, h.metrics, "GET", userRoute, http.StatusOK, start)
}

// GetByID returns a user by ID.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		recordMetrics(ctx, h.metrics, "GET", userRoute+"/{id}", http.StatusBadRequest, start)
		return
	}

	ctx, span := tracer.Start(ctx, "UserHandler.GetByID",
		trace.WithAttributes(attribute.String("user.id", id.String())),
	)
	defer span.End()

	user, err := h.service.GetUserByID(ctx, id)
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "GET", userRoute+"/{id}", status, start)
		return
	}

	respondJSON(w, http.StatusOK, user)
	recordMetrics(ctx, h.metrics, "GET", userRoute+"/{id}", http.StatusOK, start)
}

// GetByEmail returns a user by email address.
func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	route := userRoute + "/by-email/{email}"

	ctx, span := tracer.Start(ctx, "UserHandler.GetByEmail")
	defer span.End()

	user, err := h.service.GetUserByEmail(ctx, chi.URLParam(r, "email"))
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "GET", route, status, start)
		return
	}

	respondJSON(w, http.StatusOK, user)
	recordMetrics(ctx, h.metrics, "GET", route, http.StatusOK, start)
}

// Update modifies an existing user. Absent fields keep their current values.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		recordMetrics(ctx, h.metrics, "PUT", userRoute+"/{id}", http.StatusBadRequest, start)
		return
	}

	ctx, span := tracer.Start(ctx, "UserHandler.Update",
		trace.WithAttributes(attribute.String("user.id", id.String())),
	)
	defer span.End()

	var req app.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		recordMetrics(ctx, h.metrics, "PUT", userRoute+"/{id}", http.StatusBadRequest, start)
		return
	}

	user, err := h.service.UpdateUser(ctx, id, req)
	if err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "PUT", userRoute+"/{id}", status, start)
		return
	}

	respondJSON(w, http.StatusOK, user)
	recordMetrics(ctx, h.metrics, "PUT", userRoute+"/{id}", http.StatusOK, start)
}

// Delete removes a user along with their tasks and categories.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	id, ok := pathID(w, r, "id")
	if !ok {
		recordMetrics(ctx, h.metrics, "DELETE", userRoute+"/{id}", http.StatusBadRequest, start)
		return
	}

	ctx, span := tracer.Start(ctx, "UserHandler.Delete",
		trace.WithAttributes(attribute.String("user.id", id.String())),
	)
	defer span.End()

	if err := h.service.DeleteUser(ctx, id); err != nil {
		status := respondDomainError(w, h.logger, r, err)
		recordMetrics(ctx, h.metrics, "DELETE", userRoute+"/{id}", status, start)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	recordMetrics(ctx, h.metrics, "DELETE", userRoute+"/{id}", http.StatusNoContent, start)
}
