package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/agustinleonardi/TaskManagerPro/internal/domain"
	"github.com/agustinleonardi/TaskManagerPro/internal/repository"
	"github.com/agustinleonardi/TaskManagerPro/internal/telemetry"
)

var tracer = otel.Tracer("github.com/agustinleonardi/TaskManagerPro/internal/handler")

// errorBody is the JSON error shape. Violations is present only for
// validation failures, carrying the complete set in one response.
type errorBody struct {
	Error      string                  `json:"error"`
	Violations []domain.FieldViolation `json:"violations,omitempty"`
}

// Health returns a health check response.
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondDomainError maps the error taxonomy onto status codes. Translation
// lives here, at the transport edge; services propagate typed errors as-is.
func respondDomainError(w http.ResponseWriter, logger *slog.Logger, r *http.Request, err error) int {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Violations: vErr.Violations})
		return http.StatusBadRequest
	}
	var nfErr *domain.NotFoundError
	if errors.As(err, &nfErr) {
		respondJSON(w, http.StatusNotFound, errorBody{Error: nfErr.Error()})
		return http.StatusNotFound
	}
	if errors.Is(err, repository.ErrNotFound) {
		respondJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return http.StatusNotFound
	}
	var cErr *domain.ConflictError
	if errors.As(err, &cErr) {
		respondJSON(w, http.StatusConflict, errorBody{Error: cErr.Error()})
		return http.StatusConflict
	}
	var rErr *domain.RuleError
	if errors.As(err, &rErr) {
		respondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: rErr.Error()})
		return http.StatusUnprocessableEntity
	}
	logger.ErrorContext(r.Context(), "request failed", slog.Any("error", err))
	respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	return http.StatusInternalServerError
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorBody{Error: message})
}

func recordMetrics(ctx context.Context, m *telemetry.Metrics, method, route string, status int, start time.Time) {
	duration := time.Since(start).Seconds()

	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	)

	m.RequestCounter.Add(ctx, 1, attrs)
	m.RequestDuration.Record(ctx, duration, attrs)
}
