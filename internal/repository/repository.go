package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/agustinleonardi/TaskManagerPro/internal/domain"
)

var tracer = otel.Tracer("github.com/agustinleonardi/TaskManagerPro/internal/repository")

// ErrNotFound is the absent marker returned by lookups that match nothing.
// Callers decide whether absence is an error worth reporting.
var ErrNotFound = errors.New("not found")

// UserRepository is the persistence port for user aggregates.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email domain.Email) (*domain.User, error)
	GetByUsername(ctx context.Context, username domain.Username) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email domain.Email) (bool, error)
	ExistsByUsername(ctx context.Context, username domain.Username) (bool, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	GetPaged(ctx context.Context, skip, take int) ([]*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, user *domain.User) error
	Count() int64
}

// TaskRepository is the persistence port for tasks.
type TaskRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskItem, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.TaskItem, error)
	GetByUserIDAndStatus(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) ([]*domain.TaskItem, error)
	GetByUserIDAndPriority(ctx context.Context, userID uuid.UUID, priority domain.TaskPriority) ([]*domain.TaskItem, error)
	GetByUserIDAndCategory(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]*domain.TaskItem, error)
	GetCompletedInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.TaskItem, error)
	CountByStatus(ctx context.Context, userID uuid.UUID) (map[domain.TaskStatus]int, error)
	Save(ctx context.Context, task *domain.TaskItem) error
	Delete(ctx context.Context, task *domain.TaskItem) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	Count() int64
}

// CategoryRepository is the persistence port for categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	GetByNameAndUserID(ctx context.Context, name string, userID uuid.UUID) (*domain.Category, error)
	ExistsByNameAndUserID(ctx context.Context, name string, userID uuid.UUID) (bool, error)
	Save(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, category *domain.Category) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	Count() int64
}
