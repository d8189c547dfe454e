package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agustinleonardi/TaskManagerPro/internal/domain"
)

// MemoryTaskRepository provides an in-memory store for tasks.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*domain.TaskItem
}

// NewMemoryTaskRepository creates an empty MemoryTaskRepository.
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{
		tasks: make(map[uuid.UUID]*domain.TaskItem),
	}
}

// GetByID retrieves a task by id.
func (r *MemoryTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskItem, error) {
	_, span := tracer.Start(ctx, "TaskRepository.GetByID",
		trace.WithAttributes(attribute.String("task.id", id.String())),
	)
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		span.SetAttributes(attribute.Bool("task.found", false))
		return nil, ErrNotFound
	}
	span.SetAttributes(attribute.Bool("task.found", true))
	return task, nil
}

// GetByUserID returns every task owned by the user.
func (r *MemoryTaskRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.TaskItem, error) {
	return r.filter(ctx, "TaskRepository.GetByUserID", func(t *domain.TaskItem) bool {
		return t.UserID() == userID
	})
}

// GetByUserIDAndStatus returns the user's tasks in the given status.
func (r *MemoryTaskRepository) GetByUserIDAndStatus(ctx context.Context, userID uuid.UUID, status domain.TaskStatus) ([]*domain.TaskItem, error) {
	return r.filter(ctx, "TaskRepository.GetByUserIDAndStatus", func(t *domain.TaskItem) bool {
		return t.UserID() == userID && t.Status() == status
	})
}

// GetByUserIDAndPriority returns the user's tasks with the given priority.
func (r *MemoryTaskRepository) GetByUserIDAndPriority(ctx context.Context, userID uuid.UUID, priority domain.TaskPriority) ([]*domain.TaskItem, error) {
	return r.filter(ctx, "TaskRepository.GetByUserIDAndPriority", func(t *domain.TaskItem) bool {
		return t.UserID() == userID && t.Priority() == priority
	})
}

// GetByUserIDAndCategory returns the user's tasks in the given category; a nil
// categoryID selects uncategorized tasks.
func (r *MemoryTaskRepository) GetByUserIDAndCategory(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]*domain.TaskItem, error) {
	return r.filter(ctx, "TaskRepository.GetByUserIDAndCategory", func(t *domain.TaskItem) bool {
		if t.UserID() != userID {
			return false
		}
		got := t.CategoryID()
		if categoryID == nil {
			return got == nil
		}
		return got != nil && *got == *categoryID
	})
}

// GetCompletedInRange returns the user's tasks completed inside [from, to].
func (r *MemoryTaskRepository) GetCompletedInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.TaskItem, error) {
	return r.filter(ctx, "TaskRepository.GetCompletedInRange", func(t *domain.TaskItem) bool {
		at := t.CompletedAt()
		return t.UserID() == userID && t.IsCompleted() && at != nil &&
			!at.Before(from) && !at.After(to)
	})
}

// CountByStatus tallies the user's tasks per status.
func (r *MemoryTaskRepository) CountByStatus(ctx context.Context, userID uuid.UUID) (map[domain.TaskStatus]int, error) {
	_, span := tracer.Start(ctx, "TaskRepository.CountByStatus",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[domain.TaskStatus]int)
	for _, task := range r.tasks {
		if task.UserID() == userID {
			counts[task.Status()]++
		}
	}
	return counts, nil
}

// Save upserts a task by id.
func (r *MemoryTaskRepository) Save(ctx context.Context, task *domain.TaskItem) error {
	_, span := tracer.Start(ctx, "TaskRepository.Save",
		trace.WithAttributes(attribute.String("task.id", task.ID().String())),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[task.ID()] = task
	return nil
}

// Delete removes the task with the matching id.
func (r *MemoryTaskRepository) Delete(ctx context.Context, task *domain.TaskItem) error {
	_, span := tracer.Start(ctx, "TaskRepository.Delete",
		trace.WithAttributes(attribute.String("task.id", task.ID().String())),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tasks, task.ID())
	return nil
}

// DeleteByUserID removes every task owned by the user.
func (r *MemoryTaskRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	_, span := tracer.Start(ctx, "TaskRepository.DeleteByUserID",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, task := range r.tasks {
		if task.UserID() == userID {
			delete(r.tasks, id)
		}
	}
	return nil
}

// Count returns the current number of tasks.
func (r *MemoryTaskRepository) Count() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.tasks))
}

func (r *MemoryTaskRepository) filter(ctx context.Context, spanName string, keep func(*domain.TaskItem) bool) ([]*domain.TaskItem, error) {
	_, span := tracer.Start(ctx, spanName)
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]*domain.TaskItem, 0)
	for _, task := range r.tasks {
		if keep(task) {
			tasks = append(tasks, task)
		}
	}
	span.SetAttributes(attribute.Int("task.count", len(tasks)))
	return tasks, nil
}
