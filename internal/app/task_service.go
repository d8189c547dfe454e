package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agustinleonardi/TaskManagerPro/internal/domain"
	"github.com/agustinleonardi/TaskManagerPro/internal/repository"
)

// TaskFilter narrows ListTasksByUser. Blank / nil fields select everything.
type TaskFilter struct {
	Status     string
	Priority   string
	CategoryID *uuid.UUID
}

// TaskService handles the task commands and queries.
type TaskService struct {
	tasks      repository.TaskRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	logger     *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(
	tasks repository.TaskRepository,
	users repository.UserRepository,
	categories repository.CategoryRepository,
	logger *slog.Logger,
) *TaskService {
	return &TaskService{
		tasks:      tasks,
		users:      users,
		categories: categories,
		logger:     logger,
	}
}

// CreateTask creates a pending task for an existing user, optionally in an
// existing category. Every referenced entity is checked before anything is
// written, so a failed reference never leaves a partial write behind.
func (s *TaskService) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	ctx, span := tracer.Start(ctx, "TaskService.CreateTask")
	defer span.End()

	if err := validateCreateTask(req); err != nil {
		return nil, err
	}

	title, err := domain.NewTaskTitle(req.Title)
	if err != nil {
		return nil, err
	}
	description, err := domain.NewTaskDescription(req.Description)
	if err != nil {
		return nil, err
	}
	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority, _ = domain.ParseTaskPriority(req.Priority)
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NotFound(domain.KindUser, req.UserID)
	}
	if err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *req.CategoryID); errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound(domain.KindCategory, *req.CategoryID)
		} else if err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	task := domain.NewTaskItem(title, description, priority, req.UserID, req.CategoryID)
	if err := user.AddTask(task); err != nil {
		return nil, err
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("task.id", task.ID().String()))
	s.logger.InfoContext(ctx, "task created",
		slog.String("id", task.ID().String()),
		slog.String("user_id", req.UserID.String()),
	)
	return projectTask(task), nil
}

// UpdateTask applies a partial update. Blank title/description/priority keep
// the current value; a nil category id keeps the current assignment.
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error) {
	ctx, span := tracer.Start(ctx, "TaskService.UpdateTask")
	defer span.End()

	if err := validateUpdateTask(req); err != nil {
		return nil, err
	}

	task, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *req.CategoryID); errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound(domain.KindCategory, *req.CategoryID)
		} else if err != nil {
			return nil, err
		}
	}

	var title domain.TaskTitle
	if notBlank(req.Title) {
		if title, err = domain.NewTaskTitle(req.Title); err != nil {
			return nil, err
		}
	}
	var description domain.TaskDescription
	if notBlank(req.Description) {
		if description, err = domain.NewTaskDescription(req.Description); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if notBlank(req.Title) {
		task.ChangeTitle(title)
	}
	if notBlank(req.Description) {
		task.ChangeDescription(description)
	}
	if req.Priority != "" {
		priority, _ := domain.ParseTaskPriority(req.Priority)
		task.ChangePriority(priority)
	}
	if req.CategoryID != nil {
		task.AssignToCategory(req.CategoryID)
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "task updated", slog.String("id", id.String()))
	return projectTask(task), nil
}

// DeleteTask removes a task, detaching it from its owner first so the
// aggregate's removal rules apply.
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "TaskService.DeleteTask")
	defer span.End()

	task, err := s.loadTask(ctx, id)
	if err != nil {
		return err
	}

	owner, err := s.users.GetByID(ctx, task.UserID())
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if owner != nil {
		if err := owner.RemoveTask(task); err != nil {
			return err
		}
	}
	if err := s.tasks.Delete(ctx, task); err != nil {
		return err
	}
	if owner != nil {
		if err := s.users.Save(ctx, owner); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "task deleted", slog.String("id", id.String()))
	return nil
}

// CompleteTask moves a task to completed.
func (s *TaskService) CompleteTask(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	return s.transition(ctx, "TaskService.CompleteTask", id, (*domain.TaskItem).Complete)
}

// StartTask moves a pending task to in-progress.
func (s *TaskService) StartTask(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	return s.transition(ctx, "TaskService.StartTask", id, (*domain.TaskItem).StartProgress)
}

// CancelTask moves a task to cancelled.
func (s *TaskService) CancelTask(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	return s.transition(ctx, "TaskService.CancelTask", id, (*domain.TaskItem).Cancel)
}

// GetTaskByID returns the projection of one task. Absence surfaces as
// repository.ErrNotFound.
func (s *TaskService) GetTaskByID(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	ctx, span := tracer.Start(ctx, "TaskService.GetTaskByID")
	defer span.End()

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return projectTask(task), nil
}

// ListTasksByUser returns the user's tasks, optionally narrowed by status,
// priority or category.
func (s *TaskService) ListTasksByUser(ctx context.Context, userID uuid.UUID, filter TaskFilter) ([]*TaskResponse, error) {
	ctx, span := tracer.Start(ctx, "TaskService.ListTasksByUser")
	defer span.End()

	var tasks []*domain.TaskItem
	var err error
	switch {
	case filter.Status != "":
		status, ok := domain.ParseTaskStatus(filter.Status)
		if !ok {
			return nil, invalidFilter("status", filter.Status)
		}
		tasks, err = s.tasks.GetByUserIDAndStatus(ctx, userID, status)
	case filter.Priority != "":
		priority, ok := domain.ParseTaskPriority(filter.Priority)
		if !ok {
			return nil, invalidFilter("priority", filter.Priority)
		}
		tasks, err = s.tasks.GetByUserIDAndPriority(ctx, userID, priority)
	case filter.CategoryID != nil:
		tasks, err = s.tasks.GetByUserIDAndCategory(ctx, userID, filter.CategoryID)
	default:
		tasks, err = s.tasks.GetByUserID(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return projectTasks(tasks), nil
}

// CountTasksByStatus tallies the user's tasks per status name.
func (s *TaskService) CountTasksByStatus(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	ctx, span := tracer.Start(ctx, "TaskService.CountTasksByStatus")
	defer span.End()

	counts, err := s.tasks.CountByStatus(ctx, userID)
	if err != nil {
		return nil, err
	}
	named := make(map[string]int, len(counts))
	for status, n := range counts {
		named[status.String()] = n
	}
	return named, nil
}

func (s *TaskService) transition(ctx context.Context, spanName string, id uuid.UUID, op func(*domain.TaskItem) error) (*TaskResponse, error) {
	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()

	task, err := s.loadTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := op(task); err != nil {
		return nil, err
	}
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("task.status", task.Status().String()))
	s.logger.InfoContext(ctx, "task transitioned",
		slog.String("id", id.String()),
		slog.String("status", task.Status().String()),
	)
	return projectTask(task), nil
}

func (s *TaskService) loadTask(ctx context.Context, id uuid.UUID) (*domain.TaskItem, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NotFound(domain.KindTask, id)
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func invalidFilter(field, value string) error {
	return &domain.ValidationError{Violations: []domain.FieldViolation{
		{Field: field, Message: value + " is not a known value"},
	}}
}
