package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/agustinleonardi/TaskManagerPro/internal/domain"
)

// CreateUserRequest carries the fields for registering a user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserRequest carries a partial user update. Blank fields are left
// unchanged.
type UpdateUserRequest struct {
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// CreateTaskRequest carries the fields for creating a task.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	UserID      uuid.UUID  `json:"user_id"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
}

// UpdateTaskRequest carries a partial task update. A blank title or
// description means "no change", not "clear"; a nil category means the
// assignment stays as it is.
type UpdateTaskRequest struct {
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
}

// CreateCategoryRequest carries the fields for creating a category.
type CreateCategoryRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	UserID      uuid.UUID `json:"user_id"`
}

// UpdateCategoryRequest carries a partial category update. A nil description
// is left unchanged; an empty one clears the field.
type UpdateCategoryRequest struct {
	Name        string  `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type,omitempty"`
}

// UserResponse is the external shape of a user. Task counts are computed from
// the live aggregate at projection time.
type UserResponse struct {
	ID                  uuid.UUID `json:"id"`
	Email               string    `json:"email"`
	Username            string    `json:"username"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
	TaskCount           int       `json:"task_count"`
	CompletedTasksCount int       `json:"completed_tasks_count"`
}

// TaskResponse is the external shape of a task. The boolean flags are pure
// functions of the status, recomputed here and never stored.
type TaskResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	UserID       uuid.UUID  `json:"user_id"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	IsCompleted  bool       `json:"is_completed"`
	IsCancelled  bool       `json:"is_cancelled"`
	IsInProgress bool       `json:"is_in_progress"`
	IsPending    bool       `json:"is_pending"`
}

// CategoryResponse is the external shape of a category.
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	Color       string    `json:"color"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func projectUser(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:                  u.ID(),
		Email:               u.Email().String(),
		Username:            u.Username().String(),
		CreatedAt:           u.CreatedAt(),
		UpdatedAt:           u.UpdatedAt(),
		TaskCount:           u.TaskCount(),
		CompletedTasksCount: u.CompletedTaskCount(),
	}
}

func projectUsers(users []*domain.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, projectUser(u))
	}
	return out
}

func projectTask(t *domain.TaskItem) *TaskResponse {
	return &TaskResponse{
		ID:           t.ID(),
		Title:        t.Title().String(),
		Description:  t.Description().String(),
		Status:       t.Status().String(),
		Priority:     t.Priority().String(),
		UserID:       t.UserID(),
		CategoryID:   t.CategoryID(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
		CompletedAt:  t.CompletedAt(),
		IsCompleted:  t.IsCompleted(),
		IsCancelled:  t.IsCancelled(),
		IsInProgress: t.IsInProgress(),
		IsPending:    t.IsPending(),
	}
}

func projectTasks(tasks []*domain.TaskItem) []*TaskResponse {
	out := make([]*TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, projectTask(t))
	}
	return out
}

func projectCategory(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		Type:        c.Type().String(),
		Color:       c.Color(),
		UserID:      c.UserID(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func projectCategories(categories []*domain.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, projectCategory(c))
	}
	return out
}
