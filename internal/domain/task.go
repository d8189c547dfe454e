package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskItem is a single unit of work owned by a user. Status changes go through
// the guarded transitions below; every other mutator refreshes UpdatedAt and
// leaves the status alone.
type TaskItem struct {
	id          uuid.UUID
	title       TaskTitle
	description TaskDescription
	status      TaskStatus
	priority    TaskPriority
	userID      uuid.UUID
	categoryID  *uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time
}

// NewTaskItem creates a pending task for the given user.
func NewTaskItem(title TaskTitle, description TaskDescription, priority TaskPriority, userID uuid.UUID, categoryID *uuid.UUID) *TaskItem {
	now := time.Now().UTC()
	return &TaskItem{
		id:          uuid.New(),
		title:       title,
		description: description,
		status:      StatusPending,
		priority:    priority,
		userID:      userID,
		categoryID:  categoryID,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (t *TaskItem) ID() uuid.UUID                { return t.id }
func (t *TaskItem) Title() TaskTitle             { return t.title }
func (t *TaskItem) Description() TaskDescription { return t.description }
func (t *TaskItem) Status() TaskStatus           { return t.status }
func (t *TaskItem) Priority() TaskPriority       { return t.priority }
func (t *TaskItem) UserID() uuid.UUID            { return t.userID }
func (t *TaskItem) CreatedAt() time.Time         { return t.createdAt }
func (t *TaskItem) UpdatedAt() time.Time         { return t.updatedAt }

// CategoryID returns the assigned category, or nil when the task has none.
func (t *TaskItem) CategoryID() *uuid.UUID {
	if t.categoryID == nil {
		return nil
	}
	id := *t.categoryID
	return &id
}

// CompletedAt returns the completion time, or nil while the task has never
// been completed.
func (t *TaskItem) CompletedAt() *time.Time {
	if t.completedAt == nil {
		return nil
	}
	at := *t.completedAt
	return &at
}

func (t *TaskItem) IsCompleted() bool  { return t.status == StatusCompleted }
func (t *TaskItem) IsCancelled() bool  { return t.status == StatusCancelled }
func (t *TaskItem) IsInProgress() bool { return t.status == StatusInProgress }
func (t *TaskItem) IsPending() bool    { return t.status == StatusPending }

// StartProgress moves a pending task to in-progress.
func (t *TaskItem) StartProgress() error {
	if t.status != StatusPending {
		return ruleViolationf(ErrNotPending, "status is %s", t.status)
	}
	t.status = StatusInProgress
	t.touch()
	return nil
}

// Complete moves a pending or in-progress task to completed and stamps
// CompletedAt. Completed and cancelled are terminal.
func (t *TaskItem) Complete() error {
	if t.IsCompleted() {
		return ruleViolation(ErrAlreadyCompleted)
	}
	if t.IsCancelled() {
		return ruleViolation(ErrCompleteCancelled)
	}
	now := time.Now().UTC()
	t.status = StatusCompleted
	t.completedAt = &now
	t.updatedAt = now
	return nil
}

// Cancel moves the task to cancelled unless it is already completed.
func (t *TaskItem) Cancel() error {
	if t.IsCompleted() {
		return ruleViolation(ErrCancelCompleted)
	}
	t.status = StatusCancelled
	t.touch()
	return nil
}

// ChangeTitle replaces the title.
func (t *TaskItem) ChangeTitle(title TaskTitle) {
	t.title = title
	t.touch()
}

// ChangeDescription replaces the description.
func (t *TaskItem) ChangeDescription(description TaskDescription) {
	t.description = description
	t.touch()
}

// ChangePriority replaces the priority.
func (t *TaskItem) ChangePriority(priority TaskPriority) {
	t.priority = priority
	t.touch()
}

// AssignToCategory assigns the task to a category, or detaches it when
// categoryID is nil.
func (t *TaskItem) AssignToCategory(categoryID *uuid.UUID) {
	if categoryID == nil {
		t.categoryID = nil
	} else {
		id := *categoryID
		t.categoryID = &id
	}
	t.touch()
}

func (t *TaskItem) touch() {
	t.updatedAt = time.Now().UTC()
}
