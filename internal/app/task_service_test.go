package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agustinleonardi/TaskManagerPro/internal/domain"
	"github.com/agustinleonardi/TaskManagerPro/internal/repository"
)

func TestCreateTask_Defaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")

	task, err := f.taskSvc.CreateTask(ctx, CreateTaskRequest{
		Title:  "Buy milk",
		UserID: owner.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", task.Status)
	assert.Equal(t, "medium", task.Priority)
	assert.True(t, task.IsPending)
	assert.False(t, task.IsCompleted)
	assert.Nil(t, task.CompletedAt)
	assert.Nil(t, task.CategoryID)
}

func TestCreateTask_MissingUserPersistsNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.taskSvc.CreateTask(context.Background(), CreateTaskRequest{
		Title:  "Buy milk",
		UserID: uuid.New(),
	})
	require.Error(t, err)

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.KindUser, nf.Kind)
	assert.EqualValues(t, 0, f.tasks.Count())
}

func TestCreateTask_MissingCategory(t *testing.T) {
	f := newFixture(t)
	owner := f.createUser(t, "a@b.com", "alice_01")
	bogus := uuid.New()

	_, err := f.taskSvc.CreateTask(context.Background(), CreateTaskRequest{
		Title:      "Buy milk",
		UserID:     owner.ID,
		CategoryID: &bogus,
	})
	require.Error(t, err)

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.KindCategory, nf.Kind)
	assert.EqualValues(t, 0, f.tasks.Count())
}

func TestCreateTask_DuplicateTitle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")

	_, err := f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "Buy milk", UserID: owner.ID})
	require.NoError(t, err)

	_, err = f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "BUY MILK", UserID: owner.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateTitle)
	assert.EqualValues(t, 1, f.tasks.Count())
}

func TestCreateTask_Quota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")

	for i := 0; i < domain.MaxTasksPerUser; i++ {
		_, err := f.taskSvc.CreateTask(ctx, CreateTaskRequest{
			Title:  fmt.Sprintf("Task %d", i),
			UserID: owner.ID,
		})
		require.NoError(t, err)
	}

	_, err := f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "One too many", UserID: owner.ID})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTaskQuota)
	assert.EqualValues(t, domain.MaxTasksPerUser, f.tasks.Count())
}

func TestCompleteTask_Twice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")
	task, err := f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "Buy milk", UserID: owner.ID})
	require.NoError(t, err)

	done, err := f.taskSvc.CompleteTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
	assert.True(t, done.IsCompleted)
	require.NotNil(t, done.CompletedAt)

	_, err = f.taskSvc.CompleteTask(ctx, task.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyCompleted)

	var rule *domain.RuleError
	assert.ErrorAs(t, err, &rule)
}

func TestStartThenCancelTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")
	task, err := f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "Buy milk", UserID: owner.ID})
	require.NoError(t, err)

	started, err := f.taskSvc.StartTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_progress", started.Status)

	cancelled, err := f.taskSvc.CancelTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.True(t, cancelled.IsCancelled)

	_, err = f.taskSvc.CompleteTask(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrCompleteCancelled)
}

func TestUpdateTask_PartialPriority(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")
	task, err := f.taskSvc.CreateTask(ctx, CreateTaskRequest{
		Title:       "Buy milk",
		Description: "Two liters",
		UserID:      owner.ID,
	})
	require.NoError(t, err)

	updated, err := f.taskSvc.UpdateTask(ctx, task.ID, UpdateTaskRequest{Priority: "high"})
	require.NoError(t, err)
	assert.Equal(t, "high", updated.Priority)
	assert.Equal(t, "Buy milk", updated.Title)
	assert.Equal(t, "Two liters", updated.Description)
}

func TestUpdateTask_AssignCategory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")
	cat, err := f.catSvc.CreateCategory(ctx, CreateCategoryRequest{
		Name: "Errands", Type: "home", UserID: owner.ID,
	})
	require.NoError(t, err)
	task, err := f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "Buy milk", UserID: owner.ID})
	require.NoError(t, err)

	updated, err := f.taskSvc.UpdateTask(ctx, task.ID, UpdateTaskRequest{CategoryID: &cat.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.CategoryID)
	assert.Equal(t, cat.ID, *updated.CategoryID)
}

func TestDeleteTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")
	task, err := f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "Buy milk", UserID: owner.ID})
	require.NoError(t, err)

	require.NoError(t, f.taskSvc.DeleteTask(ctx, task.ID))
	assert.EqualValues(t, 0, f.tasks.Count())

	// The title is free again.
	_, err = f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "Buy milk", UserID: owner.ID})
	assert.NoError(t, err)
}

func TestDeleteTask_CompletedStays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")
	task, err := f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "Buy milk", UserID: owner.ID})
	require.NoError(t, err)
	_, err = f.taskSvc.CompleteTask(ctx, task.ID)
	require.NoError(t, err)

	err = f.taskSvc.DeleteTask(ctx, task.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemoveCompleted)
	assert.EqualValues(t, 1, f.tasks.Count())
}

func TestListTasksByUser_Filters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")

	low, err := f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "Low", Priority: "low", UserID: owner.ID})
	require.NoError(t, err)
	_, err = f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "High", Priority: "high", UserID: owner.ID})
	require.NoError(t, err)
	_, err = f.taskSvc.CompleteTask(ctx, low.ID)
	require.NoError(t, err)

	all, err := f.taskSvc.ListTasksByUser(ctx, owner.ID, TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	completed, err := f.taskSvc.ListTasksByUser(ctx, owner.ID, TaskFilter{Status: "completed"})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, low.ID, completed[0].ID)

	high, err := f.taskSvc.ListTasksByUser(ctx, owner.ID, TaskFilter{Priority: "high"})
	require.NoError(t, err)
	assert.Len(t, high, 1)

	_, err = f.taskSvc.ListTasksByUser(ctx, owner.ID, TaskFilter{Status: "bogus"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCountTasksByStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "a@b.com", "alice_01")

	done, err := f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "Done", UserID: owner.ID})
	require.NoError(t, err)
	_, err = f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "Open", UserID: owner.ID})
	require.NoError(t, err)
	_, err = f.taskSvc.CompleteTask(ctx, done.ID)
	require.NoError(t, err)

	counts, err := f.taskSvc.CountTasksByStatus(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["completed"])
	assert.Equal(t, 1, counts["pending"])
}

func TestGetTaskByID_MissingPassesSentinel(t *testing.T) {
	f := newFixture(t)

	_, err := f.taskSvc.GetTaskByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCompleteTask_CancelledContext(t *testing.T) {
	f := newFixture(t)
	owner := f.createUser(t, "a@b.com", "alice_01")
	task, err := f.taskSvc.CreateTask(context.Background(), CreateTaskRequest{Title: "Buy milk", UserID: owner.ID})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.taskSvc.CompleteTask(ctx, task.ID)
	require.ErrorIs(t, err, context.Canceled)

	// The stored task is untouched.
	got, err := f.taskSvc.GetTaskByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPending)
}
