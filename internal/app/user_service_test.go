package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/agustinleonardi/TaskManagerPro/internal/auth"
	"github.com/agustinleonardi/TaskManagerPro/internal/domain"
	"github.com/agustinleonardi/TaskManagerPro/internal/repository"
)

type fixture struct {
	users      *repository.MemoryUserRepository
	tasks      *repository.MemoryTaskRepository
	categories *repository.MemoryCategoryRepository
	userSvc    *UserService
	taskSvc    *TaskService
	catSvc     *CategoryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	users := repository.NewMemoryUserRepository()
	tasks := repository.NewMemoryTaskRepository()
	categories := repository.NewMemoryCategoryRepository()
	return &fixture{
		users:      users,
		tasks:      tasks,
		categories: categories,
		userSvc:    NewUserService(users, tasks, categories, hasher, logger),
		taskSvc:    NewTaskService(tasks, users, categories, logger),
		catSvc:     NewCategoryService(categories, users, logger),
	}
}

func (f *fixture) createUser(t *testing.T, email, username string) *UserResponse {
	t.Helper()
	user, err := f.userSvc.CreateUser(context.Background(), CreateUserRequest{
		Email:    email,
		Username: username,
		Password: "secret1",
	})
	require.NoError(t, err)
	return user
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t)

	user := f.createUser(t, "a@b.com", "alice_01")
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "alice_01", user.Username)
	assert.Equal(t, 0, user.TaskCount)

	// The stored hash verifies the plaintext, which is never persisted.
	stored, err := f.users.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash())
	assert.True(t, auth.NewBcryptHasher(bcrypt.MinCost).Verify("secret1", stored.PasswordHash()))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "a@b.com", "alice_01")

	_, err := f.userSvc.CreateUser(context.Background(), CreateUserRequest{
		Email:    "A@B.com",
		Username: "bob_02",
		Password: "secret1",
	})
	require.Error(t, err)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "email", conflict.Field)
	assert.EqualValues(t, 1, f.users.Count())
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "a@b.com", "alice_01")

	_, err := f.userSvc.CreateUser(context.Background(), CreateUserRequest{
		Email:    "c@d.com",
		Username: "alice_01",
		Password: "secret1",
	})
	require.Error(t, err)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "username", conflict.Field)
}

func TestCreateUser_AggregatesViolations(t *testing.T) {
	f := newFixture(t)

	_, err := f.userSvc.CreateUser(context.Background(), CreateUserRequest{
		Email:    "not-an-email",
		Username: "ab",
		Password: "short",
	})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make(map[string]bool)
	for _, v := range verr.Violations {
		fields[v.Field] = true
	}
	assert.True(t, fields["email"])
	assert.True(t, fields["username"])
	assert.True(t, fields["password"])
}

func TestUpdateUser_PartialKeepsBlankFields(t *testing.T) {
	f := newFixture(t)
	created := f.createUser(t, "a@b.com", "alice_01")

	updated, err := f.userSvc.UpdateUser(context.Background(), created.ID, UpdateUserRequest{
		Username: "alice_02",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice_02", updated.Username)
	assert.Equal(t, "a@b.com", updated.Email)
}

func TestUpdateUser_ConflictExcludesSelf(t *testing.T) {
	f := newFixture(t)
	created := f.createUser(t, "a@b.com", "alice_01")
	f.createUser(t, "c@d.com", "bob_02")

	// Resubmitting your own email is not a conflict.
	_, err := f.userSvc.UpdateUser(context.Background(), created.ID, UpdateUserRequest{
		Email: "a@b.com",
	})
	require.NoError(t, err)

	// Taking someone else's is.
	_, err = f.userSvc.UpdateUser(context.Background(), created.ID, UpdateUserRequest{
		Email: "c@d.com",
	})
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestUpdateUser_Missing(t *testing.T) {
	f := newFixture(t)

	_, err := f.userSvc.UpdateUser(context.Background(), uuid.New(), UpdateUserRequest{
		Username: "alice_02",
	})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.KindUser, nf.Kind)
}

func TestDeleteUser_Cascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.createUser(t, "a@b.com", "alice_01")

	_, err := f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "Buy milk", UserID: created.ID})
	require.NoError(t, err)
	_, err = f.catSvc.CreateCategory(ctx, CreateCategoryRequest{Name: "Office", Type: "work", UserID: created.ID})
	require.NoError(t, err)

	require.NoError(t, f.userSvc.DeleteUser(ctx, created.ID))
	assert.EqualValues(t, 0, f.users.Count())
	assert.EqualValues(t, 0, f.tasks.Count())
	assert.EqualValues(t, 0, f.categories.Count())
}

func TestGetUserByID_MissingPassesSentinel(t *testing.T) {
	f := newFixture(t)

	_, err := f.userSvc.GetUserByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	f := newFixture(t)
	created := f.createUser(t, "a@b.com", "alice_01")

	got, err := f.userSvc.GetUserByEmail(context.Background(), "A@B.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestListUsersPaged(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "a@b.com", "alice_01")
	f.createUser(t, "c@d.com", "bob_02")
	f.createUser(t, "e@f.com", "carol_03")

	page, err := f.userSvc.ListUsersPaged(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	all, err := f.userSvc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCreateUser_CancelledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.userSvc.CreateUser(ctx, CreateUserRequest{
		Email:    "a@b.com",
		Username: "alice_01",
		Password: "secret1",
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.EqualValues(t, 0, f.users.Count())
}

func TestUserProjection_ReflectsLiveTaskCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := f.createUser(t, "a@b.com", "alice_01")

	task, err := f.taskSvc.CreateTask(ctx, CreateTaskRequest{Title: "Buy milk", UserID: created.ID})
	require.NoError(t, err)
	_, err = f.taskSvc.CompleteTask(ctx, task.ID)
	require.NoError(t, err)

	got, err := f.userSvc.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TaskCount)
	assert.Equal(t, 1, got.CompletedTasksCount)
}
