package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxTasksPerUser caps how many tasks a single user may own.
const MaxTasksPerUser = 50

// User is the aggregate root. It owns the association to its tasks: adding and
// removing a task goes through the User so the quota and title-uniqueness
// invariants hold across the whole collection.
type User struct {
	id           uuid.UUID
	email        Email
	username     Username
	passwordHash string
	createdAt    time.Time
	updatedAt    time.Time
	tasks        []*TaskItem
}

// NewUser creates a user from validated value objects and an already-hashed
// password.
func NewUser(email Email, username Username, passwordHash string) (*User, error) {
	if passwordHash == "" {
		return nil, invalidField("password", "password hash is required")
	}
	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		email:        email,
		username:     username,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) Username() Username   { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Tasks returns the owned task references. The slice is a copy; the tasks
// themselves are shared.
func (u *User) Tasks() []*TaskItem {
	out := make([]*TaskItem, len(u.tasks))
	copy(out, u.tasks)
	return out
}

// AddTask associates a task with the user. Fails when the user is at the task
// quota or already owns a task with the same title, compared case-insensitively.
func (u *User) AddTask(task *TaskItem) error {
	if len(u.tasks) >= MaxTasksPerUser {
		return ruleViolationf(ErrTaskQuota, "user already owns %d tasks", MaxTasksPerUser)
	}
	for _, owned := range u.tasks {
		if owned.Title().EqualsFold(task.Title()) {
			return ruleViolationf(ErrDuplicateTitle, "%q", task.Title())
		}
	}
	u.tasks = append(u.tasks, task)
	u.touch()
	return nil
}

// RemoveTask dissociates a task from the user. Fails when the task is not
// owned by this user or is in the completed state.
func (u *User) RemoveTask(task *TaskItem) error {
	idx := -1
	for i, owned := range u.tasks {
		if owned.ID() == task.ID() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ruleViolation(ErrTaskNotOwned)
	}
	if u.tasks[idx].IsCompleted() {
		return ruleViolation(ErrRemoveCompleted)
	}
	u.tasks = append(u.tasks[:idx], u.tasks[idx+1:]...)
	u.touch()
	return nil
}

// TaskCount returns how many tasks the user owns.
func (u *User) TaskCount() int { return len(u.tasks) }

// CompletedTaskCount counts owned tasks in the completed state.
func (u *User) CompletedTaskCount() int {
	n := 0
	for _, t := range u.tasks {
		if t.IsCompleted() {
			n++
		}
	}
	return n
}

// PendingTaskCount counts owned tasks in the pending state.
func (u *User) PendingTaskCount() int {
	n := 0
	for _, t := range u.tasks {
		if t.IsPending() {
			n++
		}
	}
	return n
}

// CanAddTask reports whether the user is below the task quota.
func (u *User) CanAddTask() bool { return len(u.tasks) < MaxTasksPerUser }

// ChangeEmail replaces the email address.
func (u *User) ChangeEmail(email Email) {
	u.email = email
	u.touch()
}

// ChangeUsername replaces the username.
func (u *User) ChangeUsername(username Username) {
	u.username = username
	u.touch()
}

// ChangePasswordHash replaces the stored hash.
func (u *User) ChangePasswordHash(hash string) error {
	if hash == "" {
		return invalidField("password", "password hash is required")
	}
	u.passwordHash = hash
	u.touch()
	return nil
}

func (u *User) touch() {
	u.updatedAt = time.Now().UTC()
}
