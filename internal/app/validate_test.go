package app

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agustinleonardi/TaskManagerPro/internal/domain"
)

func violationFields(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

func TestValidateCreateUser_CollectsEveryViolation(t *testing.T) {
	err := validateCreateUser(CreateUserRequest{})
	fields := violationFields(t, err)

	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
	assert.Len(t, fields, 3)
}

func TestValidateCreateUser_Valid(t *testing.T) {
	err := validateCreateUser(CreateUserRequest{
		Email:    "a@b.com",
		Username: "alice_01",
		Password: "secret1",
	})
	assert.NoError(t, err)
}

func TestValidateCreateUser_BlankFormatRulesDoNotDouble(t *testing.T) {
	// A missing email fails only the required rule, not the format rule too.
	err := validateCreateUser(CreateUserRequest{
		Email:    "",
		Username: "alice_01",
		Password: "secret1",
	})
	fields := violationFields(t, err)
	assert.Equal(t, []string{"email"}, fields)
}

func TestValidateUpdateUser_BlankMeansNoChange(t *testing.T) {
	assert.NoError(t, validateUpdateUser(UpdateUserRequest{}))

	err := validateUpdateUser(UpdateUserRequest{Email: "not-an-email"})
	fields := violationFields(t, err)
	assert.Equal(t, []string{"email"}, fields)
}

func TestValidateCreateTask(t *testing.T) {
	err := validateCreateTask(CreateTaskRequest{
		Title:    strings.Repeat("x", 201),
		Priority: "sometime",
	})
	fields := violationFields(t, err)

	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "priority")
	assert.Contains(t, fields, "user_id")

	assert.NoError(t, validateCreateTask(CreateTaskRequest{
		Title:  "Buy milk",
		UserID: uuid.New(),
	}))
}

func TestValidateUpdateTask(t *testing.T) {
	assert.NoError(t, validateUpdateTask(UpdateTaskRequest{}))

	err := validateUpdateTask(UpdateTaskRequest{
		Description: strings.Repeat("x", 1001),
	})
	fields := violationFields(t, err)
	assert.Equal(t, []string{"description"}, fields)
}

func TestValidateCreateCategory(t *testing.T) {
	err := validateCreateCategory(CreateCategoryRequest{Type: "misc"})
	fields := violationFields(t, err)

	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "user_id")

	assert.NoError(t, validateCreateCategory(CreateCategoryRequest{
		Name:   "Office",
		Type:   "work",
		UserID: uuid.New(),
	}))
}

func TestValidateUpdateCategory(t *testing.T) {
	assert.NoError(t, validateUpdateCategory(UpdateCategoryRequest{}))

	long := strings.Repeat("x", 501)
	err := validateUpdateCategory(UpdateCategoryRequest{Description: &long})
	fields := violationFields(t, err)
	assert.Equal(t, []string{"description"}, fields)
}
