package app

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/agustinleonardi/TaskManagerPro/internal/domain"
)

// rule is one declarative input check. Rules inspect only the raw request
// payload and are independent of each other.
type rule struct {
	field   string
	message string
	ok      func() bool
}

// runRules evaluates every rule and aggregates all failures, so a caller gets
// the complete violation set in one pass instead of one failure at a time.
func runRules(rules ...rule) error {
	var violations []domain.FieldViolation
	for _, r := range rules {
		if !r.ok() {
			violations = append(violations, domain.FieldViolation{Field: r.field, Message: r.message})
		}
	}
	if len(violations) > 0 {
		return &domain.ValidationError{Violations: violations}
	}
	return nil
}

var usernameInput = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func notBlank(s string) bool { return strings.TrimSpace(s) != "" }

func within(s string, max int) bool { return len(strings.TrimSpace(s)) <= max }

// emailShaped passes blank input through: the required rule owns that case.
func emailShaped(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return true
	}
	addr, err := mail.ParseAddress(trimmed)
	return err == nil && addr.Address == trimmed
}

func usernameShaped(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return true
	}
	return len(trimmed) >= 3 && len(trimmed) <= 50 && usernameInput.MatchString(trimmed)
}

func passwordSized(s string) bool {
	if s == "" {
		return true
	}
	return len(s) >= 6 && len(s) <= 20
}

func knownPriority(s string) bool {
	if s == "" {
		return true
	}
	_, ok := domain.ParseTaskPriority(s)
	return ok
}

func knownCategoryType(s string) bool {
	if s == "" {
		return true
	}
	_, ok := domain.ParseCategoryType(s)
	return ok
}

func validateCreateUser(req CreateUserRequest) error {
	return runRules(
		rule{"email", "email is required", func() bool { return notBlank(req.Email) }},
		rule{"email", "email format is invalid", func() bool { return emailShaped(req.Email) }},
		rule{"email", "email must not exceed 100 characters", func() bool { return within(req.Email, 100) }},
		rule{"username", "username is required", func() bool { return notBlank(req.Username) }},
		rule{"username", "username must be 3-50 characters of letters, digits and underscore", func() bool { return usernameShaped(req.Username) }},
		rule{"password", "password is required", func() bool { return req.Password != "" }},
		rule{"password", "password must be 6-20 characters", func() bool { return passwordSized(req.Password) }},
	)
}

func validateUpdateUser(req UpdateUserRequest) error {
	return runRules(
		rule{"email", "email format is invalid", func() bool { return emailShaped(req.Email) }},
		rule{"email", "email must not exceed 100 characters", func() bool { return within(req.Email, 100) }},
		rule{"username", "username must be 3-50 characters of letters, digits and underscore", func() bool { return usernameShaped(req.Username) }},
		rule{"password", "password must be 6-20 characters", func() bool { return passwordSized(req.Password) }},
	)
}

func validateCreateTask(req CreateTaskRequest) error {
	return runRules(
		rule{"title", "title is required", func() bool { return notBlank(req.Title) }},
		rule{"title", "title must not exceed 200 characters", func() bool { return within(req.Title, 200) }},
		rule{"description", "description must not exceed 1000 characters", func() bool { return within(req.Description, 1000) }},
		rule{"user_id", "user id is required", func() bool { return req.UserID != uuid.Nil }},
		rule{"priority", "priority is not a known value", func() bool { return knownPriority(req.Priority) }},
	)
}

func validateUpdateTask(req UpdateTaskRequest) error {
	return runRules(
		rule{"title", "title must not exceed 200 characters", func() bool { return within(req.Title, 200) }},
		rule{"description", "description must not exceed 1000 characters", func() bool { return within(req.Description, 1000) }},
		rule{"priority", "priority is not a known value", func() bool { return knownPriority(req.Priority) }},
	)
}

func validateCreateCategory(req CreateCategoryRequest) error {
	return runRules(
		rule{"name", "name is required", func() bool { return notBlank(req.Name) }},
		rule{"name", "name must not exceed 100 characters", func() bool { return within(req.Name, 100) }},
		rule{"description", "description must not exceed 500 characters", func() bool { return within(req.Description, 500) }},
		rule{"type", "type is required", func() bool { return notBlank(req.Type) }},
		rule{"type", "type is not a known value", func() bool { return knownCategoryType(req.Type) }},
		rule{"user_id", "user id is required", func() bool { return req.UserID != uuid.Nil }},
	)
}

func validateUpdateCategory(req UpdateCategoryRequest) error {
	return runRules(
		rule{"name", "name must not exceed 100 characters", func() bool { return within(req.Name, 100) }},
		rule{"description", "description must not exceed 500 characters", func() bool {
			return req.Description == nil || within(*req.Description, 500)
		}},
		rule{"type", "type is not a known value", func() bool { return knownCategoryType(req.Type) }},
	)
}
