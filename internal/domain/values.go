package domain

import (
	"net/mail"
	"regexp"
	"strings"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Email is a validated, normalized email address. The zero value is invalid;
// always construct through NewEmail.
type Email struct {
	value string
}

// NewEmail validates raw as an address and normalizes it to trimmed lowercase.
func NewEmail(raw string) (Email, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Email{}, invalidField("email", "email is required")
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return Email{}, invalidField("email", "email format is invalid")
	}
	return Email{value: strings.ToLower(trimmed)}, nil
}

func (e Email) String() string { return e.value }

// Username is a validated account name: 3-50 characters, letters, digits and
// underscore only.
type Username struct {
	value string
}

// NewUsername validates and trims raw.
func NewUsername(raw string) (Username, error) {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return Username{}, invalidField("username", "username is required")
	case len(trimmed) < 3:
		return Username{}, invalidField("username", "username must be at least 3 characters")
	case len(trimmed) > 50:
		return Username{}, invalidField("username", "username must not exceed 50 characters")
	case !usernamePattern.MatchString(trimmed):
		return Username{}, invalidField("username", "username may only contain letters, digits and underscore")
	}
	return Username{value: trimmed}, nil
}

func (u Username) String() string { return u.value }

// TaskTitle is a validated task title: non-empty, trimmed, at most 200
// characters.
type TaskTitle struct {
	value string
}

// NewTaskTitle validates and trims raw.
func NewTaskTitle(raw string) (TaskTitle, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return TaskTitle{}, invalidField("title", "title is required")
	}
	if len(trimmed) > 200 {
		return TaskTitle{}, invalidField("title", "title must not exceed 200 characters")
	}
	return TaskTitle{value: trimmed}, nil
}

func (t TaskTitle) String() string { return t.value }

// EqualsFold reports whether two titles match ignoring case. Used by the user
// aggregate for its uniqueness invariant.
func (t TaskTitle) EqualsFold(other TaskTitle) bool {
	return strings.EqualFold(t.value, other.value)
}

// TaskDescription is an optional task description: trimmed, at most 1000
// characters, empty allowed.
type TaskDescription struct {
	value string
}

// NewTaskDescription validates and trims raw. An empty string is a valid
// description.
func NewTaskDescription(raw string) (TaskDescription, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) > 1000 {
		return TaskDescription{}, invalidField("description", "description must not exceed 1000 characters")
	}
	return TaskDescription{value: trimmed}, nil
}

func (d TaskDescription) String() string { return d.value }
