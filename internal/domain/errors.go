package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Rule violation kinds. Mutators and the user aggregate wrap one of these in a
// RuleError so callers can branch with errors.Is.
var (
	ErrAlreadyCompleted  = errors.New("already completed")
	ErrCompleteCancelled = errors.New("cannot complete cancelled task")
	ErrCancelCompleted   = errors.New("cannot cancel completed task")
	ErrNotPending        = errors.New("only pending tasks can be started")
	ErrTaskQuota         = errors.New("task quota exceeded")
	ErrDuplicateTitle    = errors.New("duplicate task title")
	ErrTaskNotOwned      = errors.New("task does not belong to user")
	ErrRemoveCompleted   = errors.New("cannot remove completed task")
)

// RuleError is a domain rule violation: a state-machine guard failure or an
// aggregate invariant breach. The wrapped Kind is one of the Err... sentinels.
type RuleError struct {
	Kind error
	Msg  string
}

func (e *RuleError) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *RuleError) Unwrap() error { return e.Kind }

func ruleViolation(kind error) error {
	return &RuleError{Kind: kind}
}

func ruleViolationf(kind error, format string, args ...any) error {
	return &RuleError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// FieldViolation names a single broken input rule.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every input rule broken by a request. It is never
// fatal: the caller corrects the listed fields and resubmits.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalidField(field, message string) error {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Message: message}}}
}

// EntityKind identifies which entity a NotFoundError refers to.
type EntityKind string

const (
	KindUser     EntityKind = "user"
	KindTask     EntityKind = "task"
	KindCategory EntityKind = "category"
)

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Kind EntityKind
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// NotFound builds a NotFoundError for the given entity kind and id.
func NotFound(kind EntityKind, id uuid.UUID) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ConflictError reports a duplicate unique key, such as an email address that
// is already registered.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q is already taken", e.Field, e.Value)
}
