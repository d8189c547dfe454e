package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category groups tasks for a user. Its display color is derived from the
// type and recomputed whenever the type changes.
type Category struct {
	id          uuid.UUID
	name        string
	description string
	ctype       CategoryType
	color       string
	userID      uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCategory creates a category for the given user.
func NewCategory(name, description string, ctype CategoryType, userID uuid.UUID) (*Category, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}
	description, err = normalizeCategoryDescription(description)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Category{
		id:          uuid.New(),
		name:        name,
		description: description,
		ctype:       ctype,
		color:       ColorForType(ctype),
		userID:      userID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func (c *Category) ID() uuid.UUID        { return c.id }
func (c *Category) Name() string         { return c.name }
func (c *Category) Description() string  { return c.description }
func (c *Category) Type() CategoryType   { return c.ctype }
func (c *Category) Color() string        { return c.color }
func (c *Category) UserID() uuid.UUID    { return c.userID }
func (c *Category) CreatedAt() time.Time { return c.createdAt }
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }

// ChangeName replaces the name, applying the construction-time rules.
func (c *Category) ChangeName(name string) error {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return err
	}
	c.name = name
	c.touch()
	return nil
}

// ChangeDescription replaces the description, applying the construction-time
// rules.
func (c *Category) ChangeDescription(description string) error {
	description, err := normalizeCategoryDescription(description)
	if err != nil {
		return err
	}
	c.description = description
	c.touch()
	return nil
}

// ChangeType replaces the type and recomputes the color.
func (c *Category) ChangeType(ctype CategoryType) {
	c.ctype = ctype
	c.color = ColorForType(ctype)
	c.touch()
}

func (c *Category) touch() {
	c.updatedAt = time.Now().UTC()
}

func normalizeCategoryName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", invalidField("name", "name is required")
	}
	if len(trimmed) > 100 {
		return "", invalidField("name", "name must not exceed 100 characters")
	}
	return trimmed, nil
}

func normalizeCategoryDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if len(trimmed) > 500 {
		return "", invalidField("description", "description must not exceed 500 characters")
	}
	return trimmed, nil
}
