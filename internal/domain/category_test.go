package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorForType(t *testing.T) {
	cases := map[CategoryType]string{
		CategoryWork:     "#2E86AB",
		CategoryPersonal: "#F24236",
		CategoryHealth:   "#4CAF50",
		CategoryFinance:  "#FF9800",
		CategoryLearning: "#9C27B0",
		CategorySocial:   "#00BCD4",
		CategoryHome:     "#795548",
		CategoryProjects: "#E91E63",
		CategoryTravel:   "#607D8B",
		CategoryUrgent:   "#FF5722",
	}
	for ctype, want := range cases {
		assert.Equal(t, want, ColorForType(ctype), "type=%s", ctype)
		// Same input, same output, every time.
		assert.Equal(t, ColorForType(ctype), ColorForType(ctype))
	}

	assert.Equal(t, DefaultCategoryColor, ColorForType(CategoryType(99)))
}

func TestNewCategory_DerivesColor(t *testing.T) {
	cat, err := NewCategory("  Office  ", "Things from work", CategoryWork, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, "Office", cat.Name())
	assert.Equal(t, CategoryWork, cat.Type())
	assert.Equal(t, "#2E86AB", cat.Color())
}

func TestNewCategory_Validation(t *testing.T) {
	userID := uuid.New()

	_, err := NewCategory("   ", "", CategoryWork, userID)
	assert.Error(t, err)

	_, err = NewCategory(strings.Repeat("n", 101), "", CategoryWork, userID)
	assert.Error(t, err)

	_, err = NewCategory("Office", strings.Repeat("d", 501), CategoryWork, userID)
	assert.Error(t, err)
}

func TestChangeType_RecomputesColor(t *testing.T) {
	cat, err := NewCategory("Office", "", CategoryWork, uuid.New())
	require.NoError(t, err)

	cat.ChangeType(CategoryUrgent)
	assert.Equal(t, CategoryUrgent, cat.Type())
	assert.Equal(t, "#FF5722", cat.Color())
}

func TestParseEnums(t *testing.T) {
	status, ok := ParseTaskStatus("in_progress")
	require.True(t, ok)
	assert.Equal(t, StatusInProgress, status)
	_, ok = ParseTaskStatus("started")
	assert.False(t, ok)

	priority, ok := ParseTaskPriority("critical")
	require.True(t, ok)
	assert.Equal(t, PriorityCritical, priority)
	_, ok = ParseTaskPriority("urgent")
	assert.False(t, ok)

	ctype, ok := ParseCategoryType("travel")
	require.True(t, ok)
	assert.Equal(t, CategoryTravel, ctype)
	_, ok = ParseCategoryType("misc")
	assert.False(t, ok)
}
