package domain

import "fmt"

// TaskStatus is the lifecycle state of a task.
type TaskStatus int

const (
	StatusPending TaskStatus = iota + 1
	StatusInProgress
	StatusCompleted
	StatusCancelled
)

var statusNames = map[TaskStatus]string{
	StatusPending:    "pending",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
	StatusCancelled:  "cancelled",
}

func (s TaskStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TaskStatus(%d)", int(s))
}

// ParseTaskStatus resolves a wire name to a TaskStatus.
func ParseTaskStatus(name string) (TaskStatus, bool) {
	for s, n := range statusNames {
		if n == name {
			return s, true
		}
	}
	return 0, false
}

// TaskPriority is the urgency level of a task.
type TaskPriority int

const (
	PriorityLow TaskPriority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

var priorityNames = map[TaskPriority]string{
	PriorityLow:      "low",
	PriorityMedium:   "medium",
	PriorityHigh:     "high",
	PriorityCritical: "critical",
}

func (p TaskPriority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("TaskPriority(%d)", int(p))
}

// ParseTaskPriority resolves a wire name to a TaskPriority.
func ParseTaskPriority(name string) (TaskPriority, bool) {
	for p, n := range priorityNames {
		if n == name {
			return p, true
		}
	}
	return 0, false
}

// CategoryType is the closed set of category kinds. Each type carries a fixed
// display color, see ColorForType.
type CategoryType int

const (
	CategoryWork CategoryType = iota + 1
	CategoryPersonal
	CategoryHealth
	CategoryFinance
	CategoryLearning
	CategorySocial
	CategoryHome
	CategoryProjects
	CategoryTravel
	CategoryUrgent
)

var categoryTypeNames = map[CategoryType]string{
	CategoryWork:     "work",
	CategoryPersonal: "personal",
	CategoryHealth:   "health",
	CategoryFinance:  "finance",
	CategoryLearning: "learning",
	CategorySocial:   "social",
	CategoryHome:     "home",
	CategoryProjects: "projects",
	CategoryTravel:   "travel",
	CategoryUrgent:   "urgent",
}

func (t CategoryType) String() string {
	if name, ok := categoryTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CategoryType(%d)", int(t))
}

// ParseCategoryType resolves a wire name to a CategoryType.
func ParseCategoryType(name string) (CategoryType, bool) {
	for t, n := range categoryTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// DefaultCategoryColor is used for any type outside the known mapping.
const DefaultCategoryColor = "#6C757D"

// ColorForType returns the fixed display color for a category type. The
// mapping is pure: a given type always yields the same literal.
func ColorForType(t CategoryType) string {
	switch t {
	case CategoryWork:
		return "#2E86AB"
	case CategoryPersonal:
		return "#F24236"
	case CategoryHealth:
		return "#4CAF50"
	case CategoryFinance:
		return "#FF9800"
	case CategoryLearning:
		return "#9C27B0"
	case CategorySocial:
		return "#00BCD4"
	case CategoryHome:
		return "#795548"
	case CategoryProjects:
		return "#E91E63"
	case CategoryTravel:
		return "#607D8B"
	case CategoryUrgent:
		return "#FF5722"
	default:
		return DefaultCategoryColor
	}
}
