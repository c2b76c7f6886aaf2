package model

import (
	"strings"
	"time"
)

// Task status constants.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Priority tag constants. The tag is a manual label cycled by the user
// and is independent of the computed priority score.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// PriorityRank returns the sort rank for a priority tag
// (high before medium before low). Unknown tags rank as low.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// CyclePriority returns the next tag in the fixed low → medium → high
// → low cycle. Unknown tags restart the cycle at medium.
func CyclePriority(priority string) string {
	switch priority {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	case PriorityHigh:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Task is a single item owned by a category.
type Task struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	CategoryID string `json:"category_id"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// Status is either StatusActive or StatusCompleted.
	Status string `json:"status"`

	// DueDate and StartBy are calendar dates at midnight; nil means unset.
	// StartBy marks the date before which the task should not surface.
	DueDate *time.Time `json:"due_date,omitempty"`
	StartBy *time.Time `json:"start_by,omitempty"`

	// EstimatedHours is the user's effort estimate, never negative.
	EstimatedHours float64 `json:"estimated_hours"`

	// Priority is the manual low/medium/high tag.
	Priority string `json:"priority"`

	// PriorityScore is derived from DueDate, StartBy, and EstimatedHours.
	// Lower value = more urgent. Kept consistent by the session on every
	// mutation of those three fields.
	PriorityScore int `json:"priority_score"`

	// Recurrence attributes are stored but not yet scheduled.
	IsRecurring    bool     `json:"is_recurring"`
	RecurrenceDays []string `json:"recurrence_days,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// IsActive reports whether the task has not been completed.
func (t Task) IsActive() bool { return t.Status != StatusCompleted }

// DateLayout is the wire form for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a midnight local time.
// Out-of-range components ("2024-13-40") are rejected.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
}

// FormatDate renders a date in its YYYY-MM-DD wire form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Midnight truncates a time to the start of its day in its location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
