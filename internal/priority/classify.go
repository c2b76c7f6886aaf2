package priority

import (
	"time"

	"github.com/ptran/pastel-priority/internal/model"
)

// Bucket is the display category derived from a task's dates.
// It drives the urgency affordance next to a task, never its ordering.
type Bucket string

const (
	BucketNoDate    Bucket = "no-date"
	BucketOverdue   Bucket = "overdue"
	BucketDueToday  Bucket = "due-today"
	BucketRecurring Bucket = "recurring"
	BucketUpcoming  Bucket = "upcoming"
)

// Classify derives the display bucket for a task. Total over any task:
// tasks without either date are no-date, a past due date wins over
// everything else, then due-today, then the recurring flag, and any
// remaining dated task is upcoming.
func Classify(task model.Task, today time.Time) Bucket {
	if task.DueDate == nil && task.StartBy == nil {
		return BucketNoDate
	}

	if task.DueDate != nil {
		due := model.Midnight(*task.DueDate)
		if due.Before(today) {
			return BucketOverdue
		}
		if due.Equal(today) {
			return BucketDueToday
		}
	}

	if task.IsRecurring {
		return BucketRecurring
	}
	return BucketUpcoming
}
