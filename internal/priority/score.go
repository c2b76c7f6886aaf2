// Package priority computes the derived urgency score and display
// bucket for tasks. Everything here is a pure function of the task
// fields and the reference day; callers own storing the results.
package priority

import (
	"math"
	"time"
)

// FarFutureDays is the day distance assumed for an absent date. Any
// task with a concrete due date scores lower (more urgent) than one
// without, for every representable calendar date. The magnitude is
// arbitrary but fixed; scores are only comparable within one build.
const FarFutureDays = 1 << 30

// OverdueFloorDays caps how far in the past a due date can pull the
// score down, so ancient overdue tasks cannot dominate unboundedly.
const OverdueFloorDays = -999

// Score maps a task's dates and effort estimate to its urgency score.
// Lower = more urgent. Nil dates are treated as absent, never an error.
// today must be truncated to midnight (see the clock package).
func Score(dueDate, startBy *time.Time, estimatedHours float64, today time.Time) int {
	daysUntilDue := float64(FarFutureDays)
	daysUntilStart := float64(FarFutureDays)

	if dueDate != nil {
		daysUntilDue = daysUntil(*dueDate, today)
		if daysUntilDue < OverdueFloorDays {
			daysUntilDue = OverdueFloorDays
		}
	}

	if startBy != nil {
		daysUntilStart = daysUntil(*startBy, today)
		if daysUntilStart < 0 {
			daysUntilStart = 0
		}
	}

	return int(math.Round(daysUntilDue*2 + daysUntilStart + estimatedHours/2))
}

// daysUntil returns the whole number of days from today to date,
// rounding partial days (DST shifts) up.
func daysUntil(date, today time.Time) float64 {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, today.Location())
	return math.Ceil(day.Sub(today).Hours() / 24)
}
