// Package agenda projects the task collection into the grouped "today"
// list and the month calendar grid. Both projections are read-only and
// return task identifiers plus numeric aggregates; rendering them is
// the UI's job.
package agenda

import (
	"math"
	"sort"
	"time"

	"github.com/ptran/pastel-priority/internal/model"
)

// GroupLabel names one of the three today-view partitions.
type GroupLabel string

const (
	GroupDueOrOverdue GroupLabel = "due-today-or-overdue"
	GroupFutureDue    GroupLabel = "future-due"
	GroupNoDueDate    GroupLabel = "no-due-date"
)

// TaskGroup is one ordered partition of the today view.
type TaskGroup struct {
	Label   GroupLabel
	TaskIDs []string
}

// Agenda is the aggregated today view. All three groups are always
// present, in precedence order; the renderer skips empty ones. The
// count and hour totals cover every group, empty or not.
type Agenda struct {
	Groups     []TaskGroup
	TaskCount  int
	TotalHours float64
}

// Today partitions the active tasks into due-or-overdue, future-due,
// and no-due-date groups. Dated groups sort ascending by due date;
// undated tasks sort by priority tag (high first), stable by insertion
// order. today must be midnight-truncated.
func Today(tasks []model.Task, today time.Time) Agenda {
	var dueOrOverdue, futureDue, noDueDate []model.Task

	for _, t := range tasks {
		if !t.IsActive() {
			continue
		}
		switch {
		case t.DueDate == nil:
			noDueDate = append(noDueDate, t)
		case !model.Midnight(*t.DueDate).After(today):
			dueOrOverdue = append(dueOrOverdue, t)
		default:
			futureDue = append(futureDue, t)
		}
	}

	sortByDueDate(dueOrOverdue)
	sortByDueDate(futureDue)
	sort.SliceStable(noDueDate, func(i, j int) bool {
		return model.PriorityRank(noDueDate[i].Priority) < model.PriorityRank(noDueDate[j].Priority)
	})

	agenda := Agenda{
		Groups: []TaskGroup{
			{Label: GroupDueOrOverdue, TaskIDs: taskIDs(dueOrOverdue)},
			{Label: GroupFutureDue, TaskIDs: taskIDs(futureDue)},
			{Label: GroupNoDueDate, TaskIDs: taskIDs(noDueDate)},
		},
	}

	var hours float64
	for _, group := range [][]model.Task{dueOrOverdue, futureDue, noDueDate} {
		agenda.TaskCount += len(group)
		for _, t := range group {
			hours += t.EstimatedHours
		}
	}
	// One decimal place, matching the stats display contract.
	agenda.TotalHours = math.Round(hours*10) / 10

	return agenda
}

func sortByDueDate(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueDate.Before(*tasks[j].DueDate)
	})
}

func taskIDs(tasks []model.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}
