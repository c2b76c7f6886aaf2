package agenda

import (
	"time"

	"github.com/ptran/pastel-priority/internal/model"
)

// DefaultPreviewCap is how many tasks a day cell previews before
// collapsing the remainder into a count.
const DefaultPreviewCap = 3

// DayCell is one cell of the month grid. Cells from the neighboring
// months carry only their day number.
type DayCell struct {
	Day     int
	Date    time.Time
	InMonth bool
	IsToday bool

	// TaskIDs previews up to the cap of active tasks due this day, in
	// storage order; More counts the tasks beyond the preview.
	TaskIDs []string
	More    int
}

// MonthGrid is the 7-column calendar projection of a single month.
// Rows are always complete: leading cells come from the previous month
// and trailing cells from the next so len(Cells) is a multiple of 7.
type MonthGrid struct {
	Year  int
	Month time.Month
	Cells []DayCell
}

// Month builds the grid for the given month. Weeks start on Sunday.
// A cell is marked today only when the grid shows the current month.
// previewCap <= 0 falls back to DefaultPreviewCap.
func Month(tasks []model.Task, year int, month time.Month, today time.Time, previewCap int) MonthGrid {
	if previewCap <= 0 {
		previewCap = DefaultPreviewCap
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, today.Location()).Day()
	prevLast := first.AddDate(0, 0, -1).Day()

	grid := MonthGrid{Year: year, Month: month}

	// Leading cells: as many previous-month days as the weekday index
	// of the 1st (Sunday-start week).
	lead := int(first.Weekday())
	for i := lead; i > 0; i-- {
		grid.Cells = append(grid.Cells, DayCell{Day: prevLast - i + 1})
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, today.Location())
		cell := DayCell{
			Day:     day,
			Date:    date,
			InMonth: true,
			IsToday: model.SameDay(date, today),
		}

		for _, t := range tasks {
			if !t.IsActive() || t.DueDate == nil || !model.SameDay(*t.DueDate, date) {
				continue
			}
			if len(cell.TaskIDs) < previewCap {
				cell.TaskIDs = append(cell.TaskIDs, t.ID)
			} else {
				cell.More++
			}
		}

		grid.Cells = append(grid.Cells, cell)
	}

	// Trailing cells pad the last row to a full week.
	for day := 1; len(grid.Cells)%7 != 0; day++ {
		grid.Cells = append(grid.Cells, DayCell{Day: day})
	}

	return grid
}

// TasksOn returns the ids of every task, active or completed, due on
// the given calendar day, in storage order. Backs the day detail panel
// opened by selecting a cell.
func TasksOn(tasks []model.Task, date time.Time) []string {
	var ids []string
	for _, t := range tasks {
		if t.DueDate != nil && model.SameDay(*t.DueDate, date) {
			ids = append(ids, t.ID)
		}
	}
	return ids
}
