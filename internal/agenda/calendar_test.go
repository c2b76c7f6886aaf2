package agenda

import (
	"reflect"
	"testing"
	"time"

	"github.com/ptran/pastel-priority/internal/model"
)

// April 2026 starts on a Wednesday and has 30 days, so the grid needs
// three leading cells and two trailing ones to square off at 35.
func TestMonthGridShape(t *testing.T) {
	today := day(2026, time.April, 15)

	grid := Month(nil, 2026, time.April, today, 0)

	if len(grid.Cells)%7 != 0 {
		t.Fatalf("grid length %d is not a multiple of 7", len(grid.Cells))
	}
	if len(grid.Cells) != 35 {
		t.Fatalf("grid length = %d, want 35", len(grid.Cells))
	}

	// Leading cells carry the tail of March.
	for i, wantDay := range []int{29, 30, 31} {
		cell := grid.Cells[i]
		if cell.InMonth || cell.Day != wantDay {
			t.Errorf("lead cell %d = day %d inMonth=%v, want day %d out of month",
				i, cell.Day, cell.InMonth, wantDay)
		}
	}

	if first := grid.Cells[3]; !first.InMonth || first.Day != 1 {
		t.Errorf("cell 3 = day %d inMonth=%v, want April 1", first.Day, first.InMonth)
	}
	if last := grid.Cells[32]; !last.InMonth || last.Day != 30 {
		t.Errorf("cell 32 = day %d inMonth=%v, want April 30", last.Day, last.InMonth)
	}

	// Trailing cells start May.
	for i, wantDay := range []int{1, 2} {
		cell := grid.Cells[33+i]
		if cell.InMonth || cell.Day != wantDay {
			t.Errorf("trail cell = day %d inMonth=%v, want day %d out of month",
				cell.Day, cell.InMonth, wantDay)
		}
	}
}

func TestMonthMarksToday(t *testing.T) {
	today := day(2026, time.April, 15)

	grid := Month(nil, 2026, time.April, today, 0)
	for _, cell := range grid.Cells {
		want := cell.InMonth && cell.Day == 15
		if cell.IsToday != want {
			t.Errorf("day %d inMonth=%v IsToday=%v, want %v", cell.Day, cell.InMonth, cell.IsToday, want)
		}
	}

	// Another month never marks today.
	other := Month(nil, 2026, time.May, today, 0)
	for _, cell := range other.Cells {
		if cell.IsToday {
			t.Errorf("May grid marked day %d as today", cell.Day)
		}
	}
}

func TestMonthPreviewCap(t *testing.T) {
	today := day(2026, time.April, 1)
	due := day(2026, time.April, 10)

	tasks := []model.Task{
		activeTask("a", datePtr(due), model.PriorityLow, 0),
		activeTask("b", datePtr(due), model.PriorityLow, 0),
		activeTask("c", datePtr(due), model.PriorityLow, 0),
		activeTask("d", datePtr(due), model.PriorityLow, 0),
		activeTask("e", datePtr(due), model.PriorityLow, 0),
	}

	grid := Month(tasks, 2026, time.April, today, 3)

	var cell DayCell
	for _, c := range grid.Cells {
		if c.InMonth && c.Day == 10 {
			cell = c
		}
	}

	if !reflect.DeepEqual(cell.TaskIDs, []string{"a", "b", "c"}) {
		t.Errorf("preview = %v, want first three in storage order", cell.TaskIDs)
	}
	if cell.More != 2 {
		t.Errorf("More = %d, want 2", cell.More)
	}
}

func TestMonthSkipsCompletedTasks(t *testing.T) {
	today := day(2026, time.April, 1)
	due := day(2026, time.April, 10)

	tasks := []model.Task{
		{ID: "done", Status: model.StatusCompleted, DueDate: datePtr(due)},
		activeTask("open", datePtr(due), model.PriorityLow, 0),
	}

	grid := Month(tasks, 2026, time.April, today, 0)
	for _, c := range grid.Cells {
		if c.InMonth && c.Day == 10 {
			if !reflect.DeepEqual(c.TaskIDs, []string{"open"}) {
				t.Errorf("cell preview = %v, want [open]", c.TaskIDs)
			}
		}
	}
}

func TestTasksOnIncludesCompleted(t *testing.T) {
	due := day(2026, time.April, 10)

	tasks := []model.Task{
		{ID: "done", Status: model.StatusCompleted, DueDate: datePtr(due)},
		activeTask("open", datePtr(due), model.PriorityLow, 0),
		activeTask("other-day", datePtr(day(2026, time.April, 11)), model.PriorityLow, 0),
		activeTask("undated", nil, model.PriorityLow, 0),
	}

	got := TasksOn(tasks, due)

	want := []string{"done", "open"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TasksOn = %v, want %v", got, want)
	}
}
