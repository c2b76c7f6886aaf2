package agenda

import (
	"reflect"
	"testing"
	"time"

	"github.com/ptran/pastel-priority/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(t time.Time) *time.Time { return &t }

func activeTask(id string, due *time.Time, priority string, hours float64) model.Task {
	return model.Task{
		ID:             id,
		Status:         model.StatusActive,
		DueDate:        due,
		Priority:       priority,
		EstimatedHours: hours,
	}
}

func TestTodayGrouping(t *testing.T) {
	today := day(2026, time.March, 10)

	tasks := []model.Task{
		activeTask("future-far", datePtr(day(2026, time.March, 20)), model.PriorityLow, 2),
		activeTask("overdue", datePtr(day(2026, time.March, 8)), model.PriorityLow, 1),
		activeTask("undated-low", nil, model.PriorityLow, 0.5),
		activeTask("due-today", datePtr(day(2026, time.March, 10)), model.PriorityMedium, 3),
		activeTask("future-near", datePtr(day(2026, time.March, 12)), model.PriorityHigh, 0),
		activeTask("undated-high", nil, model.PriorityHigh, 1),
	}

	got := Today(tasks, today)

	if len(got.Groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(got.Groups))
	}

	wantIDs := map[GroupLabel][]string{
		GroupDueOrOverdue: {"overdue", "due-today"},
		GroupFutureDue:    {"future-near", "future-far"},
		GroupNoDueDate:    {"undated-high", "undated-low"},
	}
	for _, g := range got.Groups {
		if !reflect.DeepEqual(g.TaskIDs, wantIDs[g.Label]) {
			t.Errorf("group %s = %v, want %v", g.Label, g.TaskIDs, wantIDs[g.Label])
		}
	}

	if got.TaskCount != 6 {
		t.Errorf("TaskCount = %d, want 6", got.TaskCount)
	}
	if got.TotalHours != 7.5 {
		t.Errorf("TotalHours = %v, want 7.5", got.TotalHours)
	}
}

func TestTodayGroupOrderFixed(t *testing.T) {
	got := Today(nil, day(2026, time.March, 10))

	want := []GroupLabel{GroupDueOrOverdue, GroupFutureDue, GroupNoDueDate}
	for i, g := range got.Groups {
		if g.Label != want[i] {
			t.Errorf("group[%d] = %s, want %s", i, g.Label, want[i])
		}
		if len(g.TaskIDs) != 0 {
			t.Errorf("group %s should be empty, got %v", g.Label, g.TaskIDs)
		}
	}
	if got.TaskCount != 0 || got.TotalHours != 0 {
		t.Errorf("empty agenda stats = %d tasks, %v hours", got.TaskCount, got.TotalHours)
	}
}

func TestTodayExcludesCompleted(t *testing.T) {
	today := day(2026, time.March, 10)
	tasks := []model.Task{
		activeTask("open", datePtr(today), model.PriorityLow, 1),
		{
			ID:             "closed",
			Status:         model.StatusCompleted,
			DueDate:        datePtr(today),
			Priority:       model.PriorityHigh,
			EstimatedHours: 4,
		},
	}

	got := Today(tasks, today)

	if got.TaskCount != 1 {
		t.Fatalf("TaskCount = %d, want 1", got.TaskCount)
	}
	if got.TotalHours != 1 {
		t.Errorf("TotalHours = %v, completed task hours should not count", got.TotalHours)
	}
	if ids := got.Groups[0].TaskIDs; len(ids) != 1 || ids[0] != "open" {
		t.Errorf("due group = %v, want [open]", ids)
	}
}

func TestTodayUndatedTiesKeepInsertionOrder(t *testing.T) {
	today := day(2026, time.March, 10)
	tasks := []model.Task{
		activeTask("first", nil, model.PriorityMedium, 0),
		activeTask("second", nil, model.PriorityMedium, 0),
		activeTask("third", nil, model.PriorityMedium, 0),
	}

	got := Today(tasks, today)

	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got.Groups[2].TaskIDs, want) {
		t.Errorf("equal-priority order = %v, want %v", got.Groups[2].TaskIDs, want)
	}
}

func TestTodayHoursRounding(t *testing.T) {
	today := day(2026, time.March, 10)
	tasks := []model.Task{
		activeTask("a", nil, model.PriorityLow, 0.1),
		activeTask("b", nil, model.PriorityLow, 0.2),
		activeTask("c", nil, model.PriorityLow, 0.25),
	}

	got := Today(tasks, today)

	if got.TotalHours != 0.6 {
		t.Errorf("TotalHours = %v, want 0.6", got.TotalHours)
	}
}
