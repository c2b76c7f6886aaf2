package session

import (
	"errors"
	"testing"
	"time"

	"github.com/ptran/pastel-priority/internal/clock"
	"github.com/ptran/pastel-priority/internal/model"
	"github.com/ptran/pastel-priority/internal/priority"
)

// recordingSaver captures every snapshot handed to it.
type recordingSaver struct {
	saves int
	last  model.Snapshot
}

func (r *recordingSaver) SaveSnapshot(snap model.Snapshot) error {
	r.saves++
	r.last = snap
	return nil
}

func testDay() time.Time {
	return time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
}

func signedInSession(t *testing.T) (*Session, *recordingSaver) {
	t.Helper()
	saver := &recordingSaver{}
	s := New(clock.Fixed{Day: testDay()}, saver)
	if _, err := s.SignIn("dana@example.com", "hunter2"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	return s, saver
}

func mustCategory(t *testing.T, s *Session) *model.Category {
	t.Helper()
	c, err := s.CreateCategory("Errands", model.ColorMint)
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return c
}

func mustTask(t *testing.T, s *Session, categoryID, title string) *model.Task {
	t.Helper()
	task, err := s.CreateTask(categoryID, title)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task == nil {
		t.Fatalf("create task returned nil for category %s", categoryID)
	}
	return task
}

func TestSignInValidation(t *testing.T) {
	s := New(clock.Fixed{Day: testDay()}, nil)

	if _, err := s.SignIn("", "pw"); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("empty email: err = %v, want ErrInvalidCredential", err)
	}
	if _, err := s.SignIn("a@b.c", ""); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("empty password: err = %v, want ErrInvalidCredential", err)
	}

	user, err := s.SignIn("dana@example.com", "anything")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if user.Name != "dana" {
		t.Errorf("display name = %q, want local part of email", user.Name)
	}
}

func TestSignOutClearsEverything(t *testing.T) {
	s, _ := signedInSession(t)
	c := mustCategory(t, s)
	mustTask(t, s, c.ID, "buy milk")
	s.SetCurrentView(model.ViewCalendar)
	s.SelectDate(testDay())

	s.SignOut()

	if s.User() != nil {
		t.Error("user survived sign out")
	}
	if len(s.Categories()) != 0 || len(s.Tasks()) != 0 {
		t.Error("data survived sign out")
	}
	if s.SelectedDate() != nil {
		t.Error("selected date survived sign out")
	}
	if s.CurrentView() != model.ViewCategories {
		t.Errorf("view after sign out = %q, want categories", s.CurrentView())
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	s := New(clock.Fixed{Day: testDay()}, nil)

	if _, err := s.CreateCategory("Errands", model.ColorMint); !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("signed out: err = %v, want ErrNotSignedIn", err)
	}

	if _, err := s.SignIn("dana@example.com", "pw"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateCategory("   ", model.ColorMint); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name: err = %v, want ErrEmptyName", err)
	}
	if _, err := s.CreateCategory("Errands", "chartreuse"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("bad color: err = %v, want ErrInvalidColor", err)
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	s, _ := signedInSession(t)
	keep := mustCategory(t, s)
	doomed, err := s.CreateCategory("Chores", model.ColorPeach)
	if err != nil {
		t.Fatal(err)
	}

	kept := mustTask(t, s, keep.ID, "stays")
	mustTask(t, s, doomed.ID, "goes")
	mustTask(t, s, doomed.ID, "also goes")

	s.DeleteCategory(doomed.ID)

	if s.Category(doomed.ID) != nil {
		t.Error("category survived delete")
	}
	if got := len(s.Tasks()); got != 1 {
		t.Fatalf("task count after cascade = %d, want 1", got)
	}
	if s.Tasks()[0].ID != kept.ID {
		t.Error("cascade removed a task from another category")
	}

	// Unknown id is a no-op.
	s.DeleteCategory("nope")
	if len(s.Categories()) != 1 || len(s.Tasks()) != 1 {
		t.Error("deleting an unknown category changed state")
	}
}

func TestCreateTaskDefaults(t *testing.T) {
	s, _ := signedInSession(t)
	c := mustCategory(t, s)

	task := mustTask(t, s, c.ID, "  buy milk  ")

	if task.Title != "buy milk" {
		t.Errorf("title = %q, want trimmed", task.Title)
	}
	if task.Status != model.StatusActive {
		t.Errorf("status = %q, want active", task.Status)
	}
	if task.Priority != model.PriorityLow {
		t.Errorf("priority = %q, want low", task.Priority)
	}
	if want := priority.Score(nil, nil, 0, testDay()); task.PriorityScore != want {
		t.Errorf("score = %d, want undated score %d", task.PriorityScore, want)
	}

	if _, err := s.CreateTask(c.ID, "   "); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("blank title: err = %v, want ErrEmptyTitle", err)
	}

	// Stale category id: no task, no error.
	task, err := s.CreateTask("gone", "orphan")
	if err != nil || task != nil {
		t.Errorf("stale category: task=%v err=%v, want nil/nil", task, err)
	}
}

func TestSetDueDateRescores(t *testing.T) {
	s, _ := signedInSession(t)
	c := mustCategory(t, s)
	task := mustTask(t, s, c.ID, "report")

	updated, err := s.SetDueDate(task.ID, "2026-03-12")
	if err != nil {
		t.Fatalf("set due date: %v", err)
	}
	if updated.DueDate == nil || model.FormatDate(*updated.DueDate) != "2026-03-12" {
		t.Errorf("due date = %v, want 2026-03-12", updated.DueDate)
	}
	// Due in 2 days, no start, no estimate: 2*2 + far-future start.
	if want := 4 + priority.FarFutureDays; updated.PriorityScore != want {
		t.Errorf("score = %d, want %d", updated.PriorityScore, want)
	}

	// Empty input clears the date and restores the undated score.
	updated, err = s.SetDueDate(task.ID, "  ")
	if err != nil {
		t.Fatalf("clear due date: %v", err)
	}
	if updated.DueDate != nil {
		t.Errorf("due date = %v, want cleared", updated.DueDate)
	}
	if want := priority.Score(nil, nil, 0, testDay()); updated.PriorityScore != want {
		t.Errorf("score after clear = %d, want %d", updated.PriorityScore, want)
	}
}

func TestSetDueDateRejectsBadInput(t *testing.T) {
	s, _ := signedInSession(t)
	c := mustCategory(t, s)
	task := mustTask(t, s, c.ID, "report")
	if _, err := s.SetDueDate(task.ID, "2026-03-12"); err != nil {
		t.Fatal(err)
	}
	before := *s.Task(task.ID)

	for _, input := range []string{"tomorrow", "2026/03/12", "2026-13-40", "12-03-2026"} {
		if _, err := s.SetDueDate(task.ID, input); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("input %q: err = %v, want ErrInvalidDate", input, err)
		}
	}

	after := *s.Task(task.ID)
	if !after.DueDate.Equal(*before.DueDate) || after.PriorityScore != before.PriorityScore {
		t.Error("rejected input changed the stored task")
	}
}

func TestSetStartByFeedsScore(t *testing.T) {
	s, _ := signedInSession(t)
	c := mustCategory(t, s)
	task := mustTask(t, s, c.ID, "report")
	if _, err := s.SetDueDate(task.ID, "2026-03-12"); err != nil {
		t.Fatal(err)
	}

	updated, err := s.SetStartBy(task.ID, "2026-03-11")
	if err != nil {
		t.Fatalf("set start by: %v", err)
	}
	// 2*2 for the due date plus 1 for the start date.
	if updated.PriorityScore != 5 {
		t.Errorf("score = %d, want 5", updated.PriorityScore)
	}
}

func TestSetEstimate(t *testing.T) {
	s, _ := signedInSession(t)
	c := mustCategory(t, s)
	task := mustTask(t, s, c.ID, "report")

	if _, err := s.SetEstimate(task.ID, "abc"); !errors.Is(err, ErrInvalidEstimate) {
		t.Errorf("non-numeric: err = %v, want ErrInvalidEstimate", err)
	}

	updated, err := s.SetEstimate(task.ID, "-5")
	if err != nil {
		t.Fatalf("negative estimate: %v", err)
	}
	if updated.EstimatedHours != 0 {
		t.Errorf("hours = %v, negatives should clamp to 0", updated.EstimatedHours)
	}

	updated, err = s.SetEstimate(task.ID, " 2.5 ")
	if err != nil {
		t.Fatalf("set estimate: %v", err)
	}
	if updated.EstimatedHours != 2.5 {
		t.Errorf("hours = %v, want 2.5", updated.EstimatedHours)
	}
}

func TestCyclePriorityTag(t *testing.T) {
	s, _ := signedInSession(t)
	c := mustCategory(t, s)
	task := mustTask(t, s, c.ID, "report")
	scoreBefore := task.PriorityScore

	want := []string{model.PriorityMedium, model.PriorityHigh, model.PriorityLow}
	for _, p := range want {
		got := s.CyclePriorityTag(task.ID)
		if got.Priority != p {
			t.Fatalf("priority = %q, want %q", got.Priority, p)
		}
	}

	// The manual tag never feeds the derived score.
	if s.Task(task.ID).PriorityScore != scoreBefore {
		t.Error("cycling priority changed the derived score")
	}

	if got := s.CyclePriorityTag("nope"); got != nil {
		t.Errorf("unknown id = %v, want nil", got)
	}
}

func TestToggleCompleteRoundTrip(t *testing.T) {
	s, _ := signedInSession(t)
	c := mustCategory(t, s)
	task := mustTask(t, s, c.ID, "report")
	if _, err := s.SetDueDate(task.ID, "2026-03-12"); err != nil {
		t.Fatal(err)
	}
	scoreBefore := s.Task(task.ID).PriorityScore

	done := s.ToggleComplete(task.ID)
	if done.Status != model.StatusCompleted || done.CompletedAt == nil {
		t.Errorf("after toggle: status=%q completedAt=%v", done.Status, done.CompletedAt)
	}
	if done.PriorityScore != scoreBefore {
		t.Error("completing changed the derived score")
	}

	back := s.ToggleComplete(task.ID)
	if back.Status != model.StatusActive || back.CompletedAt != nil {
		t.Errorf("after second toggle: status=%q completedAt=%v", back.Status, back.CompletedAt)
	}
}

func TestDeleteTask(t *testing.T) {
	s, _ := signedInSession(t)
	c := mustCategory(t, s)
	task := mustTask(t, s, c.ID, "report")
	other := mustTask(t, s, c.ID, "other")

	s.DeleteTask(task.ID)

	if s.Task(task.ID) != nil {
		t.Error("task survived delete")
	}
	if s.Task(other.ID) == nil {
		t.Error("delete removed the wrong task")
	}

	s.DeleteTask("nope")
	if len(s.Tasks()) != 1 {
		t.Error("deleting an unknown task changed state")
	}
}

func TestMutationsPersistSnapshots(t *testing.T) {
	s, saver := signedInSession(t)
	c := mustCategory(t, s)
	task := mustTask(t, s, c.ID, "report")
	if _, err := s.SetDueDate(task.ID, "2026-03-12"); err != nil {
		t.Fatal(err)
	}

	if saver.saves < 3 {
		t.Fatalf("saves = %d, want one per mutation", saver.saves)
	}
	if len(saver.last.Tasks) != 1 || saver.last.Tasks[0].DueDate == nil {
		t.Error("last snapshot does not reflect the latest mutation")
	}
	if saver.last.User == nil || saver.last.User.Email != "dana@example.com" {
		t.Error("snapshot lost the signed-in user")
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	s, saver := signedInSession(t)
	c := mustCategory(t, s)
	mustTask(t, s, c.ID, "report")
	s.SetCurrentView(model.ViewToday)
	s.NextMonth()

	restored := Restore(s.Snapshot(), clock.Fixed{Day: testDay()}, saver)

	if restored.User() == nil || restored.User().Email != "dana@example.com" {
		t.Error("restore lost the user")
	}
	if len(restored.Categories()) != 1 || len(restored.Tasks()) != 1 {
		t.Error("restore lost data")
	}
	if restored.CurrentView() != model.ViewToday {
		t.Errorf("restored view = %q, want today", restored.CurrentView())
	}
	if got := restored.CurrentMonth(); got.Month() != time.April || got.Day() != 1 {
		t.Errorf("restored month = %v, want April 1", got)
	}
}

func TestMonthNavigation(t *testing.T) {
	s := New(clock.Fixed{Day: testDay()}, nil)

	if got := s.CurrentMonth(); got.Month() != time.March || got.Day() != 1 {
		t.Fatalf("initial month = %v, want March 1", got)
	}

	s.PrevMonth()
	if got := s.CurrentMonth(); got.Month() != time.February {
		t.Errorf("after prev = %v, want February", got)
	}

	s.NextMonth()
	s.NextMonth()
	if got := s.CurrentMonth(); got.Month() != time.April {
		t.Errorf("after two next = %v, want April", got)
	}
}

func TestSelectDateTruncatesToMidnight(t *testing.T) {
	s := New(clock.Fixed{Day: testDay()}, nil)

	s.SelectDate(time.Date(2026, time.March, 12, 17, 45, 3, 0, time.UTC))

	got := s.SelectedDate()
	if got == nil {
		t.Fatal("selected date not set")
	}
	if !got.Equal(time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("selected date = %v, want midnight", got)
	}

	s.ClearSelectedDate()
	if s.SelectedDate() != nil {
		t.Error("selected date not cleared")
	}
}
