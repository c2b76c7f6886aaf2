// Package session owns the live task/category state for one signed-in
// user. Every mutation validates its input, recomputes the derived
// priority score when due date, start date, or estimate change, and
// hands the whole state to the snapshot saver afterwards. Operations
// on ids that no longer exist are silent no-ops so stale UI references
// never fault.
package session

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ptran/pastel-priority/internal/clock"
	"github.com/ptran/pastel-priority/internal/model"
	"github.com/ptran/pastel-priority/internal/priority"
)

// Saver persists the session snapshot. Writes are wholesale: the
// previous snapshot is replaced in a single atomic write.
type Saver interface {
	SaveSnapshot(snap model.Snapshot) error
}

// Session is the application state passed by reference to the UI.
// Not safe for concurrent use; the event loop is single-threaded.
type Session struct {
	clock clock.Clock
	saver Saver

	user         *model.User
	categories   []model.Category
	tasks        []model.Task
	currentView  string
	currentMonth time.Time
	selectedDate *time.Time
}

// New creates an empty session. saver may be nil (no persistence).
func New(c clock.Clock, saver Saver) *Session {
	return &Session{
		clock:        c,
		saver:        saver,
		currentView:  model.ViewCategories,
		currentMonth: startOfMonth(c.Today()),
	}
}

// Restore rebuilds a session from a persisted snapshot.
func Restore(snap model.Snapshot, c clock.Clock, saver Saver) *Session {
	s := New(c, saver)
	s.user = snap.User
	s.categories = snap.Categories
	s.tasks = snap.Tasks
	if snap.CurrentView != "" {
		s.currentView = snap.CurrentView
	}
	if !snap.CurrentMonth.IsZero() {
		s.currentMonth = startOfMonth(snap.CurrentMonth)
	}
	s.selectedDate = snap.SelectedDate
	return s
}

// Snapshot returns the session state in its persisted form.
func (s *Session) Snapshot() model.Snapshot {
	return model.Snapshot{
		User:         s.user,
		Categories:   s.categories,
		Tasks:        s.tasks,
		CurrentView:  s.currentView,
		CurrentMonth: s.currentMonth,
		SelectedDate: s.selectedDate,
	}
}

// persist writes the snapshot after a mutation. A failed write leaves
// memory ahead of disk until the next successful one; tolerated for a
// single-user local app.
func (s *Session) persist() {
	if s.saver == nil {
		return
	}
	_ = s.saver.SaveSnapshot(s.Snapshot())
}

// Today returns the clock's current day.
func (s *Session) Today() time.Time { return s.clock.Today() }

// User returns the signed-in user, or nil.
func (s *Session) User() *model.User { return s.user }

// SignIn simulates authentication: any non-empty email and password
// succeed. The display name is the local part of the email.
func (s *Session) SignIn(email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredential
	}
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return s.startSession(name, email)
}

// SignUp simulates account creation; credentials are stored nowhere.
func (s *Session) SignUp(name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrInvalidCredential
	}
	return s.startSession(name, email)
}

// Resume starts a session for a previously remembered email without
// prompting for credentials.
func (s *Session) Resume(email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvalidCredential
	}
	name := email
	if at := strings.Index(email, "@"); at > 0 {
		name = email[:at]
	}
	return s.startSession(name, email)
}

func (s *Session) startSession(name, email string) (*model.User, error) {
	s.user = &model.User{
		ID:    uuid.New().String(),
		Email: email,
		Name:  name,
	}
	s.persist()
	return s.user, nil
}

// SignOut clears the user and all of their data, mirroring the
// single-user ownership of the snapshot.
func (s *Session) SignOut() {
	s.user = nil
	s.categories = nil
	s.tasks = nil
	s.selectedDate = nil
	s.currentView = model.ViewCategories
	s.persist()
}

// Categories returns all categories in creation order.
func (s *Session) Categories() []model.Category { return s.categories }

// Tasks returns all tasks in creation order.
func (s *Session) Tasks() []model.Task { return s.tasks }

// Task returns the task with the given id, or nil.
func (s *Session) Task(id string) *model.Task {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i]
		}
	}
	return nil
}

// Category returns the category with the given id, or nil.
func (s *Session) Category(id string) *model.Category {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return &s.categories[i]
		}
	}
	return nil
}

// TasksInCategory returns the category's tasks with the given status,
// in storage order.
func (s *Session) TasksInCategory(categoryID, status string) []model.Task {
	var out []model.Task
	for _, t := range s.tasks {
		if t.CategoryID == categoryID && t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// CreateCategory adds a category stamped with the current user.
func (s *Session) CreateCategory(name, color string) (*model.Category, error) {
	if s.user == nil {
		return nil, ErrNotSignedIn
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !model.ValidColor(color) {
		return nil, ErrInvalidColor
	}

	category := model.Category{
		ID:        uuid.New().String(),
		UserID:    s.user.ID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now(),
	}
	s.categories = append(s.categories, category)
	s.persist()
	return &s.categories[len(s.categories)-1], nil
}

// DeleteCategory removes a category and every task it owns, in one
// step: either the whole cascade applies or nothing does. Unknown ids
// are a no-op.
func (s *Session) DeleteCategory(id string) {
	if s.Category(id) == nil {
		return
	}

	categories := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			categories = append(categories, c)
		}
	}
	s.categories = categories

	tasks := s.tasks[:0]
	for _, t := range s.tasks {
		if t.CategoryID != id {
			tasks = append(tasks, t)
		}
	}
	s.tasks = tasks
	s.persist()
}

// CreateTask quick-adds an active task to a category with the default
// low priority tag and a freshly computed score. A stale category id
// is a no-op.
func (s *Session) CreateTask(categoryID, title string) (*model.Task, error) {
	if s.user == nil {
		return nil, ErrNotSignedIn
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if s.Category(categoryID) == nil {
		return nil, nil
	}

	task := model.Task{
		ID:            uuid.New().String(),
		UserID:        s.user.ID,
		CategoryID:    categoryID,
		Title:         title,
		Status:        model.StatusActive,
		Priority:      model.PriorityLow,
		PriorityScore: priority.Score(nil, nil, 0, s.clock.Today()),
		CreatedAt:     time.Now(),
	}
	s.tasks = append(s.tasks, task)
	s.persist()
	return &s.tasks[len(s.tasks)-1], nil
}

// EditTaskTitle renames a task. Empty titles are rejected; unknown ids
// are a no-op.
func (s *Session) EditTaskTitle(id, title string) (*model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	task := s.Task(id)
	if task == nil {
		return nil, nil
	}
	task.Title = title
	s.persist()
	return task, nil
}

// SetDueDate sets or clears a task's due date from its YYYY-MM-DD wire
// form. An empty input clears the date; anything unparsable is
// rejected with the stored value unchanged. The score is recomputed.
func (s *Session) SetDueDate(id, input string) (*model.Task, error) {
	return s.setDate(id, input, func(task *model.Task, date *time.Time) {
		task.DueDate = date
	})
}

// SetStartBy sets or clears a task's start date, with the same
// validation as SetDueDate.
func (s *Session) SetStartBy(id, input string) (*model.Task, error) {
	return s.setDate(id, input, func(task *model.Task, date *time.Time) {
		task.StartBy = date
	})
}

func (s *Session) setDate(id, input string, assign func(*model.Task, *time.Time)) (*model.Task, error) {
	var date *time.Time
	if strings.TrimSpace(input) != "" {
		parsed, err := model.ParseDate(input)
		if err != nil {
			return nil, ErrInvalidDate
		}
		date = &parsed
	}

	task := s.Task(id)
	if task == nil {
		return nil, nil
	}
	assign(task, date)
	s.rescore(task)
	s.persist()
	return task, nil
}

// SetEstimate sets a task's estimated hours from user input.
// Non-numeric input is rejected; negative numbers clamp to zero.
// The score is recomputed.
func (s *Session) SetEstimate(id, input string) (*model.Task, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return nil, ErrInvalidEstimate
	}
	if hours < 0 {
		hours = 0
	}

	task := s.Task(id)
	if task == nil {
		return nil, nil
	}
	task.EstimatedHours = hours
	s.rescore(task)
	s.persist()
	return task, nil
}

// CyclePriorityTag rotates the manual priority tag one step through
// low → medium → high → low. Never errors; unknown ids are a no-op.
func (s *Session) CyclePriorityTag(id string) *model.Task {
	task := s.Task(id)
	if task == nil {
		return nil
	}
	task.Priority = model.CyclePriority(task.Priority)
	s.persist()
	return task
}

// ToggleComplete flips a task between active and completed, stamping
// or clearing CompletedAt. The priority score is left untouched.
func (s *Session) ToggleComplete(id string) *model.Task {
	task := s.Task(id)
	if task == nil {
		return nil
	}
	if task.Status == model.StatusActive {
		now := time.Now()
		task.Status = model.StatusCompleted
		task.CompletedAt = &now
	} else {
		task.Status = model.StatusActive
		task.CompletedAt = nil
	}
	s.persist()
	return task
}

// DeleteTask removes a task. Unknown ids are a no-op.
func (s *Session) DeleteTask(id string) {
	if s.Task(id) == nil {
		return
	}
	tasks := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			tasks = append(tasks, t)
		}
	}
	s.tasks = tasks
	s.persist()
}

// rescore refreshes the derived score after a date or estimate change.
func (s *Session) rescore(task *model.Task) {
	task.PriorityScore = priority.Score(task.DueDate, task.StartBy, task.EstimatedHours, s.clock.Today())
}

// Classify returns the display bucket for a task as of today.
func (s *Session) Classify(task model.Task) priority.Bucket {
	return priority.Classify(task, s.clock.Today())
}

// CurrentView returns the persisted navigation view name.
func (s *Session) CurrentView() string { return s.currentView }

// SetCurrentView records the active view. Navigation state is memory
// only; it rides along with the next data mutation's snapshot.
func (s *Session) SetCurrentView(view string) { s.currentView = view }

// CurrentMonth returns the first day of the month the calendar shows.
func (s *Session) CurrentMonth() time.Time { return s.currentMonth }

// PrevMonth moves the calendar back one month.
func (s *Session) PrevMonth() { s.currentMonth = s.currentMonth.AddDate(0, -1, 0) }

// NextMonth moves the calendar forward one month.
func (s *Session) NextMonth() { s.currentMonth = s.currentMonth.AddDate(0, 1, 0) }

// SelectedDate returns the calendar day whose panel is open, or nil.
func (s *Session) SelectedDate() *time.Time { return s.selectedDate }

// SelectDate opens the day panel for a calendar date.
func (s *Session) SelectDate(date time.Time) {
	day := model.Midnight(date)
	s.selectedDate = &day
}

// ClearSelectedDate closes the day panel.
func (s *Session) ClearSelectedDate() { s.selectedDate = nil }

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
