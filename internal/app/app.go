package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ptran/pastel-priority/internal/credential"
	"github.com/ptran/pastel-priority/internal/keys"
	"github.com/ptran/pastel-priority/internal/model"
	"github.com/ptran/pastel-priority/internal/session"
	"github.com/ptran/pastel-priority/internal/ui"
	"github.com/ptran/pastel-priority/internal/ui/calendarview"
	"github.com/ptran/pastel-priority/internal/ui/categories"
	"github.com/ptran/pastel-priority/internal/ui/categoryform"
	"github.com/ptran/pastel-priority/internal/ui/helpview"
	"github.com/ptran/pastel-priority/internal/ui/login"
	"github.com/ptran/pastel-priority/internal/ui/prompt"
	"github.com/ptran/pastel-priority/internal/ui/todayview"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewCategories
	ViewToday
	ViewCalendar
	ViewHelp
	ViewPrompt
	ViewCategoryForm
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and the signed-in session.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	session      *session.Session
	config       model.AppConfig
	keys         *keys.KeyMap

	loginView    login.Model
	categoryView categories.Model
	todayView    todayview.Model
	calendarView calendarview.Model
	helpView     helpview.Model
	promptView   prompt.Model
	formView     categoryform.Model

	// pendingDueDate seeds a task created from the calendar grid.
	pendingDueDate string

	ready         bool
	statusMessage string
}

// New creates the root application model over a restored session.
func New(s *session.Session, config model.AppConfig) Model {
	k := keys.DefaultKeyMap()

	m := Model{
		session:      s,
		config:       config,
		keys:         k,
		loginView:    login.New(80, 24),
		categoryView: categories.New(s, k, 80, 24),
		todayView:    todayview.New(s, k, 80, 24),
		calendarView: calendarview.New(s, k, config.Display.CalendarPreview, 80, 24),
		helpView:     helpview.New(k, 80, 24),
		promptView:   prompt.New(80, 24),
		formView:     categoryform.New(80, 24),
	}

	if s.User() == nil {
		m.currentView = ViewLogin
	} else {
		m.currentView = viewFor(s.CurrentView())
	}
	return m
}

// viewFor maps the persisted view name to a view state.
func viewFor(name string) ViewState {
	switch name {
	case model.ViewToday:
		return ViewToday
	case model.ViewCalendar:
		return ViewCalendar
	default:
		return ViewCategories
	}
}

// Init starts the sign-in form when nobody is signed in.
func (m Model) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		return m.loginView.StartSignIn()
	}
	return nil
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.loginView.SetSize(contentWidth, contentHeight)
		m.categoryView.SetSize(contentWidth, contentHeight)
		m.todayView.SetSize(contentWidth, contentHeight)
		m.calendarView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.promptView.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case login.SignInMsg:
		return m.finishAuth(func() error {
			_, err := m.session.SignIn(msg.Email, msg.Password)
			return err
		}, msg.Email)

	case login.SignUpMsg:
		return m.finishAuth(func() error {
			_, err := m.session.SignUp(msg.Name, msg.Email, msg.Password)
			return err
		}, msg.Email)

	case prompt.SubmittedMsg:
		return m.applyPrompt(msg)

	case prompt.CancelMsg:
		m.pendingDueDate = ""
		m.currentView = m.previousView
		return m, nil

	case categoryform.SubmittedMsg:
		if _, err := m.session.CreateCategory(msg.Name, msg.Color); err != nil {
			m.statusMessage = statusForError(err)
			return m, m.formView.Start()
		}
		m.statusMessage = ""
		m.currentView = m.previousView
		m.refreshViews()
		return m, nil

	case categoryform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if handled, next, cmd := m.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	return m.updateActiveView(msg)
}

// finishAuth runs the sign-in or sign-up, remembers the user when
// configured, and moves to the main view.
func (m Model) finishAuth(auth func() error, email string) (tea.Model, tea.Cmd) {
	if err := auth(); err != nil {
		m.statusMessage = statusForError(err)
		return m, m.loginView.StartSignIn()
	}
	m.statusMessage = ""
	if m.config.RememberUser {
		_ = credential.RememberUser(email)
	}
	m.currentView = viewFor(m.session.CurrentView())
	m.refreshViews()
	return m, nil
}

// handleGlobalKey processes keys that work across the main views.
// Returns handled=false when the key should fall through to the active
// view, including everything while a form or prompt has focus.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m, tea.Quit
	}

	// Text-entry views own the keyboard.
	switch m.currentView {
	case ViewLogin, ViewPrompt, ViewCategoryForm:
		return false, m, nil
	}

	switch msg.String() {
	case "q":
		return true, m, tea.Quit

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
		} else {
			m.previousView = m.currentView
			m.currentView = ViewHelp
		}
		return true, m, nil

	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}

	case "1":
		m.switchView(ViewCategories, model.ViewCategories)
		return true, m, nil

	case "2":
		m.switchView(ViewToday, model.ViewToday)
		return true, m, nil

	case "3":
		m.switchView(ViewCalendar, model.ViewCalendar)
		return true, m, nil

	case "N":
		m.previousView = m.currentView
		m.currentView = ViewCategoryForm
		return true, m, m.formView.Start()

	case "n":
		return m.startNewTask()

	case "e":
		if id, ok := m.selectedTaskID(); ok {
			task := m.session.Task(id)
			if task == nil {
				return true, m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewPrompt
			return true, m, m.promptView.Start(
				prompt.KindEditTitle, id, "Edit task", "title", task.Title)
		}
		return true, m, nil

	case "u":
		return m.startDatePrompt(prompt.KindDueDate, "Due date")

	case "s":
		return m.startDatePrompt(prompt.KindStartBy, "Start by")

	case "t":
		if id, ok := m.selectedTaskID(); ok {
			task := m.session.Task(id)
			if task == nil {
				return true, m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewPrompt
			initial := ""
			if task.EstimatedHours > 0 {
				initial = fmt.Sprintf("%g", task.EstimatedHours)
			}
			return true, m, m.promptView.Start(
				prompt.KindEstimate, id, "Time estimate", "hours", initial)
		}
		return true, m, nil

	case "p":
		if id, ok := m.selectedTaskID(); ok {
			m.session.CyclePriorityTag(id)
			m.refreshViews()
		}
		return true, m, nil

	case "x":
		if id, ok := m.selectedTaskID(); ok {
			m.session.ToggleComplete(id)
			m.refreshViews()
		}
		return true, m, nil

	case "d":
		return m.deleteSelected()

	case "ctrl+o":
		m.session.SignOut()
		_ = credential.ForgetUser()
		m.statusMessage = ""
		m.currentView = ViewLogin
		m.refreshViews()
		return true, m, m.loginView.StartSignIn()
	}

	return false, m, nil
}

// startNewTask opens the quick-add prompt. In the category browser the
// task lands in the selected category; in the calendar it lands in the
// first category with the cursor's date as due date.
func (m Model) startNewTask() (bool, tea.Model, tea.Cmd) {
	var categoryID string

	switch m.currentView {
	case ViewCategories:
		id, ok := m.categoryView.SelectedCategoryID()
		if !ok {
			m.statusMessage = "Create a category first (N)."
			return true, m, nil
		}
		categoryID = id

	case ViewCalendar:
		cats := m.session.Categories()
		if len(cats) == 0 {
			m.statusMessage = "Create a category first (N)."
			return true, m, nil
		}
		categoryID = cats[0].ID
		if date, ok := m.calendarView.CursorDate(); ok {
			m.pendingDueDate = model.FormatDate(date)
		}

	default:
		m.statusMessage = "Switch to categories (1) to add a task."
		return true, m, nil
	}

	m.previousView = m.currentView
	m.currentView = ViewPrompt
	return true, m, m.promptView.Start(
		prompt.KindNewTask, categoryID, "New task", "what needs doing?", "")
}

// startDatePrompt opens a date prompt for the selected task.
func (m Model) startDatePrompt(kind prompt.Kind, title string) (bool, tea.Model, tea.Cmd) {
	id, ok := m.selectedTaskID()
	if !ok {
		return true, m, nil
	}
	task := m.session.Task(id)
	if task == nil {
		return true, m, nil
	}

	initial := ""
	if kind == prompt.KindDueDate && task.DueDate != nil {
		initial = model.FormatDate(*task.DueDate)
	}
	if kind == prompt.KindStartBy && task.StartBy != nil {
		initial = model.FormatDate(*task.StartBy)
	}

	m.previousView = m.currentView
	m.currentView = ViewPrompt
	return true, m, m.promptView.Start(kind, id, title, "YYYY-MM-DD, empty clears", initial)
}

// deleteSelected removes the task under the cursor or, on a category
// header, the category and everything in it.
func (m Model) deleteSelected() (bool, tea.Model, tea.Cmd) {
	if m.currentView == ViewCategories && m.categoryView.OnCategoryHeader() {
		if id, ok := m.categoryView.SelectedCategoryID(); ok {
			m.session.DeleteCategory(id)
			m.refreshViews()
		}
		return true, m, nil
	}
	if id, ok := m.selectedTaskID(); ok {
		m.session.DeleteTask(id)
		m.refreshViews()
	}
	return true, m, nil
}

// applyPrompt feeds a submitted prompt value into the session.
func (m Model) applyPrompt(msg prompt.SubmittedMsg) (tea.Model, tea.Cmd) {
	var err error

	switch msg.Kind {
	case prompt.KindNewTask:
		var task *model.Task
		task, err = m.session.CreateTask(msg.TargetID, msg.Value)
		if err == nil && m.pendingDueDate != "" {
			_, err = m.session.SetDueDate(task.ID, m.pendingDueDate)
		}
		m.pendingDueDate = ""
	case prompt.KindEditTitle:
		_, err = m.session.EditTaskTitle(msg.TargetID, msg.Value)
	case prompt.KindDueDate:
		_, err = m.session.SetDueDate(msg.TargetID, msg.Value)
	case prompt.KindStartBy:
		_, err = m.session.SetStartBy(msg.TargetID, msg.Value)
	case prompt.KindEstimate:
		_, err = m.session.SetEstimate(msg.TargetID, msg.Value)
	}

	if err != nil {
		m.statusMessage = statusForError(err)
		return m, nil
	}

	m.statusMessage = ""
	m.currentView = m.previousView
	m.refreshViews()
	return m, nil
}

// statusForError maps session errors to status bar text.
func statusForError(err error) string {
	switch {
	case errors.Is(err, session.ErrInvalidDate):
		return "Dates must look like YYYY-MM-DD."
	case errors.Is(err, session.ErrInvalidEstimate):
		return "Estimates must be a number of hours."
	case errors.Is(err, session.ErrEmptyTitle):
		return "Task titles cannot be empty."
	case errors.Is(err, session.ErrEmptyName):
		return "Category names cannot be empty."
	case errors.Is(err, session.ErrInvalidCredential):
		return "Email and password are required."
	default:
		return err.Error()
	}
}

// switchView changes the main view and records it on the session.
func (m *Model) switchView(view ViewState, name string) {
	m.currentView = view
	m.session.SetCurrentView(name)
	m.refreshViews()
}

// refreshViews rebuilds every projection after a session mutation.
func (m *Model) refreshViews() {
	m.categoryView.Refresh()
	m.todayView.Refresh()
	m.calendarView.Refresh()
}

// selectedTaskID returns the task under the active view's cursor.
func (m Model) selectedTaskID() (string, bool) {
	switch m.currentView {
	case ViewCategories:
		return m.categoryView.SelectedTaskID()
	case ViewToday:
		return m.todayView.SelectedTaskID()
	case ViewCalendar:
		return m.calendarView.SelectedTaskID()
	}
	return "", false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewCategories:
		m.categoryView, cmd = m.categoryView.Update(msg)
	case ViewToday:
		m.todayView, cmd = m.todayView.Update(msg)
	case ViewCalendar:
		m.calendarView, cmd = m.calendarView.Update(msg)
		m.refreshAfterCalendar()
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewPrompt:
		m.promptView, cmd = m.promptView.Update(msg)
	case ViewCategoryForm:
		m.formView, cmd = m.formView.Update(msg)
	}

	return m, cmd
}

// refreshAfterCalendar keeps the day panel in sync after the calendar
// view changes the selected date.
func (m *Model) refreshAfterCalendar() {
	m.calendarView.Refresh()
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	right := ""
	if user := m.session.User(); user != nil {
		right = user.Email
	}

	header := m.layout.RenderHeader("Pastel Priority", right)
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewCategories:
		return m.categoryView.View()
	case ViewToday:
		return m.todayView.View()
	case ViewCalendar:
		return m.calendarView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewPrompt:
		return m.promptView.View()
	case ViewCategoryForm:
		return m.formView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMessage != "" {
		return m.statusMessage
	}

	switch m.currentView {
	case ViewLogin:
		return "tab switch sign-in/sign-up | enter submit | ctrl+c quit"
	case ViewHelp:
		return "? close help | esc back"
	case ViewPrompt, ViewCategoryForm:
		return "enter submit | esc cancel"
	case ViewCalendar:
		if m.calendarView.DayPanelOpen() {
			return "j/k move | x toggle | d delete | esc close day"
		}
		return "h/j/k/l move | [ ] month | enter day | n new | 1/2/3 views | ? help"
	case ViewToday:
		return "j/k move | x toggle | e edit | u due | s start | t hours | p priority | ? help"
	default:
		return "j/k move | n task | N category | x toggle | d delete | 1/2/3 views | ? help"
	}
}
