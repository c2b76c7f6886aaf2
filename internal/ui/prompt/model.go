// Package prompt is the single-field input overlay used for quick-add
// and the per-field task editors (title, due date, start date,
// estimate), mirroring the one-question-at-a-time editing flow.
package prompt

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ptran/pastel-priority/internal/theme"
)

// Kind identifies which session operation a submitted prompt feeds.
type Kind int

const (
	KindNewTask Kind = iota
	KindEditTitle
	KindDueDate
	KindStartBy
	KindEstimate
)

// SubmittedMsg carries the entered value back to the application.
// TargetID is the task id being edited, or the category id for
// KindNewTask.
type SubmittedMsg struct {
	Kind     Kind
	TargetID string
	Value    string
}

// CancelMsg is dispatched when the user dismisses the prompt.
type CancelMsg struct{}

// formBindings keeps the input value on the heap across model copies.
type formBindings struct {
	value string
}

// Model is the Bubble Tea model for a one-field prompt.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	kind     Kind
	targetID string
	title    string
	width    int
	height   int
}

// New creates an idle prompt model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start arms the prompt for one question. initial pre-fills the field
// so clearing it submits an empty value (which clears dates).
func (m *Model) Start(kind Kind, targetID, title, placeholder, initial string) tea.Cmd {
	m.kind = kind
	m.targetID = targetID
	m.title = title
	m.fb.value = initial

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(&m.fb.value),
		),
	).WithWidth(m.formWidth()).WithHeight(8)

	return m.form.Init()
}

// Update handles messages for the prompt.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		kind, targetID, value := m.kind, m.targetID, m.fb.value
		return m, func() tea.Msg {
			return SubmittedMsg{Kind: kind, TargetID: targetID, Value: value}
		}
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the prompt.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(m.form.View() + "\n" + theme.HelpStyle.Render("enter submit | esc cancel"))
}

// SetSize updates the prompt dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}
