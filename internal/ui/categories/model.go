package categories

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ptran/pastel-priority/internal/keys"
	"github.com/ptran/pastel-priority/internal/model"
	"github.com/ptran/pastel-priority/internal/session"
	"github.com/ptran/pastel-priority/internal/theme"
)

// rowKind distinguishes navigable rows in the category browser.
type rowKind int

const (
	rowCategory rowKind = iota
	rowTask
)

// row is one navigable line: a category header or one of its tasks.
type row struct {
	kind       rowKind
	categoryID string
	taskID     string
}

// Model is the category browser: every category with its active and
// completed tasks, in creation order.
type Model struct {
	session *session.Session
	keys    *keys.KeyMap
	rows    []row
	cursor  int
	width   int
	height  int
}

// New creates a new category browser over the session.
func New(s *session.Session, k *keys.KeyMap, width, height int) Model {
	m := Model{
		session: s,
		keys:    k,
		width:   width,
		height:  height,
	}
	m.Refresh()
	return m
}

// Refresh rebuilds the row index from the session. Call after any
// mutation so the cursor lands on live data.
func (m *Model) Refresh() {
	m.rows = m.rows[:0]
	for _, c := range m.session.Categories() {
		m.rows = append(m.rows, row{kind: rowCategory, categoryID: c.ID})
		for _, t := range m.session.TasksInCategory(c.ID, model.StatusActive) {
			m.rows = append(m.rows, row{kind: rowTask, categoryID: c.ID, taskID: t.ID})
		}
		for _, t := range m.session.TasksInCategory(c.ID, model.StatusCompleted) {
			m.rows = append(m.rows, row{kind: rowTask, categoryID: c.ID, taskID: t.ID})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SelectedTaskID returns the task under the cursor, if any.
func (m Model) SelectedTaskID() (string, bool) {
	if m.cursor < len(m.rows) && m.rows[m.cursor].kind == rowTask {
		return m.rows[m.cursor].taskID, true
	}
	return "", false
}

// SelectedCategoryID returns the category under or containing the cursor.
func (m Model) SelectedCategoryID() (string, bool) {
	if m.cursor < len(m.rows) {
		return m.rows[m.cursor].categoryID, true
	}
	return "", false
}

// OnCategoryHeader reports whether the cursor sits on a category row.
func (m Model) OnCategoryHeader() bool {
	return m.cursor < len(m.rows) && m.rows[m.cursor].kind == rowCategory
}

// Update handles navigation keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keyMatches(key, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case keyMatches(key, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

func keyMatches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}

// View renders the category browser.
func (m Model) View() string {
	if len(m.rows) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No categories yet.\n\nPress N to create one.")
	}

	var lines []string
	for i, r := range m.rows {
		lines = append(lines, m.renderRow(r, i == m.cursor))
	}

	return lipgloss.NewStyle().
		MaxHeight(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, m.visible(lines)...))
}

// visible windows the lines around the cursor so long lists scroll.
func (m Model) visible(lines []string) []string {
	if len(lines) <= m.height {
		return lines
	}
	start := m.cursor - m.height/2
	if start < 0 {
		start = 0
	}
	if start+m.height > len(lines) {
		start = len(lines) - m.height
	}
	return lines[start : start+m.height]
}

func (m Model) renderRow(r row, selected bool) string {
	var line string

	switch r.kind {
	case rowCategory:
		category := m.session.Category(r.categoryID)
		if category == nil {
			return ""
		}
		active := len(m.session.TasksInCategory(category.ID, model.StatusActive))
		done := len(m.session.TasksInCategory(category.ID, model.StatusCompleted))
		line = fmt.Sprintf(
			"%s  %s",
			theme.CategoryBadgeStyle(category.Color).Render("■ "+category.Name),
			theme.HelpStyle.Render(fmt.Sprintf("%d active, %d done", active, done)),
		)

	case rowTask:
		task := m.session.Task(r.taskID)
		if task == nil {
			return ""
		}
		line = renderTaskLine(*task, m.session)
	}

	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// renderTaskLine draws one task with its urgency glyph, priority tag,
// and date/effort metadata.
func renderTaskLine(task model.Task, s *session.Session) string {
	bucket := s.Classify(task)
	glyph := theme.BucketStyle(bucket).Render(theme.BucketGlyph(bucket))

	check := "[ ]"
	if !task.IsActive() {
		check = "[x]"
	}

	tag := theme.PriorityTagStyle(task.Priority).Render(task.Priority)

	meta := ""
	if task.DueDate != nil {
		meta += theme.HelpStyle.Render("  due " + model.FormatDate(*task.DueDate))
	}
	if task.StartBy != nil {
		meta += theme.HelpStyle.Render("  start " + model.FormatDate(*task.StartBy))
	}
	if task.EstimatedHours > 0 {
		meta += theme.HelpStyle.Render(fmt.Sprintf("  %.1fh", task.EstimatedHours))
	}

	title := task.Title
	if !task.IsActive() {
		title = theme.DimmedStyle.Render(title)
	}

	return fmt.Sprintf("%s %s %s %s%s", check, glyph, tag, title, meta)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
