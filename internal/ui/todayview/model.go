package todayview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ptran/pastel-priority/internal/agenda"
	"github.com/ptran/pastel-priority/internal/keys"
	"github.com/ptran/pastel-priority/internal/model"
	"github.com/ptran/pastel-priority/internal/session"
	"github.com/ptran/pastel-priority/internal/theme"
)

// groupTitles maps the agenda group labels to what the screen shows.
var groupTitles = map[agenda.GroupLabel]string{
	agenda.GroupDueOrOverdue: "Due today & overdue",
	agenda.GroupFutureDue:    "Coming up",
	agenda.GroupNoDueDate:    "Someday",
}

// Model is the today view: the active tasks grouped by urgency with a
// count and hour total in the footer.
type Model struct {
	session *session.Session
	keys    *keys.KeyMap
	agenda  agenda.Agenda
	taskIDs []string
	cursor  int
	width   int
	height  int
}

// New creates the today view over the session.
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

// Refresh recomputes the agenda. Call after any task mutation.
func (m *Model) Refresh() {
	m.agenda = agenda.Today(m.session.Tasks(), m.session.Today())
	m.taskIDs = m.taskIDs[:0]
	for _, g := range m.agenda.Groups {
		m.taskIDs = append(m.taskIDs, g.TaskIDs...)
	}
	if m.cursor >= len(m.taskIDs) {
		m.cursor = len(m.taskIDs) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SelectedTaskID returns the task under the cursor, if any.
func (m Model) SelectedTaskID() (string, bool) {
	if m.cursor < len(m.taskIDs) {
		return m.taskIDs[m.cursor], true
	}
	return "", false
}

// Update handles navigation keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.taskIDs)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

// View renders the grouped agenda.
func (m Model) View() string {
	if len(m.taskIDs) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Nothing on your plate.\n\nPress n to add a task.")
	}

	var lines []string
	index := 0
	for _, g := range m.agenda.Groups {
		if len(g.TaskIDs) == 0 {
			continue
		}
		lines = append(lines,
			theme.GroupHeaderStyle(string(g.Label)).Render(groupTitles[g.Label]))
		for _, id := range g.TaskIDs {
			task := m.session.Task(id)
			if task == nil {
				continue
			}
			lines = append(lines, m.renderTask(*task, index == m.cursor))
			index++
		}
		lines = append(lines, "")
	}

	lines = append(lines, theme.HelpStyle.Render(fmt.Sprintf(
		"%d tasks · %.1f hours estimated", m.agenda.TaskCount, m.agenda.TotalHours)))

	return lipgloss.NewStyle().
		MaxHeight(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderTask(task model.Task, selected bool) string {
	bucket := m.session.Classify(task)
	glyph := theme.BucketStyle(bucket).Render(theme.BucketGlyph(bucket))
	tag := theme.PriorityTagStyle(task.Priority).Render(task.Priority)

	badge := ""
	if category := m.session.Category(task.CategoryID); category != nil {
		badge = theme.CategoryBadgeStyle(category.Color).Render(category.Name)
	}

	meta := ""
	if task.DueDate != nil {
		meta += theme.HelpStyle.Render("  due " + model.FormatDate(*task.DueDate))
	}
	if task.EstimatedHours > 0 {
		meta += theme.HelpStyle.Render(fmt.Sprintf("  %.1fh", task.EstimatedHours))
	}

	line := fmt.Sprintf("%s %s %s%s %s", glyph, tag, task.Title, meta, badge)
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
