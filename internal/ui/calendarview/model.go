package calendarview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ptran/pastel-priority/internal/agenda"
	"github.com/ptran/pastel-priority/internal/keys"
	"github.com/ptran/pastel-priority/internal/model"
	"github.com/ptran/pastel-priority/internal/session"
	"github.com/ptran/pastel-priority/internal/theme"
)

var weekdayHeader = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Model is the month calendar: a 7-column grid of day cells with task
// previews, plus a day panel listing everything due on the selected
// date.
type Model struct {
	session    *session.Session
	keys       *keys.KeyMap
	previewCap int

	grid       agenda.MonthGrid
	cursor     int // index into grid.Cells
	dayTaskIDs []string
	dayCursor  int

	width  int
	height int
}

// New creates the calendar view over the session.
func New(s *session.Session, k *keys.KeyMap, previewCap, width, height int) Model {
	m := Model{
		session:    s,
		keys:       k,
		previewCap: previewCap,
		width:      width,
		height:     height,
	}
	m.Refresh()
	return m
}

// Refresh rebuilds the grid for the session's current month and, when a
// date is selected, the day panel task list.
func (m *Model) Refresh() {
	month := m.session.CurrentMonth()
	m.grid = agenda.Month(m.session.Tasks(), month.Year(), month.Month(), m.session.Today(), m.previewCap)

	if m.cursor >= len(m.grid.Cells) || !m.grid.Cells[m.cursor].InMonth {
		m.cursor = m.firstInMonth()
	}

	m.dayTaskIDs = m.dayTaskIDs[:0]
	if date := m.session.SelectedDate(); date != nil {
		m.dayTaskIDs = agenda.TasksOn(m.session.Tasks(), *date)
	}
	if m.dayCursor >= len(m.dayTaskIDs) {
		m.dayCursor = len(m.dayTaskIDs) - 1
	}
	if m.dayCursor < 0 {
		m.dayCursor = 0
	}
}

func (m Model) firstInMonth() int {
	for i, c := range m.grid.Cells {
		if c.InMonth {
			return i
		}
	}
	return 0
}

// SelectedTaskID returns the day-panel task under the cursor, if the
// panel is open and non-empty.
func (m Model) SelectedTaskID() (string, bool) {
	if m.session.SelectedDate() != nil && m.dayCursor < len(m.dayTaskIDs) {
		return m.dayTaskIDs[m.dayCursor], true
	}
	return "", false
}

// DayPanelOpen reports whether a date is selected.
func (m Model) DayPanelOpen() bool { return m.session.SelectedDate() != nil }

// Update handles grid navigation, month paging, and the day panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.DayPanelOpen() {
		switch {
		case key.Matches(msgKey, m.keys.Down):
			if m.dayCursor < len(m.dayTaskIDs)-1 {
				m.dayCursor++
			}
		case key.Matches(msgKey, m.keys.Up):
			if m.dayCursor > 0 {
				m.dayCursor--
			}
		case key.Matches(msgKey, m.keys.Back):
			m.session.ClearSelectedDate()
			m.dayCursor = 0
		}
		return m, nil
	}

	switch {
	case key.Matches(msgKey, m.keys.Left):
		m.move(-1)
	case key.Matches(msgKey, m.keys.Right):
		m.move(1)
	case key.Matches(msgKey, m.keys.Up):
		m.move(-7)
	case key.Matches(msgKey, m.keys.Down):
		m.move(7)
	case key.Matches(msgKey, m.keys.PrevMonth):
		m.session.PrevMonth()
		m.cursor = 0
		m.Refresh()
	case key.Matches(msgKey, m.keys.NextMonth):
		m.session.NextMonth()
		m.cursor = 0
		m.Refresh()
	case key.Matches(msgKey, m.keys.Select):
		cell := m.grid.Cells[m.cursor]
		if cell.InMonth {
			m.session.SelectDate(cell.Date)
			m.dayCursor = 0
			m.Refresh()
		}
	}
	return m, nil
}

// move shifts the cursor by delta, staying on in-month cells.
func (m *Model) move(delta int) {
	next := m.cursor + delta
	if next >= 0 && next < len(m.grid.Cells) && m.grid.Cells[next].InMonth {
		m.cursor = next
	}
}

// View renders the weekday header, the grid, and the day panel when a
// date is selected.
func (m Model) View() string {
	cellWidth := m.width / 7
	if cellWidth < 8 {
		cellWidth = 8
	}

	sections := []string{
		theme.HeaderStyle.Render(fmt.Sprintf("%s %d", m.grid.Month, m.grid.Year)),
		m.renderHeader(cellWidth),
	}

	for row := 0; row < len(m.grid.Cells)/7; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			i := row*7 + col
			cells = append(cells, m.renderCell(m.grid.Cells[i], i == m.cursor, cellWidth))
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	if m.DayPanelOpen() {
		sections = append(sections, m.renderDayPanel())
	}

	return lipgloss.NewStyle().
		MaxHeight(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHeader(cellWidth int) string {
	var cols []string
	for _, d := range weekdayHeader {
		cols = append(cols, theme.HelpStyle.Width(cellWidth).Align(lipgloss.Center).Render(d))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) renderCell(cell agenda.DayCell, selected bool, cellWidth int) string {
	if !cell.InMonth {
		return theme.OtherMonthStyle.Width(cellWidth).Render(fmt.Sprintf("%2d", cell.Day))
	}

	var b strings.Builder
	day := fmt.Sprintf("%2d", cell.Day)
	if cell.IsToday {
		day = theme.TodayCellStyle.Render(day)
	}
	b.WriteString(day)

	for _, id := range cell.TaskIDs {
		task := m.session.Task(id)
		if task == nil {
			continue
		}
		title := task.Title
		if len(title) > cellWidth-2 {
			title = title[:cellWidth-2]
		}
		b.WriteString("\n")
		b.WriteString(theme.CategoryBadgeStyle(m.categoryColor(task.CategoryID)).
			UnsetPadding().Render(title))
	}
	if cell.More > 0 {
		b.WriteString("\n")
		b.WriteString(theme.HelpStyle.Render(fmt.Sprintf("+%d more", cell.More)))
	}

	style := lipgloss.NewStyle().Width(cellWidth).Padding(0, 1)
	if selected {
		style = style.Background(theme.ColorSubtle)
	}
	return style.Render(b.String())
}

func (m Model) categoryColor(categoryID string) string {
	if c := m.session.Category(categoryID); c != nil {
		return c.Color
	}
	return ""
}

func (m Model) renderDayPanel() string {
	date := *m.session.SelectedDate()
	var lines []string
	lines = append(lines, theme.HeaderStyle.Render(date.Format("Monday, January 2")))

	if len(m.dayTaskIDs) == 0 {
		lines = append(lines, theme.HelpStyle.Render("No tasks due this day."))
	}
	for i, id := range m.dayTaskIDs {
		task := m.session.Task(id)
		if task == nil {
			continue
		}
		lines = append(lines, m.renderPanelTask(*task, i == m.dayCursor))
	}

	return theme.PanelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) renderPanelTask(task model.Task, selected bool) string {
	check := "[ ]"
	title := task.Title
	if !task.IsActive() {
		check = "[x]"
		title = theme.DimmedStyle.Render(title)
	}
	tag := theme.PriorityTagStyle(task.Priority).Render(task.Priority)

	line := fmt.Sprintf("%s %s %s", check, tag, title)
	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}

// CursorDate exposes the cursor's date so new tasks created from the
// calendar can default their due date.
func (m Model) CursorDate() (time.Time, bool) {
	if m.cursor < len(m.grid.Cells) && m.grid.Cells[m.cursor].InMonth {
		return m.grid.Cells[m.cursor].Date, true
	}
	return time.Time{}, false
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
