package categoryform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ptran/pastel-priority/internal/model"
	"github.com/ptran/pastel-priority/internal/theme"
)

// SubmittedMsg is dispatched when a new category is submitted.
type SubmittedMsg struct {
	Name  string
	Color string
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings keeps field values on the heap across model copies.
type formBindings struct {
	name  string
	color string
}

// Model is the Bubble Tea model for the new-category form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new category form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{color: model.ColorPink},
		width:  width,
		height: height,
	}
}

// Start initializes the form for creating a category.
func (m *Model) Start() tea.Cmd {
	m.fb.name = ""
	m.fb.color = model.ColorPink
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the category form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		name, color := m.fb.name, m.fb.color
		return m, func() tea.Msg {
			return SubmittedMsg{Name: name, Color: color}
		}
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the category form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Category") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	colorOptions := make([]huh.Option[string], len(model.PaletteColors))
	for i, c := range model.PaletteColors {
		label := theme.CategoryBadgeStyle(c).Render(c)
		colorOptions[i] = huh.NewOption(label, c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("e.g. Work, Health, Errands").
				Value(&m.fb.name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("Name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions...).
				Value(&m.fb.color),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
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

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
