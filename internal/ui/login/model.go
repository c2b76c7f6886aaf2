package login

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ptran/pastel-priority/internal/theme"
)

// SignInMsg is dispatched when the user submits the sign-in form.
type SignInMsg struct {
	Email    string
	Password string
}

// SignUpMsg is dispatched when the user submits the sign-up form.
type SignUpMsg struct {
	Name     string
	Email    string
	Password string
}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name     string
	email    string
	password string
	signup   bool
}

// Model is the Bubble Tea model for the simulated sign-in screen.
// Any non-empty credentials are accepted.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a new login model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartSignIn initializes the email/password form.
func (m *Model) StartSignIn() tea.Cmd {
	m.fb.signup = false
	m.fb.password = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartSignUp initializes the name/email/password form.
func (m *Model) StartSignUp() tea.Cmd {
	m.fb.signup = true
	m.fb.password = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "tab" {
		// Flip between sign-in and sign-up.
		if m.fb.signup {
			return m, m.StartSignIn()
		}
		return m, m.StartSignUp()
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		// Re-arm the form; there is nowhere to go back to.
		return m, m.restart()
	}

	return m, cmd
}

func (m *Model) restart() tea.Cmd {
	if m.fb.signup {
		return m.StartSignUp()
	}
	return m.StartSignIn()
}

func (m Model) handleSubmit() tea.Cmd {
	fb := *m.fb
	if fb.signup {
		return func() tea.Msg {
			return SignUpMsg{Name: fb.name, Email: fb.email, Password: fb.password}
		}
	}
	return func() tea.Msg {
		return SignInMsg{Email: fb.email, Password: fb.password}
	}
}

// View renders the login form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Sign In"
	hint := "tab to create an account"
	if m.fb.signup {
		titleText = "Create Account"
		hint = "tab to sign in instead"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" +
		m.form.View() + "\n" +
		theme.HelpStyle.Render(hint)

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
	var fields []huh.Field

	if m.fb.signup {
		fields = append(fields,
			huh.NewInput().
				Title("Name").
				Placeholder("How should we greet you?").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
		)
	}

	fields = append(fields,
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&m.fb.email).
			Validate(validateRequired("Email")),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&m.fb.password).
			Validate(validateRequired("Password")),
	)

	return huh.NewForm(
		huh.NewGroup(fields...),
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
	h := m.height - 6
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
