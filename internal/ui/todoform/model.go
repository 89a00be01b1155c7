package todoform

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/whop-starter/internal/model"
	"github.com/nhle/whop-starter/internal/theme"
)

// SubmittedMsg is dispatched when the form completes. ID is empty when a
// new todo is being created.
type SubmittedMsg struct {
	ID   string
	Text string
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	text string
}

// Model is the Bubble Tea model for the todo create/edit form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	editID string
	width  int
	height int
}

// New creates a todo form model.
func New(width, height int) Model {
	return Model{fb: &formBindings{}, width: width, height: height}
}

// StartCreate initializes the form for a new todo.
func (m *Model) StartCreate() tea.Cmd {
	m.editID = ""
	m.fb.text = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing todo's text.
func (m *Model) StartEdit(todo model.Todo) tea.Cmd {
	m.editID = todo.ID
	m.fb.text = todo.Text
	m.form = m.buildForm()
	return m.form.Init()
}

// Editing reports whether the form edits an existing todo.
func (m Model) Editing() bool {
	return m.editID != ""
}

// Update handles messages for the todo form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		submitted := SubmittedMsg{ID: m.editID, Text: strings.TrimSpace(m.fb.text)}
		m.form = nil
		return m, func() tea.Msg { return submitted }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the todo form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Todo"
	if m.Editing() {
		titleText = "Edit Todo"
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render(titleText)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(title + "\n" + m.form.View())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Text").
				Placeholder("What needs to be done?").
				Value(&m.fb.text).
				Validate(validateText),
		),
	).WithWidth(m.formWidth()).WithShowHelp(true)
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func validateText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("text is required")
	}
	return nil
}
