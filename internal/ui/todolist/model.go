package todolist

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/whop-starter/internal/model"
	"github.com/nhle/whop-starter/internal/theme"
)

// Model is the todo list panel.
type Model struct {
	list   list.Model
	width  int
	height int
}

// New creates an empty todo list.
func New(width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{now: time.Now}, width, height)
	l.Title = "Todos"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("todo", "todos")
	l.Styles.Title = theme.HeaderStyle

	return Model{list: l, width: width, height: height}
}

// SetTodos replaces the list contents, keeping the cursor in range.
func (m *Model) SetTodos(todos []model.Todo) tea.Cmd {
	items := make([]list.Item, len(todos))
	for i, todo := range todos {
		items[i] = TodoItem{Todo: todo}
	}
	return m.list.SetItems(items)
}

// Selected returns the todo under the cursor.
func (m Model) Selected() (model.Todo, bool) {
	item, ok := m.list.SelectedItem().(TodoItem)
	if !ok {
		return model.Todo{}, false
	}
	return item.Todo, true
}

// Len returns the number of todos shown.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Update forwards navigation keys to the list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list, or a hint when it is empty.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No todos yet.\n\nPress a to add one.")
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
