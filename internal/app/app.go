// Package app is the terminal console over the counter and todo stores for
// a single (experience, user) scope.
package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/whop-starter/internal/keys"
	"github.com/nhle/whop-starter/internal/model"
	"github.com/nhle/whop-starter/internal/store"
	"github.com/nhle/whop-starter/internal/theme"
	"github.com/nhle/whop-starter/internal/ui"
	"github.com/nhle/whop-starter/internal/ui/todoform"
	"github.com/nhle/whop-starter/internal/ui/todolist"
)

// Store is the persistence surface the console drives.
type Store interface {
	store.CounterStore
	store.TodoStore
}

// Scope identifies whose counter and todos the console shows.
type Scope struct {
	ExperienceID string
	UserID       string
}

// CounterLabel returns the counter label used for this scope.
func (s Scope) CounterLabel() string {
	return model.ScopedCounterLabel(s.ExperienceID, s.UserID)
}

// ViewState represents the current active view in the console.
type ViewState int

const (
	ViewMain ViewState = iota
	ViewForm
	ViewHelp
)

// Model is the root Bubble Tea model.
type Model struct {
	currentView ViewState
	layout      ui.Layout
	store       Store
	scope       Scope
	keys        *keys.KeyMap
	help        help.Model
	todos       todolist.Model
	form        todoform.Model
	counter     int64
	lastErr     error
	ready       bool
}

// New creates a console model for scope backed by s.
func New(s Store, scope Scope) Model {
	return Model{
		currentView: ViewMain,
		store:       s,
		scope:       scope,
		keys:        keys.DefaultKeyMap(),
		help:        help.New(),
		todos:       todolist.New(80, 20),
		form:        todoform.New(80, 20),
	}
}

// Init loads the counter and the todo list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCounter(), m.loadTodos())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.help.Width = msg.Width
		m.todos.SetSize(msg.Width, max(m.layout.ContentHeight()-counterPanelHeight, 1))
		m.form.SetSize(msg.Width, m.layout.ContentHeight())
		return m.updateActiveView(msg)

	case counterLoadedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		m.counter = msg.value
		return m, nil

	case todosLoadedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, nil
		}
		return m, m.todos.SetTodos(msg.todos)

	case todoChangedMsg:
		if msg.err != nil {
			m.lastErr = fmt.Errorf("%s todo: %w", msg.action, msg.err)
		}
		return m, m.loadTodos()

	case todoform.SubmittedMsg:
		m.currentView = ViewMain
		if msg.ID == "" {
			return m, m.createTodo(msg.Text)
		}
		return m, m.updateTodo(msg.ID, msg.Text)

	case todoform.CancelMsg:
		m.currentView = ViewMain
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.currentView {
		case ViewMain:
			return m.handleMainKeys(msg)
		case ViewForm:
			if msg.String() == "esc" {
				m.currentView = ViewMain
				return m, nil
			}
		case ViewHelp:
			if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
				m.currentView = ViewMain
			}
			return m, nil
		}
	}

	return m.updateActiveView(msg)
}

// handleMainKeys processes keys on the counter and todo view.
func (m Model) handleMainKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.currentView = ViewHelp
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.lastErr = nil
		return m, tea.Batch(m.loadCounter(), m.loadTodos())

	case key.Matches(msg, m.keys.Increment):
		return m, m.incrementCounter()

	case key.Matches(msg, m.keys.Reset):
		return m, m.resetCounter()

	case key.Matches(msg, m.keys.Add):
		m.currentView = ViewForm
		return m, m.form.StartCreate()

	case key.Matches(msg, m.keys.Edit):
		if todo, ok := m.todos.Selected(); ok {
			m.currentView = ViewForm
			return m, m.form.StartEdit(todo)
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if todo, ok := m.todos.Selected(); ok {
			return m, m.toggleTodo(todo.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if todo, ok := m.todos.Selected(); ok {
			return m, m.removeTodo(todo.ID)
		}
		return m, nil
	}

	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewMain:
		m.todos, cmd = m.todos.Update(msg)
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	}

	return m, cmd
}

const counterPanelHeight = 4

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(
		"whopstarter",
		fmt.Sprintf("%s · %s", m.scope.ExperienceID, m.scope.UserID),
	)
	statusBar := m.layout.RenderStatusBar(m.statusText(), "")

	return m.layout.Render(header, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewForm:
		return m.form.View()
	case ViewHelp:
		m.help.ShowAll = true
		return theme.PanelStyle.Render(m.help.View(m.keys))
	default:
		counter := theme.PanelStyle.Render(fmt.Sprintf(
			"%s  %s",
			theme.HelpStyle.Render(m.scope.CounterLabel()),
			theme.CounterValueStyle.Render(fmt.Sprintf("%d", m.counter)),
		))
		return lipgloss.JoinVertical(lipgloss.Left, counter, m.todos.View())
	}
}

// statusText shows the last error, or key hints when there is none.
func (m Model) statusText() string {
	if m.lastErr != nil {
		return theme.ErrorStyle.Render(m.lastErr.Error())
	}
	switch m.currentView {
	case ViewForm:
		return "enter submit | esc cancel"
	case ViewHelp:
		return "? close help | esc back"
	default:
		m.help.ShowAll = false
		return m.help.View(m.keys)
	}
}
