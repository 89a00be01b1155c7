package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/whop-starter/internal/model"
)

// todosLoadedMsg carries the scope's todos, newest first.
type todosLoadedMsg struct {
	todos []model.Todo
	err   error
}

// todoChangedMsg is sent after any todo write; the list reloads on receipt.
type todoChangedMsg struct {
	action string
	err    error
}

func (m Model) loadTodos() tea.Cmd {
	s, scope := m.store, m.scope
	return func() tea.Msg {
		todos, err := s.ListTodos(context.Background(), scope.ExperienceID, scope.UserID)
		return todosLoadedMsg{todos: todos, err: err}
	}
}

func (m Model) createTodo(text string) tea.Cmd {
	s, scope := m.store, m.scope
	return func() tea.Msg {
		_, err := s.CreateTodo(context.Background(), text, scope.ExperienceID, scope.UserID)
		return todoChangedMsg{action: "creating", err: err}
	}
}

func (m Model) updateTodo(id, text string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_, err := s.UpdateTodoText(context.Background(), id, text)
		return todoChangedMsg{action: "updating", err: err}
	}
}

func (m Model) toggleTodo(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_, err := s.ToggleTodo(context.Background(), id)
		return todoChangedMsg{action: "toggling", err: err}
	}
}

func (m Model) removeTodo(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		_, err := s.RemoveTodo(context.Background(), id)
		return todoChangedMsg{action: "removing", err: err}
	}
}
