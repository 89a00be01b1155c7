package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// counterLoadedMsg carries the scope's counter value after a read or write.
type counterLoadedMsg struct {
	value int64
	err   error
}

func (m Model) loadCounter() tea.Cmd {
	s, label := m.store, m.scope.CounterLabel()
	return func() tea.Msg {
		value, err := s.GetCounter(context.Background(), label)
		return counterLoadedMsg{value: value, err: err}
	}
}

func (m Model) incrementCounter() tea.Cmd {
	s, label := m.store, m.scope.CounterLabel()
	return func() tea.Msg {
		value, err := s.IncrementCounter(context.Background(), label)
		return counterLoadedMsg{value: value, err: err}
	}
}

func (m Model) resetCounter() tea.Cmd {
	s, label := m.store, m.scope.CounterLabel()
	return func() tea.Msg {
		value, err := s.ResetCounter(context.Background(), label)
		return counterLoadedMsg{value: value, err: err}
	}
}
