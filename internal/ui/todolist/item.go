package todolist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/whop-starter/internal/model"
	"github.com/nhle/whop-starter/internal/theme"
)

// TodoItem wraps a model.Todo so it can be used in a bubbles/list.
type TodoItem struct {
	Todo model.Todo
}

// FilterValue returns the string used for fuzzy filtering.
func (i TodoItem) FilterValue() string { return i.Todo.Text }

// ItemDelegate renders one todo per line.
type ItemDelegate struct {
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single todo line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TodoItem)
	if !ok {
		return
	}
	todo := ti.Todo

	prefix := "○"
	text := todo.Text
	stamp := relativeTime(todo.CreatedAt, d.now())
	if todo.Completed {
		prefix = "✓"
		text = theme.DimmedStyle.Render(text)
		if todo.CompletedAt != nil {
			stamp = "done " + relativeTime(*todo.CompletedAt, d.now())
		}
	}

	line := fmt.Sprintf("%s %s  %s", prefix, text, theme.HelpStyle.Render(stamp))

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// relativeTime returns a short human-friendly age of t as seen at now.
func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return fmt.Sprintf("%dw ago", int(d.Hours()/24/7))
	}
}
