package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/whop-starter/internal/theme"
)

// Layout tracks the terminal size and splits it into a one-line header,
// the content area and a one-line status bar.
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a Layout for the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentHeight returns the rows left between header and status bar.
func (l Layout) ContentHeight() int {
	return max(l.Height-2, 0)
}

// RenderHeader renders the title on the left and info on the right.
func (l Layout) RenderHeader(title, info string) string {
	return l.bar(theme.HeaderStyle, title, info)
}

// RenderStatusBar renders the bottom bar.
func (l Layout) RenderStatusBar(left, right string) string {
	return l.bar(theme.StatusBarStyle, left, right)
}

// Render stacks header, content and status bar.
func (l Layout) Render(header, content, statusBar string) string {
	content = lipgloss.NewStyle().Height(l.ContentHeight()).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// bar fills the full width with style, placing left and right at the edges.
func (l Layout) bar(style lipgloss.Style, left, right string) string {
	leftRendered := style.Render(left)
	rightRendered := ""
	if right != "" {
		rightRendered = style.Render(right)
	}

	gap := max(l.Width-lipgloss.Width(leftRendered)-lipgloss.Width(rightRendered), 0)
	filler := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, filler, rightRendered)
}
