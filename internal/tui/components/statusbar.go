package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/trowel/internal/tui/styles"
)

// StatusBar renders a bottom help bar with a summary on the left and
// key hints on the right.
type StatusBar struct{}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// Render returns the status bar string for the given width. Hints are
// joined with " • " and pushed to the right edge; the summary stays on
// the left.
func (s StatusBar) Render(width int, summary string, hints []string) string {
	right := strings.Join(hints, " • ")
	gap := width - lipgloss.Width(summary) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return styles.StatusBarStyle.Render(summary + strings.Repeat(" ", gap) + right)
}
