package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Main application frame
	App = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Padding(0, 1)

	// Title style for the header
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7")).
			Padding(0, 1)

	// Status style for the session line
	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595"))

	// Error style for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	// Event style for emitted events
	EventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	// Signal style for replayed signals
	SignalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#81A1C1")).
			Bold(true)

	// Pending style for signals not yet replayed
	PendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	// Cursor highlight for the most recent step
	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7"))
)
