package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kiln-lang/kiln/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Ember).
			Foreground(style.White)

	listStyle = lipgloss.NewStyle().
			Padding(0, 1)

	stepPendingStyle = lipgloss.NewStyle().
				Foreground(style.Slate)

	stepRunningStyle = lipgloss.NewStyle().
				Foreground(style.Ember).
				Bold(true)

	stepDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	stepErrorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	detailStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)
)
