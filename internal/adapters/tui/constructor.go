// Package tui provides a live terminal status display for resolution runs.
package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/kiln-lang/kiln/internal/ui/output"
)

// NewModel creates a TUI model with default settings.
func NewModel(w io.Writer) Model {
	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)

	return Model{
		Steps:   make([]*StepNode, 0),
		StepMap: make(map[string]*StepNode),
		SpanMap: make(map[string]*StepNode),
	}
}
