package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kiln-lang/kiln/internal/ui/style"
)

// View renders the UI.
func (m *Model) View() string {
	if m.Op == "" {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render(strings.ToUpper(m.Op)) + "\n\n")

	if len(m.Steps) == 0 {
		s.WriteString(detailStyle.Render("No packages to resolve") + "\n")
		return listStyle.Render(s.String())
	}

	for _, step := range m.Steps {
		s.WriteString(renderStepRow(step) + "\n")
	}

	return listStyle.Render(s.String())
}

func renderStepRow(step *StepNode) string {
	line := stepStyle(step).Render(fmt.Sprintf("%s %s", stepIcon(step), step.Name))

	switch step.Status {
	case StatusDone:
		line += " " + detailStyle.Render(step.Duration.Round(time.Millisecond).String())
	case StatusError:
		if step.Err != nil {
			line += " " + detailStyle.Render(step.Err.Error())
		}
	}

	return line
}

func stepIcon(step *StepNode) string {
	switch step.Status {
	case StatusRunning:
		return style.Dot
	case StatusDone:
		return style.Check
	case StatusError:
		return style.Cross
	default: // Pending
		return style.Circle
	}
}

func stepStyle(step *StepNode) lipgloss.Style {
	switch step.Status {
	case StatusRunning:
		return stepRunningStyle
	case StatusDone:
		return stepDoneStyle
	case StatusError:
		return stepErrorStyle
	default: // Pending
		return stepPendingStyle
	}
}
