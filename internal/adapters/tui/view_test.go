package tui_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/zerr"

	"github.com/kiln-lang/kiln/internal/adapters/tui"
)

func TestView_Initialization(t *testing.T) {
	m := &tui.Model{}
	assert.Contains(t, m.View(), "Initializing...")
}

func TestView_StepList(t *testing.T) {
	steps := []*tui.StepNode{
		{Name: "github.com/kiln-lang/http", Status: tui.StatusRunning},
		{Name: "github.com/kiln-lang/json", Status: tui.StatusDone, Duration: 120 * time.Millisecond},
		{Name: "../vendor/utils", Status: tui.StatusError, Err: zerr.New("checksum mismatch")},
		{Name: "github.com/kiln-lang/log", Status: tui.StatusPending},
	}

	m := &tui.Model{Op: "sync", Steps: steps}

	output := m.View()

	assert.Contains(t, output, "SYNC")
	assert.Contains(t, output, "github.com/kiln-lang/http")
	assert.Contains(t, output, "github.com/kiln-lang/json")
	assert.Contains(t, output, "../vendor/utils")
	assert.Contains(t, output, "github.com/kiln-lang/log")

	// Icons; lipgloss may add escape codes, so distinct characters are
	// better targets than whole lines.
	assert.Contains(t, output, "●") // Running
	assert.Contains(t, output, "✓") // Done
	assert.Contains(t, output, "✗") // Error
	assert.Contains(t, output, "○") // Pending

	assert.Contains(t, output, "120ms")
	assert.Contains(t, output, "checksum mismatch")
}

func TestView_EmptyStepList(t *testing.T) {
	m := &tui.Model{Op: "get", Steps: []*tui.StepNode{}}

	output := m.View()

	assert.Contains(t, output, "GET")
	assert.Contains(t, output, "No packages to resolve")
}
