package tui_test

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"github.com/kiln-lang/kiln/internal/adapters/tui"
)

func TestModel_Update(t *testing.T) {
	const (
		pkgHTTP = "github.com/kiln-lang/http"
		pkgJSON = "github.com/kiln-lang/json"
		spanID1 = "span-1"
		spanID2 = "span-2"
	)
	plannedSteps := []string{pkgHTTP, pkgJSON}

	// Helper to initialize a fresh model.
	initModel := func(_ *testing.T) *tui.Model {
		m := &tui.Model{}
		updatedModel, _ := m.Update(tui.MsgPlan{Op: "sync", Steps: plannedSteps})
		return updatedModel.(*tui.Model)
	}

	t.Run("MsgPlan", func(t *testing.T) {
		m := initModel(t)

		assert.Equal(t, "sync", m.Op)
		assert.Len(t, m.Steps, 2)
		assert.Len(t, m.StepMap, 2)
		assert.Equal(t, pkgHTTP, m.Steps[0].Name)
		assert.Equal(t, tui.StatusPending, m.Steps[0].Status)
	})

	t.Run("MsgStepStart", func(t *testing.T) {
		m := initModel(t)

		startTime := time.Now()
		m, _ = updateModel(m, tui.MsgStepStart{SpanID: spanID1, Name: pkgHTTP, StartTime: startTime})

		requireStepStatus(t, m, pkgHTTP, tui.StatusRunning)
		assert.Equal(t, m.Steps[0], m.SpanMap[spanID1], "SpanMap should map spanID")
		assert.Equal(t, startTime, m.Steps[0].StartTime)
	})

	t.Run("MsgStepStart ignores unknown package", func(t *testing.T) {
		m := initModel(t)

		m, _ = updateModel(m, tui.MsgStepStart{SpanID: spanID1, Name: "github.com/kiln-lang/unplanned"})

		assert.Empty(t, m.SpanMap)
	})

	t.Run("MsgStepComplete", func(t *testing.T) {
		m := initModel(t)
		startTime := time.Now()
		m, _ = updateModel(m, tui.MsgStepStart{SpanID: spanID1, Name: pkgHTTP, StartTime: startTime})

		// Success
		m, _ = updateModel(m, tui.MsgStepComplete{SpanID: spanID1, EndTime: startTime.Add(time.Second)})
		requireStepStatus(t, m, pkgHTTP, tui.StatusDone)
		assert.Equal(t, time.Second, m.Steps[0].Duration)

		// Error
		m, _ = updateModel(m, tui.MsgStepStart{SpanID: spanID2, Name: pkgJSON, StartTime: startTime})
		m, _ = updateModel(m, tui.MsgStepComplete{SpanID: spanID2, EndTime: startTime.Add(time.Second), Err: zerr.New("fetch failed")})
		requireStepStatus(t, m, pkgJSON, tui.StatusError)
		require.Error(t, m.Steps[1].Err)
	})

	t.Run("Quit Commands", func(t *testing.T) {
		m := initModel(t)

		// q
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		assert.Equal(t, tea.Quit(), cmd(), "q should return tea.Quit")

		// ctrl+c
		_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		assert.Equal(t, tea.Quit(), cmd(), "ctrl+c should return tea.Quit")
	})

	t.Run("Window Resizing", func(t *testing.T) {
		m := initModel(t)

		m, _ = updateModel(m, tea.WindowSizeMsg{Width: 100, Height: 50})

		assert.Equal(t, 100, m.Width)
		assert.Equal(t, 50, m.Height)
	})
}

// Helpers.

func updateModel(m *tui.Model, msg tea.Msg) (*tui.Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(*tui.Model), cmd
}

func requireStepStatus(t *testing.T, m *tui.Model, name string, expected tui.StepStatus) {
	t.Helper()
	node, ok := m.StepMap[name]
	require.True(t, ok, "Step %s should exist in StepMap", name)
	assert.Equal(t, expected, node.Status)
}
