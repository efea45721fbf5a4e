package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StepStatus represents the current state of a resolution step.
type StepStatus string

const (
	// StatusPending indicates the step is waiting to start.
	StatusPending StepStatus = "Pending"
	// StatusRunning indicates the step is currently executing.
	StatusRunning StepStatus = "Running"
	// StatusDone indicates the step completed successfully.
	StatusDone StepStatus = "Done"
	// StatusError indicates the step failed.
	StatusError StepStatus = "Error"
)

// StepNode represents a single package in the UI list.
type StepNode struct {
	Name      string
	Status    StepStatus
	Err       error
	StartTime time.Time
	Duration  time.Duration
}

// Model represents the main TUI state.
type Model struct {
	Op      string
	Steps   []*StepNode
	StepMap map[string]*StepNode // name -> node
	SpanMap map[string]*StepNode // spanID -> node
	Width   int
	Height  int
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case MsgPlan:
		m.Op = msg.Op
		m.Steps = make([]*StepNode, len(msg.Steps))
		m.StepMap = make(map[string]*StepNode, len(msg.Steps))
		m.SpanMap = make(map[string]*StepNode)
		for i, name := range msg.Steps {
			m.Steps[i] = &StepNode{
				Name:   name,
				Status: StatusPending,
			}
			m.StepMap[name] = m.Steps[i]
		}

	case MsgStepStart:
		if node, ok := m.StepMap[msg.Name]; ok {
			node.Status = StatusRunning
			node.StartTime = msg.StartTime
			m.SpanMap[msg.SpanID] = node
		}

	case MsgStepComplete:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			if msg.Err != nil {
				node.Status = StatusError
				node.Err = msg.Err
			} else {
				node.Status = StatusDone
			}
			node.Duration = msg.EndTime.Sub(node.StartTime)
		}
	}

	return m, nil
}
