package tui

import "time"

// MsgPlan announces the steps an operation is about to run.
type MsgPlan struct {
	Op    string
	Steps []string
}

// MsgStepStart marks one step as running.
type MsgStepStart struct {
	SpanID    string
	Name      string
	StartTime time.Time
}

// MsgStepComplete records the outcome of one step.
type MsgStepComplete struct {
	SpanID  string
	EndTime time.Time
	Err     error
}
