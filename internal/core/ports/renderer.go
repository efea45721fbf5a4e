package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for progress output. It decouples the
// engine's telemetry from presentation, letting the same event stream
// drive either a live TUI or linear CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle. For
	// asynchronous renderers this may launch background goroutines.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush
	// buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated. Synchronous
	// renderers may return immediately.
	Wait() error

	// OnPlan is called once per operation with the resolution steps
	// about to run, in no particular order.
	// op: the operation name ("get" or "sync")
	// steps: display names of the planned steps
	OnPlan(op string, steps []string)

	// OnStepStart is called when one resolution step begins.
	// spanID: unique identifier for the step
	// name: display name (usually the locator)
	OnStepStart(spanID, name string, startTime time.Time)

	// OnStepComplete is called when a step finishes.
	// err is nil on success.
	OnStepComplete(spanID string, endTime time.Time, err error)
}
