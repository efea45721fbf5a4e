// Package linear provides a synchronous, line-oriented renderer for CI
// environments.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"

	"github.com/kiln-lang/kiln/internal/ui/output"
)

// Renderer implements ports.Renderer for non-interactive environments.
// It prints chronological progress lines, one per event, with package
// name prefixes.
type Renderer struct {
	out    io.Writer
	output *termenv.Output

	mu    sync.Mutex
	steps map[string]stepState // spanID -> step state
}

type stepState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a linear renderer writing to out. A nil writer
// defaults to stderr.
func NewRenderer(out io.Writer) *Renderer {
	if out == nil {
		out = os.Stderr
	}

	return &Renderer{
		out:    out,
		output: output.NewWithProfile(out, output.ColorProfileANSI),
		steps:  make(map[string]stepState),
	}
}

// Start is a no-op; the linear renderer is synchronous.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop is a no-op; every event is written as it arrives.
func (r *Renderer) Stop() error {
	return nil
}

// Wait is a no-op; the linear renderer is synchronous.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlan prints a single summary line for the upcoming operation.
func (r *Renderer) OnPlan(op string, steps []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.out, "Planning to %s %d package(s)\n", op, len(steps))
}

// OnStepStart prints a start line for one package.
func (r *Renderer) OnStepStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps[spanID] = stepState{name: name, startTime: startTime}

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.out, "%s Resolving...\n", prefix)
}

// OnStepComplete prints the outcome of one package.
func (r *Renderer) OnStepComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}

	duration := endTime.Sub(step.startTime)
	prefix := fmt.Sprintf("[%s]", step.name)

	if err != nil {
		symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.out, "%s %s Failed after %v: %v\n",
			prefix, symbol, duration, err)
	} else {
		symbol := r.output.String("✓").Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.out, "%s %s Completed in %v\n",
			prefix, symbol, duration)
	}

	delete(r.steps, spanID)
}
