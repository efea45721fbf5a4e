package linear_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"github.com/kiln-lang/kiln/internal/adapters/linear"
)

func TestRenderer_StepLifecycle(t *testing.T) {
	var out bytes.Buffer
	r := linear.NewRenderer(&out)

	require.NoError(t, r.Start(context.Background()))

	r.OnPlan("sync", []string{"github.com/kiln-lang/http", "github.com/kiln-lang/json"})
	assert.Contains(t, out.String(), "Planning to sync 2 package(s)")

	startTime := time.Now()
	r.OnStepStart("span1", "github.com/kiln-lang/http", startTime)
	assert.Contains(t, out.String(), "[github.com/kiln-lang/http]")
	assert.Contains(t, out.String(), "Resolving")

	r.OnStepComplete("span1", startTime.Add(100*time.Millisecond), nil)
	assert.Contains(t, out.String(), "Completed in 100ms")

	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())
}

func TestRenderer_StepError(t *testing.T) {
	var out bytes.Buffer
	r := linear.NewRenderer(&out)

	startTime := time.Now()
	r.OnStepStart("span1", "github.com/kiln-lang/http", startTime)
	r.OnStepComplete("span1", startTime.Add(50*time.Millisecond), zerr.New("checksum mismatch"))

	assert.Contains(t, out.String(), "Failed after 50ms")
	assert.Contains(t, out.String(), "checksum mismatch")
}

func TestRenderer_InterleavedSteps(t *testing.T) {
	var out bytes.Buffer
	r := linear.NewRenderer(&out)

	startTime := time.Now()
	r.OnStepStart("span1", "pkg-one", startTime)
	r.OnStepStart("span2", "pkg-two", startTime)
	r.OnStepComplete("span2", startTime.Add(time.Second), nil)
	r.OnStepComplete("span1", startTime.Add(2*time.Second), nil)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)

	// Each completion reports the duration of its own step.
	assert.Contains(t, lines[2], "[pkg-two]")
	assert.Contains(t, lines[2], "1s")
	assert.Contains(t, lines[3], "[pkg-one]")
	assert.Contains(t, lines[3], "2s")
}

func TestRenderer_CompleteUnknownSpan(t *testing.T) {
	var out bytes.Buffer
	r := linear.NewRenderer(&out)

	r.OnStepComplete("unknown-span", time.Now(), nil)

	assert.Zero(t, out.Len())
}

func TestRenderer_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var out bytes.Buffer
	r := linear.NewRenderer(&out)

	startTime := time.Now()
	r.OnStepStart("span1", "pkg-one", startTime)
	r.OnStepComplete("span1", startTime.Add(50*time.Millisecond), nil)

	assert.NotContains(t, out.String(), "\x1b[")
}

func TestRenderer_NilWriter(_ *testing.T) {
	r := linear.NewRenderer(nil)

	startTime := time.Now()
	r.OnStepStart("span1", "pkg-one", startTime)
	r.OnStepComplete("span1", startTime.Add(time.Second), nil)
}
