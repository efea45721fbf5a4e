// Package telemetry connects the engine's OpenTelemetry spans to the
// progress renderer.
package telemetry

import (
	"context"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/kiln-lang/kiln/internal/core/ports"
)

// Provider owns the per-run tracer provider. Every span started from
// one of its tracers is mirrored to the renderer by the bridge.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// NewProvider creates a provider whose spans drive the renderer.
func NewProvider(renderer ports.Renderer) *Provider {
	return &Provider{
		tp: sdktrace.NewTracerProvider(
			sdktrace.WithSpanProcessor(NewBridge(renderer)),
		),
	}
}

// Tracer returns a named tracer backed by this provider.
func (p *Provider) Tracer(name string) trace.Tracer {
	return p.tp.Tracer(name)
}

// Shutdown flushes the provider and detaches the bridge.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
