// Package telemetry provides timing collection for CLI operations.
//
// Collectors travel through context so instrumentation stays
// non-intrusive: code calls telemetry.FromContext(ctx).Start(name) and
// gets a no-op span unless the user asked for timings.
package telemetry

import (
	"context"
	"io"

	"github.com/forthix/forthic/output"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

var collectorKey = contextKey{}

// Collector collects timing data for named operations.
type Collector interface {
	// Start begins timing an operation. Spans started before the
	// returned one ends are reported nested under it.
	Start(name string) Span

	// Report writes the collected timings. Styles may be nil for plain
	// output.
	Report(w io.Writer, styles *output.Styles)
}

// Span tracks a single operation's timing.
type Span interface {
	// End stops the span and records its duration.
	End()
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext extracts the collector from context, or a no-op
// collector when none is present.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// noOpCollector provides zero overhead when telemetry is disabled.
type noOpCollector struct{}

func (noOpCollector) Start(name string) Span { return noOpSpan{} }

func (noOpCollector) Report(w io.Writer, _ *output.Styles) {}

type noOpSpan struct{}

func (noOpSpan) End() {}
