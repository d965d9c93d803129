package telemetry

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/forthix/forthic/output"
)

// TimingCollector records spans as a flat list with nesting depth.
// Depth is derived from which spans are still open when a new one
// starts, which keeps the recording path to an append and two counter
// updates.
type TimingCollector struct {
	mu    sync.Mutex
	spans []*span
	open  int
}

type span struct {
	name     string
	depth    int
	start    time.Time
	duration time.Duration
	done     bool
}

// NewTimingCollector creates a new timing collector.
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{}
}

// Start begins timing an operation.
func (c *TimingCollector) Start(name string) Span {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &span{
		name:  name,
		depth: c.open,
		start: time.Now(),
	}
	c.spans = append(c.spans, s)
	c.open++

	return &timingSpan{collector: c, span: s}
}

// Report writes the recorded spans as an indented duration listing.
// Example output:
//
//	lex main.forthic: 12ms
//	  read source: 3ms
//	  tokenize: 9ms
func (c *TimingCollector) Report(w io.Writer, styles *output.Styles) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.spans {
		duration := s.duration
		if !s.done {
			duration = time.Since(s.start)
		}

		indent := strings.Repeat("  ", s.depth)
		timing := formatDuration(duration)

		if styles == nil {
			_, _ = fmt.Fprintf(w, "%s%s: %s\n", indent, s.name, timing)
			continue
		}

		name := s.name
		if s.depth == 0 {
			name = styles.Keyword(name)
		}
		// Slow operations stand out; everything else is dimmed.
		if duration >= 100*time.Millisecond {
			timing = styles.Warning(timing)
		} else {
			timing = styles.Dim(timing)
		}
		_, _ = fmt.Fprintf(w, "%s%s: %s\n", indent, name, timing)
	}
}

type timingSpan struct {
	collector *TimingCollector
	span      *span
}

// End stops the span and records the duration.
func (t *timingSpan) End() {
	c := t.collector
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.span.done {
		return
	}
	t.span.done = true
	t.span.duration = time.Since(t.span.start)
	c.open--
}

// formatDuration shows milliseconds below one second, seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
