package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFromContextWithoutCollector(t *testing.T) {
	collector := FromContext(context.Background())

	// Must be usable without panicking and produce no output.
	span := collector.Start("noop")
	span.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	if buf.Len() != 0 {
		t.Errorf("no-op collector should produce no output, got %q", buf.String())
	}
}

func TestFromContextRoundTrip(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	if FromContext(ctx) != Collector(collector) {
		t.Error("FromContext should return the collector added with WithCollector")
	}
}

func TestTimingCollectorNesting(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("lex main.forthic")
	read := collector.Start("read source")
	read.End()
	scan := collector.Start("tokenize")
	scan.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d report lines, want 3:\n%s", len(lines), buf.String())
	}

	if !strings.HasPrefix(lines[0], "lex main.forthic: ") {
		t.Errorf("root span should be unindented, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  read source: ") {
		t.Errorf("child span should be indented, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "  tokenize: ") {
		t.Errorf("sibling child should be indented once, got %q", lines[2])
	}
}

func TestSpanEndIsIdempotent(t *testing.T) {
	collector := NewTimingCollector()

	span := collector.Start("once")
	span.End()
	span.End()

	// A double End must not unbalance depth for later spans.
	next := collector.Start("after")
	next.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if strings.HasPrefix(line, " ") {
			t.Errorf("top-level span reported indented: %q", line)
		}
	}
}
