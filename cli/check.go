package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/alecthomas/kong"

	"github.com/forthix/forthic/output"
	"github.com/forthix/forthic/telemetry"
	"github.com/forthix/forthic/tokenizer"
)

// CheckCmd tokenizes a Forthic file end to end and reports the single
// scan failure mode, an unterminated triple-quoted string.
type CheckCmd struct {
	File FileOrStdin `help:"Forthic input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the check command.
func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	var checkSpan telemetry.Span
	var once sync.Once

	reportTelemetry := func() {
		once.Do(func() {
			if collector != nil {
				checkSpan.End()
				_, _ = fmt.Fprintln(ctx.Stderr)
				collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
			}
		})
	}

	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		checkSpan = collector.Start(fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))
		defer reportTelemetry()
	}

	readSpan := telemetry.FromContext(runCtx).Start("read source")
	content, err := cmd.File.GetSourceContent()
	readSpan.End()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	scanSpan := telemetry.FromContext(runCtx).Start("tokenize")
	tok := tokenizer.New(content, tokenizer.WithFilename(cmd.File.GetAbsoluteFilename()))
	tokens, err := tok.TokenizeAll()
	scanSpan.End()

	if err != nil {
		renderer := NewErrorRenderer(content)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))

		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "lex error")

		reportTelemetry()
		return NewCommandError(1)
	}

	// The terminating end_of_stream token is not a program token.
	printSuccess(ctx.Stdout, fmt.Sprintf("%d tokens", len(tokens)-1))

	return nil
}
