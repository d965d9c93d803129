package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-runewidth"
	"golang.org/x/exp/slices"

	"github.com/forthix/forthic/output"
	"github.com/forthix/forthic/telemetry"
	"github.com/forthix/forthic/tokenizer"
)

// kindColumnWidth fits the longest stable kind name ("start_definition").
const kindColumnWidth = 16

// maxTextColumnWidth bounds the displayed token text; long string
// literals are truncated by display width, not byte count.
const maxTextColumnWidth = 60

// LexCmd shows lexical tokens from a Forthic file.
type LexCmd struct {
	File    FileOrStdin `help:"Forthic input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Summary bool        `help:"Append per-kind token counts."`
	Debug   bool        `help:"Dump tokens as Go values instead of the table."`
	Output  string      `help:"Write the token table to a file instead of stdout." type:"path"`
	Watch   bool        `help:"Re-run whenever the input file changes."`
}

// Run executes the lex command.
func (cmd *LexCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	if cmd.Watch && cmd.File.IsStdin() {
		return fmt.Errorf("--watch requires a file argument")
	}

	runCtx := context.Background()

	// Watch mode runs indefinitely, so there is no single report point
	// for timings; telemetry applies to one-shot runs only.
	if globals.Telemetry && !cmd.Watch {
		collector := telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		span := collector.Start(fmt.Sprintf("lex %s", filepath.Base(cmd.File.Filename)))
		defer func() {
			span.End()
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
		}()
	}

	if err := cmd.lexOnce(runCtx, ctx); err != nil {
		// In watch mode a scan error is reported and watched for a
		// fix, not fatal.
		if !cmd.Watch {
			return err
		}
	}

	if cmd.Watch {
		return cmd.watch(ctx)
	}

	return nil
}

// lexOnce tokenizes the input and writes the requested output format.
func (cmd *LexCmd) lexOnce(runCtx context.Context, ctx *kong.Context) error {
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
		return NewCommandError(1)
	}

	if cmd.Debug {
		repr.New(ctx.Stdout).Println(tokens)
		return nil
	}

	if cmd.Output != "" {
		return cmd.writeTable(ctx, tokens)
	}

	styles := output.NewStyles(ctx.Stdout)
	printTokenTable(ctx.Stdout, tokens, styles)
	if cmd.Summary {
		_, _ = fmt.Fprintln(ctx.Stdout)
		printSummary(ctx.Stdout, tokens)
	}

	return nil
}

// writeTable writes the plain (unstyled) token table to cmd.Output,
// asking before clobbering an existing file when run interactively.
func (cmd *LexCmd) writeTable(ctx *kong.Context, tokens []tokenizer.Token) error {
	if _, err := os.Stat(cmd.Output); err == nil {
		overwrite, err := promptYesNo(fmt.Sprintf("Overwrite %s?", cmd.Output))
		if err != nil {
			return err
		}
		if !overwrite {
			printInfof(ctx.Stdout, "skipped %s", cmd.Output)
			return nil
		}
	}

	f, err := os.Create(cmd.Output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	printTokenTable(f, tokens, nil)
	if cmd.Summary {
		_, _ = fmt.Fprintln(f)
		printSummary(f, tokens)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("wrote %s", cmd.Output))

	return nil
}

// watch re-runs the lex on every change to the input file, debounced
// because editors often write files in multiple steps.
func (cmd *LexCmd) watch(ctx *kong.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(cmd.File.Filename); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cmd.File.Filename, err)
	}

	printInfof(ctx.Stdout, "watching %s", cmd.File.Filename)

	const debounceDelay = 100 * time.Millisecond
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	rerun := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Remove/Rename are common in atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case <-rerun:
			// Atomic saves replace the file, so re-add the watch.
			_ = watcher.Add(cmd.File.Filename)

			_, _ = fmt.Fprintln(ctx.Stdout)
			if err := cmd.lexOnce(context.Background(), ctx); err != nil {
				log.Printf("lex failed: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("file watcher error: %v", err)
		}
	}
}

// printTokenTable writes tokens as "LINE:COL KIND TEXT" rows. The EOF
// marker is skipped for clean output.
func printTokenTable(w io.Writer, tokens []tokenizer.Token, styles *output.Styles) {
	for _, token := range tokens {
		if token.Kind == tokenizer.KindEOS {
			continue
		}

		kind := token.Kind.String()
		pad := kindColumnWidth - len(kind)
		if pad < 0 {
			pad = 0
		}
		if styles != nil {
			kind = styles.TokenKind(token.Kind)
		}

		text := runewidth.Truncate(token.Text, maxTextColumnWidth, "…")

		_, _ = fmt.Fprintf(w, "%4d:%-4d %s%*s %q\n",
			token.Line,
			token.Column,
			kind,
			pad, "",
			text)
	}
}

// printSummary writes per-kind token counts, sorted by kind name.
func printSummary(w io.Writer, tokens []tokenizer.Token) {
	counts := make(map[string]int)
	for _, token := range tokens {
		if token.Kind == tokenizer.KindEOS {
			continue
		}
		counts[token.Kind.String()]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		_, _ = fmt.Fprintf(w, "%-*s %d\n", kindColumnWidth, name, counts[name])
	}
}
