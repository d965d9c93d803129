// Package output provides styling helpers for terminal output.
package output

import (
	"io"

	"github.com/muesli/termenv"

	"github.com/forthix/forthic/tokenizer"
)

// Styles provides styled output helpers for the CLI.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a new Styles instance for the given writer.
func NewStyles(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w),
	}
}

// Keyword returns a styled keyword (bold).
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).
		Bold().
		String()
}

// Dim returns dimmed text (for secondary information).
func (s *Styles) Dim(text string) string {
	return s.output.String(text).
		Faint().
		String()
}

// Warning returns a styled warning (yellow + bold).
func (s *Styles) Warning(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("3")).
		Bold().
		String()
}

// TokenKind returns a styled token kind name, colored by the role the
// kind plays in a program: definition markers yellow, module markers
// cyan, arrays magenta, strings green, comments and end-of-stream
// dimmed.
func (s *Styles) TokenKind(kind tokenizer.Kind) string {
	name := kind.String()

	switch kind {
	case tokenizer.KindStartDef, tokenizer.KindEndDef, tokenizer.KindStartMemo:
		return s.output.String(name).Foreground(s.output.Color("3")).String()
	case tokenizer.KindStartModule, tokenizer.KindEndModule:
		return s.output.String(name).Foreground(s.output.Color("6")).String()
	case tokenizer.KindStartArray, tokenizer.KindEndArray:
		return s.output.String(name).Foreground(s.output.Color("5")).String()
	case tokenizer.KindString:
		return s.output.String(name).Foreground(s.output.Color("2")).String()
	case tokenizer.KindComment, tokenizer.KindEOS:
		return s.Dim(name)
	default:
		return name
	}
}
