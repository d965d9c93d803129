package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/forthix/forthic/tokenizer"
)

func TestErrorRendererPlainError(t *testing.T) {
	renderer := NewErrorRenderer([]byte(": FOO ;"))

	rendered := renderer.Render(errors.New("something else"))

	assert.Equal(t, "something else", rendered)
}

func TestErrorRendererUnterminatedString(t *testing.T) {
	source := ": GREETING\n  \"\"\"hello"
	tok := tokenizer.New([]byte(source), tokenizer.WithFilename("main.forthic"))

	var err error
	for err == nil {
		var token tokenizer.Token
		token, err = tok.NextToken()
		if err == nil && token.Kind == tokenizer.KindEOS {
			t.Fatal("expected an unterminated string error")
		}
	}

	renderer := NewErrorRenderer([]byte(source))
	rendered := renderer.Render(err)

	// Message first, then context lines, then the caret under the
	// opening quote (line 2, column 3).
	assert.True(t, strings.Contains(rendered, "unterminated triple-quoted string"))
	assert.True(t, strings.Contains(rendered, ": GREETING"))

	lines := strings.Split(rendered, "\n")
	caretLine := ""
	for _, line := range lines {
		if strings.Contains(line, "^") {
			caretLine = line
		}
	}
	if caretLine == "" {
		t.Fatalf("rendered error has no caret:\n%s", rendered)
	}

	// Strip styling escapes before measuring the caret column.
	plain := stripEscapes(caretLine)
	assert.Equal(t, "   "+strings.Repeat(" ", 2)+"^", plain)
}

func stripEscapes(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
