package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/forthix/forthic/tokenizer"
)

func mustTokenize(t *testing.T, source string) []tokenizer.Token {
	t.Helper()
	tokens, err := tokenizer.New([]byte(source)).TokenizeAll()
	assert.NoError(t, err)
	return tokens
}

func TestPrintTokenTable(t *testing.T) {
	tokens := mustTokenize(t, ": DOUBLE 2 * ;\n{math}")

	var buf bytes.Buffer
	printTokenTable(&buf, tokens, nil)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, 4, len(lines), "EOS must be skipped: %s", buf.String())

	assert.True(t, strings.Contains(lines[0], "start_definition"))
	assert.True(t, strings.Contains(lines[0], `"DOUBLE"`))
	assert.True(t, strings.Contains(lines[1], "end_definition"))
	assert.True(t, strings.Contains(lines[2], "start_module"))
	assert.True(t, strings.Contains(lines[3], "end_module"))

	// Rows carry line:column positions.
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "1:1"))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[2]), "2:1"))
}

func TestPrintTokenTableTruncatesLongStrings(t *testing.T) {
	long := strings.Repeat("x", 200)
	tokens := mustTokenize(t, `"""`+long+`"""`)

	var buf bytes.Buffer
	printTokenTable(&buf, tokens, nil)

	assert.True(t, strings.Contains(buf.String(), "…"))
	assert.False(t, strings.Contains(buf.String(), long))
}

func TestPrintSummary(t *testing.T) {
	tokens := mustTokenize(t, ": A ; : B ; {m} # note\n")

	var buf bytes.Buffer
	printSummary(&buf, tokens)

	out := buf.String()
	assert.True(t, strings.Contains(out, "start_definition 2"))
	assert.True(t, strings.Contains(out, "end_definition   2"))
	assert.True(t, strings.Contains(out, "comment          1"))
	assert.False(t, strings.Contains(out, "end_of_stream"))

	// Sorted by kind name.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i-1] > lines[i] {
			t.Errorf("summary not sorted: %q before %q", lines[i-1], lines[i])
		}
	}
}

func TestFileOrStdinAbsoluteFilename(t *testing.T) {
	f := &FileOrStdin{Filename: "<stdin>", Contents: []byte(": FOO ;")}

	assert.True(t, f.IsStdin())
	assert.Equal(t, "<stdin>", f.GetAbsoluteFilename())

	content, err := f.GetSourceContent()
	assert.NoError(t, err)
	assert.Equal(t, ": FOO ;", string(content))
}
