// Package tokenizer implements the lexical scanner for Forthic source.
//
// Forthic is word-oriented: a program is a sequence of
// whitespace-separated tokens manipulating an implicit stack. There
// are no operator precedences or multi-line constructs to track beyond
// triple-quoted strings, so a single byte cursor with at most three
// bytes of lookahead covers the whole grammar.
//
// The scanner is pull-based: the parser calls NextToken repeatedly
// until it receives an end_of_stream token. Tokens own their text; the
// internal accumulation buffer is reused across calls.
package tokenizer

// Default character sets. Parentheses count as whitespace so that
// Forth-style stack-effect annotations like ( a b -- c ) are discarded
// as separators rather than tokenized.
const (
	DefaultWhitespace = " \t\n\r()"
	DefaultQuoteChars = `"'`
)

// Tokenizer scans Forthic source into a stream of tokens.
type Tokenizer struct {
	source   []byte // Source buffer, never mutated
	filename string // Filename for error reporting
	pos      int    // Current byte position
	line     int    // Current line (1-indexed)
	column   int    // Current column (1-indexed)

	whitespace [256]bool // Separator set
	quote      [256]bool // String delimiter set

	text []byte // Accumulation buffer, reused across calls
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithWhitespace replaces the separator set. Separators are skipped at
// the top level and terminate name gathering.
func WithWhitespace(set string) Option {
	return func(t *Tokenizer) { t.whitespace = byteSet(set) }
}

// WithQuoteChars replaces the set of characters that can delimit a
// triple-quoted string literal.
func WithQuoteChars(set string) Option {
	return func(t *Tokenizer) { t.quote = byteSet(set) }
}

// WithFilename sets the filename used in positions and errors. It has
// no effect on scanning.
func WithFilename(name string) Option {
	return func(t *Tokenizer) { t.filename = name }
}

// New creates a tokenizer over the given source buffer. The buffer is
// borrowed and must not be mutated while the tokenizer is in use.
func New(source []byte, opts ...Option) *Tokenizer {
	t := &Tokenizer{
		source:     source,
		line:       1,
		column:     1,
		whitespace: byteSet(DefaultWhitespace),
		quote:      byteSet(DefaultQuoteChars),
		text:       make([]byte, 0, 64),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Pos returns the current cursor position. After a failed NextToken
// call this is where scanning stopped, which for an unterminated
// string is the end of the input.
func (t *Tokenizer) Pos() Position {
	return Position{Filename: t.filename, Offset: t.pos, Line: t.line, Column: t.column}
}

// NextToken scans and returns the next token. At end of input it
// returns an end_of_stream token with empty text, and keeps doing so
// on subsequent calls. The only possible error is
// *UnterminatedStringError.
//
// Dispatch order is significant: whitespace wins over everything, a
// bare ':' is always a definition (so '@:' is only recognized off an
// '@'), and structural single-byte tokens are checked before the
// triple-quote lookahead. Bytes matching no rule are dropped.
func (t *Tokenizer) NextToken() (Token, error) {
	t.text = t.text[:0]

	for t.pos < len(t.source) {
		line, col := t.line, t.column
		start := t.pos
		ch := t.advance()

		switch {
		case t.whitespace[ch]:
			continue

		case ch == '#':
			t.scanComment()
			return Token{Kind: KindComment, Line: line, Column: col}, nil

		case ch == ':':
			return Token{Kind: KindStartDef, Text: t.gatherName(), Line: line, Column: col}, nil

		case ch == '@' && t.nextIs(':'):
			t.advance() // the ':'
			return Token{Kind: KindStartMemo, Text: t.gatherName(), Line: line, Column: col}, nil

		case ch == ';':
			return Token{Kind: KindEndDef, Text: ";", Line: line, Column: col}, nil

		case ch == '[':
			return Token{Kind: KindStartArray, Text: "[", Line: line, Column: col}, nil

		case ch == ']':
			return Token{Kind: KindEndArray, Text: "]", Line: line, Column: col}, nil

		case ch == '{':
			return Token{Kind: KindStartModule, Text: t.gatherModuleName(), Line: line, Column: col}, nil

		case ch == '}':
			return Token{Kind: KindEndModule, Text: "}", Line: line, Column: col}, nil

		case t.quote[ch] && tripleQuoteAt(t.source, start, ch):
			t.advance() // second quote
			t.advance() // third quote
			open := Position{Filename: t.filename, Offset: start, Line: line, Column: col}
			text, err := t.gatherTripleQuoteString(ch, open)
			if err != nil {
				return Token{}, err
			}
			return Token{Kind: KindString, Text: text, Line: line, Column: col}, nil

		default:
			// Not part of any token shape (including lone quote
			// characters); dropped.
		}
	}

	return Token{Kind: KindEOS, Line: t.line, Column: t.column}, nil
}

// TokenizeAll drains the tokenizer, returning every token up to and
// including the end_of_stream token.
func (t *Tokenizer) TokenizeAll() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := t.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == KindEOS {
			return tokens, nil
		}
	}
}

// scanComment consumes to the end of the line. Comment bodies are
// discarded: the token records only that a comment occupied the span.
func (t *Tokenizer) scanComment() {
	for t.pos < len(t.source) {
		if t.advance() == '\n' {
			return
		}
	}
}

// gatherName accumulates a definition or memo name. Whitespace between
// the ':' (or '@:') and the name is skipped, so ": FOO" and ":FOO"
// both name FOO; the name then runs to the next separator or end of
// input. The terminator is consumed but not included.
func (t *Tokenizer) gatherName() string {
	for t.pos < len(t.source) && t.whitespace[t.source[t.pos]] {
		t.advance()
	}
	for t.pos < len(t.source) {
		ch := t.advance()
		if t.whitespace[ch] {
			break
		}
		t.text = append(t.text, ch)
	}
	return string(t.text)
}

// gatherModuleName accumulates a module name, which runs from the '{'
// to the next separator or '}'. A terminating separator is consumed; a
// terminating '}' is unread so the next call tokenizes it as
// end_module ("{mod}" yields both tokens).
func (t *Tokenizer) gatherModuleName() string {
	for t.pos < len(t.source) {
		ch := t.advance()
		if t.whitespace[ch] {
			break
		}
		if ch == '}' {
			t.unread()
			break
		}
		t.text = append(t.text, ch)
	}
	return string(t.text)
}

// gatherTripleQuoteString accumulates string content until a run of
// three bytes matching the opening quote. All three closing quotes are
// consumed and none accumulated; everything in between is kept
// verbatim, including embedded newlines, the other quote character,
// and non-tripled runs of the same quote. Reaching end of input first
// is the tokenizer's single fatal error.
func (t *Tokenizer) gatherTripleQuoteString(quote byte, open Position) (string, error) {
	for t.pos < len(t.source) {
		if tripleQuoteAt(t.source, t.pos, quote) {
			t.advance()
			t.advance()
			t.advance()
			return string(t.text), nil
		}
		t.text = append(t.text, t.advance())
	}
	return "", &UnterminatedStringError{Pos: open}
}

// Helper methods

// advance consumes and returns the byte at the cursor, updating
// line/column tracking. Must not be called at end of input.
func (t *Tokenizer) advance() byte {
	ch := t.source[t.pos]
	t.pos++
	if ch == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
	return ch
}

// unread steps the cursor back over the last consumed byte. The only
// caller pushes back a '}', never a newline, so column tracking stays
// exact.
func (t *Tokenizer) unread() {
	t.pos--
	t.column--
}

// nextIs reports whether the byte at the cursor equals b, without
// consuming it.
func (t *Tokenizer) nextIs(b byte) bool {
	ch, ok := peekAt(t.source, t.pos)
	return ok && ch == b
}

// peekAt is bounded lookahead over the immutable buffer: it returns
// the byte at offset, or false when offset is out of range.
func peekAt(source []byte, offset int) (byte, bool) {
	if offset < 0 || offset >= len(source) {
		return 0, false
	}
	return source[offset], true
}

// tripleQuoteAt reports whether three consecutive bytes equal to quote
// start at offset.
func tripleQuoteAt(source []byte, offset int, quote byte) bool {
	for i := 0; i < 3; i++ {
		ch, ok := peekAt(source, offset+i)
		if !ok || ch != quote {
			return false
		}
	}
	return true
}

// byteSet builds a membership table from a set string. Classification
// is byte-wise; multi-byte UTF-8 sequences in the source pass through
// string literals untouched but cannot themselves be separators or
// quotes.
func byteSet(set string) [256]bool {
	var table [256]bool
	for i := 0; i < len(set); i++ {
		table[set[i]] = true
	}
	return table
}
