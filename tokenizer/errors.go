package tokenizer

import "fmt"

// Position is a location in the source buffer.
type Position struct {
	Filename string
	Offset   int // Byte offset into the source buffer
	Line     int // 1-indexed
	Column   int // 1-indexed
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// UnterminatedStringError reports a triple-quoted string literal that
// was opened but never closed before the end of input. Pos is the
// location of the opening quote, so callers can point at the literal
// that never closed rather than at the end of the file.
//
// This is the tokenizer's only domain error; every other irregularity
// in the input is consumed silently.
type UnterminatedStringError struct {
	Pos Position
}

func (e *UnterminatedStringError) Error() string {
	return fmt.Sprintf("%s: unterminated triple-quoted string", e.Pos)
}
