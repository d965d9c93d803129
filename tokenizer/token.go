package tokenizer

// Kind represents the lexical shape of a token.
type Kind uint8

const (
	// KindEOS marks the end of the input. Once produced, every further
	// NextToken call produces it again.
	KindEOS Kind = iota

	// KindComment is a '#' comment running to the end of the line. Its
	// text is always empty; the body is discarded during scanning.
	KindComment

	KindStartDef    // : NAME
	KindEndDef      // ;
	KindStartMemo   // @: NAME
	KindStartArray  // [
	KindEndArray    // ]
	KindStartModule // {NAME
	KindEndModule   // }
	KindString      // """...""" or '''...'''
)

// Stable names used by parser dispatch and diagnostics.
var kindNames = map[Kind]string{
	KindEOS:         "end_of_stream",
	KindComment:     "comment",
	KindStartDef:    "start_definition",
	KindEndDef:      "end_definition",
	KindStartMemo:   "start_memo",
	KindStartArray:  "start_array",
	KindEndArray:    "end_array",
	KindStartModule: "start_module",
	KindEndModule:   "end_module",
	KindString:      "string",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a single lexical unit scanned from the input.
//
// Text is owned by the token: it is copied out of the tokenizer's
// internal accumulation buffer, never aliased, so it stays valid after
// the next NextToken call.
type Token struct {
	Kind   Kind
	Text   string
	Line   int // Line of the token's first character (1-indexed)
	Column int // Column of the token's first character (1-indexed)
}
