// Package forthic provides the lexical front end for the Forthic
// scripting language, a stack-based concatenative notation where
// programs are sequences of whitespace-separated words.
package forthic

import (
	"github.com/forthix/forthic/tokenizer"
)

// Tokenize scans source into its full token sequence. The returned
// slice always ends with an end_of_stream token unless scanning fails
// with a *tokenizer.UnterminatedStringError.
func Tokenize(source string) ([]tokenizer.Token, error) {
	return tokenizer.New([]byte(source)).TokenizeAll()
}
