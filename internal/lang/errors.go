package lang

import "fmt"

// LexError is returned when the lexer encounters a character it cannot
// classify into any token.
type LexError struct {
	Ch  byte
	Pos Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at offset %d", e.Ch, e.Pos.Offset)
}

// ParseError is returned by the parser and the definition extractor for any
// ill-formed grammar: mismatched parens, unexpected end of input, trailing
// tokens, or malformed definition syntax.
type ParseError struct {
	Msg string
	Pos Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Pos.Offset)
}
