package lang

// charToKind maps single-character tokens to their kind. Digits (which fold
// runs of input into one number) and lowercase letters (which carry the
// letter as payload) are handled separately.
var charToKind = map[byte]TokenKind{
	'+': TokPlus,
	'*': TokStar,
	'/': TokSlash,
	'(': TokLParen,
	')': TokRParen,
}

// Lex converts an expression string into a token slice terminated by a
// TokEOF token. Whitespace (space) is skipped; any byte that is not a
// digit, a lowercase letter, an operator, a paren, or a space fails with
// a *LexError.
func Lex(src string) ([]Token, error) {
	toks := make([]Token, 0, len(src))

	for i := 0; i < len(src); {
		b := src[i]

		switch {
		case b == ' ':
			i++

		case b >= '0' && b <= '9':
			start := i
			var n uint64
			for i < len(src) && src[i] >= '0' && src[i] <= '9' {
				n = n*10 + uint64(src[i]-'0')
				i++
			}
			toks = append(toks, Token{Kind: TokNumber, Num: n, Pos: Position{Offset: start}})

		case b >= 'a' && b <= 'z':
			toks = append(toks, Token{Kind: TokArg, Arg: b, Pos: Position{Offset: i}})
			i++

		default:
			if kind, ok := charToKind[b]; ok {
				toks = append(toks, Token{Kind: kind, Pos: Position{Offset: i}})
				i++
				continue
			}
			return nil, &LexError{Ch: b, Pos: Position{Offset: i}}
		}
	}

	toks = append(toks, Token{Kind: TokEOF, Pos: Position{Offset: len(src)}})
	return toks, nil
}
