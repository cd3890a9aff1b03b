package parser

// Tokenize scans the whole input the way the parser sees it: quotes switch
// to string mode until the matching quote, so string content is never
// mistaken for keywords or comments. Each token records the mode it was
// scanned in. Hidden tokens are included and the result ends with EOF.
func Tokenize(source string) []Token {
	s := NewScanner(source)
	var (
		tokens  []Token
		closing TokenType
		mode    = ModeStructural
	)

	for {
		tok := s.Next(mode)
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}

		switch {
		case mode == ModeStructural && (tok.Type == SINGLE_QUOTE || tok.Type == DOUBLE_QUOTE):
			mode, closing = ModeString, tok.Type
		case mode == ModeString && tok.Type == closing:
			mode = ModeStructural
		case mode == ModeString && tok.Type == BACKSLASH:
			// an escaped quote does not close the string
			next := s.Next(ModeString)
			tokens = append(tokens, next)
			if next.Type == EOF {
				return tokens
			}
		}
	}
}
