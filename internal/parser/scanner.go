package parser

import "strings"

type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position
	End      Position
	Mode     Mode // mode the token was scanned in
}

// Scanner turns source text into tokens one at a time. It never fails:
// unknown characters become ANY_OTHER. The caller picks the Mode per token
// and may rewind with Reset.
type Scanner struct {
	source      string
	current     int
	line        int
	column      int
	start       int
	startLine   int
	startColumn int
	errors      []ScanError
	reported    map[int]bool
}

type ScanError struct {
	Message  string
	Position Position // line, column, offset
	Length   int      // how many bytes it covers
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source:   source,
		line:     1,
		column:   1,
		reported: make(map[int]bool),
	}
}

// ScanTokens scans the whole input in structural mode, hidden tokens included,
// ending with EOF.
func (s *Scanner) ScanTokens() []Token {
	var tokens []Token
	for {
		tok := s.Next(ModeStructural)
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

// Errors returns the lexical errors seen so far, each reported once even when
// the region is rescanned.
func (s *Scanner) Errors() []ScanError {
	return s.errors
}

// Reset restarts scanning at pos, which must be a token boundary produced by
// this scanner.
func (s *Scanner) Reset(pos Position) {
	s.current = pos.Offset
	s.line = pos.Line
	s.column = pos.Column
}

// Next scans one token in the given mode.
func (s *Scanner) Next(mode Mode) Token {
	tok := s.next(mode)
	tok.Mode = mode
	return tok
}

func (s *Scanner) next(mode Mode) Token {
	s.start = s.current
	s.startLine = s.line
	s.startColumn = s.column

	if s.isAtEnd() {
		return s.makeToken(EOF)
	}

	c := s.advance()
	if mode == ModeString {
		return s.scanStringContent(c)
	}

	switch c {
	case ' ', '\t', '\r', '\n':
		s.skipWhitespace()
		return s.makeToken(WS)
	case '=':
		return s.makeToken(EQUAL)
	case '@':
		return s.makeToken(AT)
	case ':':
		return s.makeToken(COLON)
	case '{':
		return s.makeToken(LEFT_BRACE)
	case '}':
		return s.makeToken(RIGHT_BRACE)
	case '.':
		if s.matchNext('*') {
			return s.makeToken(WILDCARD)
		}
		return s.makeToken(DOT)
	case '$':
		if s.matchNext('{') {
			return s.makeToken(DOLLAR_BRACE)
		}
		return s.makeToken(ANY_OTHER)
	case '\'':
		return s.makeToken(SINGLE_QUOTE)
	case '"':
		return s.makeToken(DOUBLE_QUOTE)
	case '\\':
		return s.makeToken(BACKSLASH)
	case '/':
		if s.matchNext('/') {
			return s.scanLineComment()
		}
		if s.matchNext('*') {
			return s.scanBlockComment()
		}
		return s.makeToken(ANY_OTHER)
	}
	return s.scanDefault(c, true)
}

// scanStringContent scans one token between quotes.
func (s *Scanner) scanStringContent(c byte) Token {
	switch c {
	case ' ', '\t', '\r', '\n':
		s.skipWhitespace()
		return s.makeToken(WS)
	case '\'':
		return s.makeToken(SINGLE_QUOTE)
	case '"':
		return s.makeToken(DOUBLE_QUOTE)
	case '\\':
		return s.makeToken(BACKSLASH)
	case '}':
		return s.makeToken(RIGHT_BRACE)
	case '$':
		if s.matchNext('{') {
			return s.makeToken(DOLLAR_BRACE)
		}
		return s.makeToken(ANY_OTHER)
	}
	return s.scanDefault(c, false)
}

func (s *Scanner) scanDefault(c byte, keywords bool) Token {
	switch {
	case isAlpha(c):
		return s.scanIdentifier(keywords)
	case c == '^' && isAlpha(s.peek()):
		s.advance()
		return s.scanIdentifier(false)
	case c >= 0x80:
		// keep a multi-byte rune in one token
		for !s.isAtEnd() && s.peek()&0xC0 == 0x80 {
			s.advance()
		}
	}
	return s.makeToken(ANY_OTHER)
}

func (s *Scanner) scanIdentifier(keywords bool) Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}
	if !keywords {
		return s.makeToken(IDENTIFIER)
	}

	text := s.source[s.start:s.current]
	if text == "auto" && strings.HasPrefix(s.source[s.current:], "-inject") {
		for range len("-inject") {
			s.advance()
		}
		return s.makeToken(AUTO_INJECT)
	}
	if t, ok := KEYWORDS[text]; ok {
		return s.makeToken(t)
	}
	return s.makeToken(IDENTIFIER)
}

func (s *Scanner) skipWhitespace() {
	for {
		switch s.peek() {
		case ' ', '\t', '\r', '\n':
			s.advance()
		default:
			return
		}
	}
}

// scanLineComment consumes up to and including the line break.
func (s *Scanner) scanLineComment() Token {
	for !s.isAtEnd() && s.peek() != '\n' {
		s.advance()
	}
	s.matchNext('\n')
	return s.makeToken(SL_COMMENT)
}

func (s *Scanner) scanBlockComment() Token {
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance()
			s.advance()
			return s.makeToken(ML_COMMENT)
		}
		s.advance()
	}
	s.reportError("unterminated block comment")
	return s.makeToken(ML_COMMENT)
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	switch {
	case c == '\n':
		s.line++
		s.column = 1
	case c&0xC0 != 0x80:
		s.column++
	}
	return c
}

func (s *Scanner) matchNext(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) makeToken(tokenType TokenType) Token {
	return Token{
		Type:     tokenType,
		Lexeme:   s.source[s.start:s.current],
		Position: Position{Line: s.startLine, Column: s.startColumn, Offset: s.start},
		End:      Position{Line: s.line, Column: s.column, Offset: s.current},
	}
}

func (s *Scanner) reportError(message string) {
	if s.reported[s.start] {
		return
	}
	s.reported[s.start] = true
	s.errors = append(s.errors, ScanError{
		Message:  message,
		Position: Position{Line: s.startLine, Column: s.startColumn, Offset: s.start},
		Length:   s.current - s.start,
	})
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}
