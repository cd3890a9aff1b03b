package parser

import (
	"strings"

	"mwe2/internal/ast"
	"mwe2/internal/errors"
)

func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Type != EOF {
		p.commitHidden(p.buf[0])
		p.buf = p.buf[1:]
		p.prev = tok
		p.resume = tok.End
	}
	return tok
}

func (p *Parser) check(tt TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

// consume expects tt at the current position. On mismatch it first tries
// single-token deletion (the token after the current one is tt) and then
// single-token insertion (a zero-width token is assumed). ok is false only
// when a token was inserted.
func (p *Parser) consume(tt TokenType, code, message string) (Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}

	if cur := p.peek(); !isAnchor(cur.Type) && p.peekN(1).Type == tt {
		p.errorAtToken(cur, errors.ErrorUnexpectedToken, "unexpected "+cur.Type.Display()+"; "+message, []TokenType{tt})
		p.advance()
		return p.advance(), true
	}

	p.errorAtCurrent(code, message, []TokenType{tt})
	at := p.peek().Position
	return Token{Type: tt, Position: at, End: at}, false
}

// isAnchor reports tokens that recovery never deletes: they open or close
// constructs the enclosing rules still need.
func isAnchor(tt TokenType) bool {
	switch tt {
	case EOF, IMPORT, VAR, LEFT_BRACE, RIGHT_BRACE, SINGLE_QUOTE, DOUBLE_QUOTE:
		return true
	}
	return false
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) previous() Token {
	return p.prev
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

// report records a diagnostic. An error repeating the code and offset of the
// previous one is dropped, so a cascade of recovery failures reports once.
func (p *Parser) report(level errors.ErrorLevel, code, message string, found Token, pos Position, length int, expected []TokenType) {
	if p.cancelled {
		return
	}
	if level == errors.Error {
		if pos.Offset == p.lastErrorAt && code == p.lastErrorCode {
			return
		}
		p.lastErrorAt, p.lastErrorCode = pos.Offset, code
	}
	p.errors = append(p.errors, ParseError{
		Level:    level,
		Code:     code,
		Message:  message,
		Rule:     p.currentRule(),
		Expected: expected,
		Found:    found,
		Position: pos,
		Length:   length,
	})
}

func (p *Parser) errorAtToken(tok Token, code, message string, expected []TokenType) {
	p.report(errors.Error, code, message, tok, tok.Position, tok.End.Offset-tok.Position.Offset, expected)
}

func (p *Parser) errorAtCurrent(code, message string, expected []TokenType) {
	p.errorAtToken(p.peek(), code, message, expected)
}

func (p *Parser) errorAt(start, end ast.Position, code, message string, expected []TokenType) {
	pos := Position{Line: start.Line, Column: start.Column, Offset: start.Offset}
	p.report(errors.Error, code, message, Token{}, pos, end.Offset-start.Offset, expected)
}

func (p *Parser) warnAtToken(tok Token, code, message string) {
	p.report(errors.Warning, code, message, tok, tok.Position, tok.End.Offset-tok.Position.Offset, nil)
}

func (p *Parser) makePos(tok Token) ast.Position {
	return p.makePosAt(tok.Position)
}

func (p *Parser) makeEndPos(tok Token) ast.Position {
	return p.makePosAt(tok.End)
}

func (p *Parser) makePosAt(pos Position) ast.Position {
	return toASTPosition(p.filename, pos)
}

// synchronize skips tokens until one of the given types is current at brace
// depth zero. Balanced '{' ... '}' groups are skipped whole.
func (p *Parser) synchronize(types ...TokenType) {
	depth := 0
	for !p.isAtEnd() {
		tt := p.peek().Type
		if depth == 0 && containsType(types, tt) {
			return
		}
		switch tt {
		case LEFT_BRACE:
			depth++
		case RIGHT_BRACE:
			if depth == 0 {
				// an unbalanced '}' closes an enclosing construct
				if containsType(types, RIGHT_BRACE) {
					return
				}
			} else {
				depth--
			}
		}
		p.advance()
	}
}

func containsType(types []TokenType, tt TokenType) bool {
	for _, t := range types {
		if t == tt {
			return true
		}
	}
	return false
}

// Helper functions to reduce repetitive AST node creation

// makeIdent creates an ast.Ident from a token, dropping a '^' escape
func (p *Parser) makeIdent(tok Token) ast.Ident {
	return ast.Ident{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		Value:  strings.TrimPrefix(tok.Lexeme, "^"),
	}
}

// consumeIdent consumes an identifier token and returns an ast.Ident
func (p *Parser) consumeIdent(code, message string) (ast.Ident, bool) {
	tok, ok := p.consume(IDENTIFIER, code, message)
	if !ok {
		return ast.Ident{Pos: p.makePos(tok), EndPos: p.makePos(tok)}, false
	}
	return p.makeIdent(tok), true
}
