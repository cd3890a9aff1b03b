package parser

import (
	"strings"

	"mwe2/internal/ast"
	"mwe2/internal/errors"
)

// parseStringLiteral parses: CompoundString
func (p *Parser) parseStringLiteral() *ast.StringLiteral {
	defer p.rule("StringLiteral")()

	cs := p.parseCompoundString()
	return &ast.StringLiteral{Pos: cs.Pos, EndPos: cs.EndPos, Value: cs}
}

func quoteKind(tt TokenType) ast.QuoteKind {
	switch tt {
	case SINGLE_QUOTE:
		return ast.SingleQuote
	case DOUBLE_QUOTE:
		return ast.DoubleQuote
	}
	return ast.NoQuote
}

// parseCompoundString parses a quoted string. The opening quote is taken in
// structural mode; the content is scanned in string mode so whitespace and
// comment-like text are kept. The other quote kind is ordinary content.
func (p *Parser) parseCompoundString() *ast.CompoundString {
	defer p.rule("CompoundString")()

	open := p.advance()
	closing := open.Type
	cs := &ast.CompoundString{Pos: p.makePos(open), Begin: quoteKind(closing)}

	p.setMode(ModeString)
	for !p.check(closing) && !p.isAtEnd() {
		cs.Parts = appendPart(cs.Parts, p.parseStringPart(closing))
	}

	if p.check(closing) {
		end := p.advance()
		cs.End = cs.Begin
		cs.EndPos = p.makeEndPos(end)
	} else {
		cs.End = ast.NoQuote
		cs.EndPos = p.makePosAt(p.resume)
		p.report(errors.Error, errors.ErrorUnterminatedString, "unterminated string literal",
			open, open.Position, len(p.source)-open.Position.Offset, []TokenType{closing})
	}
	p.setMode(ModeStructural)
	return cs
}

// appendPart adds part, merging it into a preceding literal run.
func appendPart(parts []ast.StringPart, part ast.StringPart) []ast.StringPart {
	plain, ok := part.(*ast.PlainString)
	if !ok || len(parts) == 0 {
		return append(parts, part)
	}
	last, ok := parts[len(parts)-1].(*ast.PlainString)
	if !ok {
		return append(parts, part)
	}
	parts[len(parts)-1] = &ast.PlainString{Pos: last.Pos, EndPos: plain.EndPos, Value: last.Value + plain.Value}
	return parts
}

// parseStringPart parses: PropertyReference | PlainString
func (p *Parser) parseStringPart(closing TokenType) ast.StringPart {
	defer p.rule("StringPart")()

	if p.check(DOLLAR_BRACE) {
		return p.parsePropertyReference()
	}
	return p.parsePlainString(closing)
}

// parsePropertyReference parses: '${' ID '}'. A '${' without a name is kept
// as literal text.
func (p *Parser) parsePropertyReference() ast.StringPart {
	defer p.rule("PropertyReference")()

	open := p.advance()
	if !p.check(IDENTIFIER) {
		p.errorAtCurrent(errors.ErrorInvalidInterpolation, "expected property name after '${'", []TokenType{IDENTIFIER})
		return &ast.PlainString{Pos: p.makePos(open), EndPos: p.makeEndPos(open), Value: open.Lexeme}
	}

	name := p.makeIdent(p.advance())
	ref := &ast.PropertyReference{Pos: p.makePos(open), Property: name}

	end, ok := p.consume(RIGHT_BRACE, errors.ErrorInvalidInterpolation, "expected '}' to close '${"+name.Value+"'")
	if ok {
		ref.EndPos = p.makeEndPos(end)
	} else {
		ref.EndPos = name.EndPos
	}
	return ref
}

// parsePlainString parses a run of literal tokens up to '${', the closing
// quote or the end of input, decoding \\, \' and \".
func (p *Parser) parsePlainString(closing TokenType) *ast.PlainString {
	defer p.rule("PlainString")()

	first := p.peek()
	var value strings.Builder
	last := first

	for {
		tok := p.peek()
		if tok.Type == closing || tok.Type == DOLLAR_BRACE || tok.Type == EOF {
			break
		}

		if tok.Type == BACKSLASH {
			switch p.peekN(1).Type {
			case BACKSLASH, SINGLE_QUOTE, DOUBLE_QUOTE:
				p.advance()
				last = p.advance()
				value.WriteString(last.Lexeme)
				continue
			}
			p.warnAtToken(tok, errors.WarningInvalidEscape, `backslash does not start an escape sequence and is kept as is; write \\ for a backslash`)
		}

		last = p.advance()
		value.WriteString(last.Lexeme)
	}

	return &ast.PlainString{
		Pos:    p.makePos(first),
		EndPos: p.makeEndPos(last),
		Value:  value.String(),
	}
}
