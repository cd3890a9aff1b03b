package parser

import (
	"mwe2/internal/ast"
	"mwe2/internal/errors"
)

// parseComponent parses a root or nested component:
//
//	(FQN | '@' FQN)? (':' FQN)? 'auto-inject'? '{' Assignment* '}'
//
// A root component must carry a type or a module reference.
func (p *Parser) parseComponent(root bool) *ast.Component {
	if root {
		defer p.rule("RootComponent")()
	} else {
		defer p.rule("Component")()
	}

	start := p.peek()
	c := &ast.Component{Pos: p.makePos(start), Root: root}

	switch {
	case p.check(IDENTIFIER):
		c.Type = p.parseFQN()
	case p.check(AT):
		at := p.advance()
		if p.check(IDENTIFIER) {
			c.Module = p.parseFQN()
		} else {
			p.errorAtCurrent(errors.ErrorMissingToken, "expected module name after '@'", []TokenType{IDENTIFIER})
			c.Module = &ast.FQN{Pos: p.makeEndPos(at), EndPos: p.makeEndPos(at)}
		}
	}

	if root && c.Type == nil && c.Module == nil {
		p.errorAtToken(start, errors.ErrorMissingRootType, "root component requires a type or a module reference", []TokenType{IDENTIFIER, AT})
	}

	if p.match(COLON) {
		if p.check(IDENTIFIER) {
			c.Name = p.parseFQN()
		} else {
			p.errorAtCurrent(errors.ErrorMissingToken, "expected component name after ':'", []TokenType{IDENTIFIER})
		}
	}

	c.AutoInject = p.match(AUTO_INJECT)

	if _, ok := p.consume(LEFT_BRACE, errors.ErrorMissingToken, "expected '{' to start component body"); !ok {
		c.EndPos = p.makePosAt(p.resume)
		return c
	}

	c.Assignments = p.parseComponentBody()

	end, ok := p.consume(RIGHT_BRACE, errors.ErrorMissingToken, "expected '}' to close component body")
	if ok {
		c.EndPos = p.makeEndPos(end)
	} else {
		c.EndPos = p.makePosAt(p.resume)
	}
	return c
}

// parseComponentBody parses Assignment* up to the closing brace.
func (p *Parser) parseComponentBody() []*ast.Assignment {
	var assignments []*ast.Assignment

	for !p.check(RIGHT_BRACE) && !p.isAtEnd() {
		if p.check(IDENTIFIER) {
			assignments = append(assignments, p.parseAssignment())
			continue
		}
		p.errorAtCurrent(errors.ErrorUnexpectedToken,
			"unexpected "+p.peek().Type.Display()+" in component body; expected assignment or '}'",
			[]TokenType{IDENTIFIER, RIGHT_BRACE})
		p.synchronize(IDENTIFIER, RIGHT_BRACE)
	}
	return assignments
}

// parseAssignment parses: ID '=' Value
func (p *Parser) parseAssignment() *ast.Assignment {
	defer p.rule("Assignment")()

	feature, _ := p.consumeIdent(errors.ErrorMissingToken, "expected property name")
	a := &ast.Assignment{Pos: feature.Pos, Feature: feature}

	if _, ok := p.consume(EQUAL, errors.ErrorMissingToken, "expected '=' after '"+feature.Value+"'"); !ok && !p.canStartValue() {
		a.Value = p.badValue("missing value")
		a.EndPos = feature.EndPos
		return a
	}

	a.Value = p.parseValue()
	a.EndPos = a.Value.NodeEndPos()
	return a
}

func (p *Parser) canStartValue() bool {
	switch p.peek().Type {
	case IDENTIFIER, AT, COLON, AUTO_INJECT, LEFT_BRACE, SINGLE_QUOTE, DOUBLE_QUOTE, TRUE, FALSE:
		return true
	}
	return false
}

// parseValue dispatches on one or two tokens of lookahead:
//
//	' or "                          StringLiteral
//	true / false                    BooleanLiteral
//	'@' ':' '{' 'auto-inject'       Component
//	ID followed by '.' ':' '{' 'auto-inject'
//	                                Component
//	ID followed by anything else    Reference
func (p *Parser) parseValue() ast.Value {
	defer p.rule("Value")()

	switch p.peek().Type {
	case SINGLE_QUOTE, DOUBLE_QUOTE:
		return p.parseStringLiteral()
	case TRUE, FALSE:
		return p.parseBooleanLiteral()
	case AT, COLON, AUTO_INJECT, LEFT_BRACE:
		return p.parseComponent(false)
	case IDENTIFIER:
		switch p.peekN(1).Type {
		case DOT, COLON, LEFT_BRACE, AUTO_INJECT:
			return p.parseComponent(false)
		}
		return p.parseReference()
	}

	p.errorAtCurrent(errors.ErrorUnexpectedToken, "expected value, found "+p.peek().Type.Display(),
		[]TokenType{IDENTIFIER, LEFT_BRACE, DOUBLE_QUOTE, SINGLE_QUOTE, TRUE, FALSE})
	return p.badValue("expected value")
}

func (p *Parser) badValue(message string) *ast.BadValue {
	at := p.makePosAt(p.resume)
	return &ast.BadValue{Bad: ast.BadNode{Pos: at, EndPos: at, Message: message}}
}

// parseBooleanLiteral parses: 'true' | 'false'
func (p *Parser) parseBooleanLiteral() *ast.BooleanLiteral {
	defer p.rule("BooleanLiteral")()

	tok := p.advance()
	return &ast.BooleanLiteral{
		Pos:    p.makePos(tok),
		EndPos: p.makeEndPos(tok),
		IsTrue: tok.Type == TRUE,
	}
}

// parseReference parses: ID
func (p *Parser) parseReference() *ast.Reference {
	defer p.rule("Reference")()

	ident := p.makeIdent(p.advance())
	return &ast.Reference{Pos: ident.Pos, EndPos: ident.EndPos, Referable: ident}
}
