package parser

import (
	"mwe2/internal/ast"
	"mwe2/internal/errors"
)

// parseImport parses: 'import' FQN ('.*')?
func (p *Parser) parseImport() *ast.Import {
	defer p.rule("Import")()

	start := p.advance() // import
	imp := &ast.Import{Pos: p.makePos(start), EndPos: p.makeEndPos(start)}

	if !p.check(IDENTIFIER) {
		p.errorAtCurrent(errors.ErrorMissingToken, "expected namespace after 'import'", []TokenType{IDENTIFIER})
		imp.Namespace = &ast.FQN{Pos: imp.EndPos, EndPos: imp.EndPos}
		return imp
	}

	imp.Namespace, imp.Wildcard = p.parseImportedFQN()
	imp.EndPos = p.makeEndPos(p.previous())
	return imp
}

// parseImportedFQN parses: FQN ('.*')?
func (p *Parser) parseImportedFQN() (*ast.FQN, bool) {
	defer p.rule("ImportedFQN")()

	name := p.parseFQN()
	return name, p.match(WILDCARD)
}

// parseDeclaredProperty parses: 'var' FQN? FQN ('=' Value)?
func (p *Parser) parseDeclaredProperty() *ast.DeclaredProperty {
	defer p.rule("DeclaredProperty")()

	start := p.advance() // var
	prop := &ast.DeclaredProperty{Pos: p.makePos(start)}

	if !p.check(IDENTIFIER) {
		p.errorAtCurrent(errors.ErrorMissingToken, "expected property name after 'var'", []TokenType{IDENTIFIER})
		prop.Name = &ast.FQN{Pos: p.makeEndPos(start), EndPos: p.makeEndPos(start)}
		prop.EndPos = p.makeEndPos(start)
		p.synchronize(topLevelStarts...)
		return prop
	}

	hasType := p.declaredPropertyHasType()
	first := p.parseFQN()
	if hasType && p.check(IDENTIFIER) {
		prop.Type = first
		prop.Name = p.parseFQN()
	} else {
		prop.Name = first
	}

	if p.match(EQUAL) {
		prop.Default = p.parseValue()
	}

	prop.EndPos = p.makeEndPos(p.previous())
	return prop
}

// parseFQN parses: ID ('.' ID)*
func (p *Parser) parseFQN() *ast.FQN {
	defer p.rule("FQN")()

	first, _ := p.consumeIdent(errors.ErrorMissingToken, "expected identifier")
	name := &ast.FQN{Pos: first.Pos, EndPos: first.EndPos, Parts: []ast.Ident{first}}

	for p.check(DOT) {
		p.advance()
		part, ok := p.consumeIdent(errors.ErrorMissingToken, "expected identifier after '.'")
		if !ok {
			break
		}
		name.Parts = append(name.Parts, part)
		name.EndPos = part.EndPos
	}
	return name
}
