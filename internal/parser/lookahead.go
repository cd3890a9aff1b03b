package parser

import "mwe2/internal/errors"

// scanFQN looks at ID ('.' ID)* starting k tokens ahead and returns the
// lookahead index just past it.
func (p *Parser) scanFQN(k int) (int, bool) {
	if p.peekN(k).Type != IDENTIFIER {
		return k, false
	}
	k++
	for k+1 < p.maxLookahead && p.peekN(k).Type == DOT && p.peekN(k+1).Type == IDENTIFIER {
		k += 2
	}
	return k, true
}

// declaredPropertyHasType decides, with the 'var' keyword already consumed,
// whether the declaration is 'var Type name' or 'var name'. Both are FQNs, so
// the decision looks past the first FQN:
//
//	var a.B x = ...   FQN FQN followed by '=', 'var', '@', an identifier or EOF
//	var x = ...       FQN followed by '=', 'var', '@' or EOF
//	var x Root {      the second FQN starts the root component
//
// When the tokens after the second FQN fit neither reading, or the scan runs
// past the lookahead bound, the input is reported as ambiguous and the
// declaration is read as typed.
func (p *Parser) declaredPropertyHasType() bool {
	first, ok := p.scanFQN(0)
	if !ok {
		return false
	}
	if p.peekN(first).Type == DOT && first+1 >= p.maxLookahead {
		p.errorAtCurrent(errors.ErrorAmbiguousDeclaration,
			"declaration is too long to decide whether it has a type", nil)
		return true
	}
	if p.peekN(first).Type != IDENTIFIER {
		return false
	}

	second, _ := p.scanFQN(first)
	if second >= p.maxLookahead-1 {
		p.errorAtCurrent(errors.ErrorAmbiguousDeclaration,
			"declaration is too long to decide whether it has a type", nil)
		return true
	}

	switch p.peekN(second).Type {
	case COLON, AUTO_INJECT, LEFT_BRACE:
		return false
	case IDENTIFIER, VAR, EQUAL, AT, EOF:
		return true
	}

	tok := p.peekN(second)
	p.errorAtToken(tok, errors.ErrorAmbiguousDeclaration,
		"cannot tell whether this declaration has a type: unexpected "+tok.Type.Display(),
		[]TokenType{EQUAL, VAR, IDENTIFIER, LEFT_BRACE})
	return true
}
