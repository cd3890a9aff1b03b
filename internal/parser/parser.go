package parser

import (
	"context"
	"strings"

	"mwe2/internal/ast"
	"mwe2/internal/errors"
)

// DefaultMaxLookahead bounds the token scan used to decide whether a 'var'
// declaration carries a type.
const DefaultMaxLookahead = 64

// buffered is a lookahead token together with the hidden tokens that
// preceded it. Hidden tokens are committed only once the token is consumed,
// so speculative lookahead never records comments twice or from the wrong mode.
type buffered struct {
	tok    Token
	hidden []Token
}

// Parser is a recursive-descent parser for MWE2 modules. It pulls tokens
// lazily from a Scanner in the mode the active rule needs; switching modes
// drops the lookahead buffer and rescans from the end of the last consumed token.
type Parser struct {
	filename string
	source   string
	scanner  *Scanner
	mode     Mode
	buf      []buffered
	prev     Token
	resume   Position

	ctx       context.Context
	cancelled bool

	rules        []string
	maxLookahead int

	comments      []*ast.Comment
	seenComments  map[int]bool
	errors        []ParseError
	scanErrors    []ScanError
	lastErrorAt   int
	lastErrorCode string
}

func NewParser(filename, source string) *Parser {
	return &Parser{
		filename:     filename,
		source:       source,
		scanner:      NewScanner(source),
		resume:       Position{Line: 1, Column: 1},
		maxLookahead: DefaultMaxLookahead,
		seenComments: make(map[int]bool),
		lastErrorAt:  -1,
	}
}

// WithContext makes the parser stop at the next rule boundary once ctx is done.
func (p *Parser) WithContext(ctx context.Context) *Parser {
	p.ctx = ctx
	return p
}

// WithMaxLookahead overrides the bound used by the 'var' type decision.
func (p *Parser) WithMaxLookahead(n int) *Parser {
	if n > 0 {
		p.maxLookahead = n
	}
	return p
}

// Errors returns the parse diagnostics collected so far.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// ScanErrors returns lexical errors of tokens the parser consumed.
func (p *Parser) ScanErrors() []ScanError {
	return p.scanErrors
}

// Cancelled reports whether parsing stopped because the context ended.
func (p *Parser) Cancelled() bool {
	return p.cancelled
}

// rule marks entry into a grammar rule and checks for cancellation. Use as
// `defer p.rule("Component")()`.
func (p *Parser) rule(name string) func() {
	if !p.cancelled && p.ctx != nil && p.ctx.Err() != nil {
		p.cancelled = true
		p.buf = nil
	}
	p.rules = append(p.rules, name)
	return func() { p.rules = p.rules[:len(p.rules)-1] }
}

func (p *Parser) currentRule() string {
	if len(p.rules) == 0 {
		return ""
	}
	return p.rules[len(p.rules)-1]
}

// setMode switches the scanner mode. Tokens already buffered were classified
// in the old mode, so they are dropped and rescanned.
func (p *Parser) setMode(mode Mode) {
	if p.mode == mode {
		return
	}
	p.mode = mode
	p.buf = nil
	p.scanner.Reset(p.resume)
}

// fill makes sure at least n tokens are buffered.
func (p *Parser) fill(n int) {
	for len(p.buf) < n {
		var hidden []Token
		for {
			tok := p.scanner.Next(p.mode)
			if p.mode == ModeStructural && tok.Type.IsHidden() {
				hidden = append(hidden, tok)
				continue
			}
			p.buf = append(p.buf, buffered{tok: tok, hidden: hidden})
			break
		}
	}
}

// peekN returns the token k positions ahead of the current one.
func (p *Parser) peekN(k int) Token {
	if p.cancelled {
		return Token{Type: EOF, Position: p.resume, End: p.resume}
	}
	p.fill(k + 1)
	return p.buf[k].tok
}

// commitHidden records the comments that precede the current token.
func (p *Parser) commitHidden(item buffered) {
	for _, h := range item.hidden {
		if h.Type == WS || p.seenComments[h.Position.Offset] {
			continue
		}
		p.seenComments[h.Position.Offset] = true

		block := h.Type == ML_COMMENT
		if block && (len(h.Lexeme) < 4 || !strings.HasSuffix(h.Lexeme, "*/")) {
			p.scanErrors = append(p.scanErrors, ScanError{
				Message:  "unterminated block comment",
				Position: h.Position,
				Length:   len(h.Lexeme),
			})
		}
		p.comments = append(p.comments, &ast.Comment{
			Pos:    p.makePosAt(h.Position),
			EndPos: p.makePosAt(h.End),
			Text:   strings.TrimRight(h.Lexeme, "\r\n"),
			Block:  block,
		})
	}
}

// ParseModule parses a complete source unit. It always returns a module,
// possibly partial, and records diagnostics instead of failing.
func (p *Parser) ParseModule() *ast.Module {
	defer p.rule("Module")()

	module := &ast.Module{Pos: p.makePos(p.peek())}

	if _, ok := p.consume(MODULE, errors.ErrorMissingToken, "expected 'module' at start of file"); !ok && p.check(IDENTIFIER) && !p.startsComponentAfterFQN() {
		// The keyword is missing but a name follows; take it as the module name.
		module.CanonicalName = p.parseFQN()
	} else if ok {
		module.CanonicalName = p.parseModuleName()
	}
	if module.CanonicalName == nil {
		module.CanonicalName = &ast.FQN{Pos: p.makePos(p.peek()), EndPos: p.makePos(p.peek())}
	}

	p.parseModuleBody(module)

	if !p.check(EOF) {
		tok := p.peek()
		p.report(errors.Error, errors.ErrorTrailingInput, "unexpected input after the root component",
			tok, tok.Position, len(p.source)-tok.Position.Offset, nil)
	} else if !p.cancelled {
		p.fill(1)
		p.commitHidden(p.buf[0])
	}

	module.Comments = p.comments
	module.EndPos = p.makePosAt(p.resume)
	return module
}

// startsComponentAfterFQN reports whether the FQN at the current token is
// followed by a component header or body.
func (p *Parser) startsComponentAfterFQN() bool {
	i, ok := p.scanFQN(0)
	if !ok {
		return false
	}
	switch p.peekN(i).Type {
	case LEFT_BRACE, COLON, AUTO_INJECT:
		return true
	}
	return false
}

func (p *Parser) parseModuleName() *ast.FQN {
	if p.check(IDENTIFIER) {
		return p.parseFQN()
	}
	p.errorAtCurrent(errors.ErrorMissingModuleName, "expected module name after 'module'", []TokenType{IDENTIFIER})
	return nil
}

var topLevelStarts = []TokenType{IMPORT, VAR, IDENTIFIER, AT, COLON, AUTO_INJECT, LEFT_BRACE}

// parseModuleBody parses imports, declared properties and the root component,
// resynchronizing on the start of the next top-level construct after errors.
func (p *Parser) parseModuleBody(module *ast.Module) {
	for !p.check(EOF) {
		switch {
		case p.check(IMPORT):
			imp := p.parseImport()
			if len(module.Properties) > 0 {
				p.errorAt(imp.Pos, imp.EndPos, errors.ErrorUnexpectedToken, "imports must come before property declarations", nil)
			}
			module.Imports = append(module.Imports, imp)

		case p.check(VAR):
			module.Properties = append(module.Properties, p.parseDeclaredProperty())

		case p.isComponentStart():
			module.Root = p.parseComponent(true)
			return

		default:
			p.errorAtCurrent(errors.ErrorUnexpectedToken,
				"unexpected "+p.peek().Type.Display()+"; expected 'import', 'var' or the root component", topLevelStarts)
			p.synchronize(topLevelStarts...)
		}
	}
	if module.Root == nil {
		p.errorAtCurrent(errors.ErrorMissingToken, "expected root component", nil)
	}
}

func (p *Parser) isComponentStart() bool {
	switch p.peek().Type {
	case IDENTIFIER, AT, COLON, AUTO_INJECT, LEFT_BRACE:
		return true
	}
	return false
}
