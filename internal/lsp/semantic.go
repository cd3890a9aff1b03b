package lsp

import (
	"sort"
	"unicode/utf16"

	"mwe2/internal/ast"
	"mwe2/internal/parser"
	"mwe2/internal/semantic"
)

// SemanticTokenTypes is the token type legend advertised to the client
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"variable",
	"property",
	"keyword",
	"string",
	"comment",
	"operator",
}

// SemanticTokenModifiers is the token modifier legend advertised to the client
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

const (
	modDeclaration = 1 << iota
	modReadonly
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// span is a classified byte range of the document.
type span struct {
	start, end int
	tokenType  string
	modifiers  int
}

// collectSemanticTokens classifies keywords, strings and comments from the
// token stream and names from the tree. The two never overlap: names are
// taken from the tree only.
func collectSemanticTokens(doc *document) []SemanticToken {
	spans := lexicalSpans(doc.text)
	spans = append(spans, syntaxSpans(doc.parse.Module, doc.link)...)
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var tokens []SemanticToken
	for _, s := range spans {
		tokens = append(tokens, splitLines(doc.index, s)...)
	}
	return tokens
}

func lexicalSpans(text string) []span {
	var out []span
	afterInterpolation := false

	for _, tok := range parser.Tokenize(text) {
		typ := ""
		switch {
		case tok.Type == parser.EOF:
			continue
		case tok.Mode == parser.ModeString || tok.Type == parser.SINGLE_QUOTE || tok.Type == parser.DOUBLE_QUOTE:
			// the property name of ${name} comes from the tree
			if !(afterInterpolation && tok.Type == parser.IDENTIFIER) {
				typ = "string"
			}
			afterInterpolation = tok.Type == parser.DOLLAR_BRACE
		case tok.Type == parser.SL_COMMENT || tok.Type == parser.ML_COMMENT:
			typ = "comment"
		case tok.Type == parser.MODULE, tok.Type == parser.IMPORT, tok.Type == parser.VAR,
			tok.Type == parser.AUTO_INJECT, tok.Type == parser.TRUE, tok.Type == parser.FALSE:
			typ = "keyword"
		case tok.Type == parser.EQUAL, tok.Type == parser.AT, tok.Type == parser.COLON:
			typ = "operator"
		}
		if typ != "" {
			out = append(out, span{start: tok.Position.Offset, end: tok.End.Offset, tokenType: typ})
		}
	}
	return out
}

func syntaxSpans(module *ast.Module, link *semantic.Result) []span {
	var out []span
	idents := func(f *ast.FQN, typ string, mods int) {
		if f.IsEmpty() {
			return
		}
		for _, part := range f.Parts {
			out = append(out, identSpan(part, typ, mods))
		}
	}

	ast.Inspect(module, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Module:
			idents(n.CanonicalName, "namespace", modDeclaration)
		case *ast.Import:
			idents(n.Namespace, "namespace", 0)
		case *ast.DeclaredProperty:
			idents(n.Type, "type", 0)
			idents(n.Name, "variable", modDeclaration)
		case *ast.Component:
			idents(n.Type, "type", 0)
			idents(n.Module, "namespace", 0)
			idents(n.Name, "variable", modDeclaration|modReadonly)
		case *ast.Assignment:
			out = append(out, identSpan(n.Feature, "property", 0))
		case *ast.Reference:
			mods := 0
			if link != nil {
				if symbol, ok := link.Bindings[n]; ok && symbol.Kind == semantic.SymbolComponent {
					mods = modReadonly
				}
			}
			out = append(out, identSpan(n.Referable, "variable", mods))
		case *ast.PropertyReference:
			out = append(out, identSpan(n.Property, "variable", 0))
		}
		return true
	})

	// parse errors can leave empty identifiers behind
	filtered := out[:0]
	for _, s := range out {
		if s.end > s.start {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func identSpan(id ast.Ident, typ string, mods int) span {
	return span{start: id.Pos.Offset, end: id.EndPos.Offset, tokenType: typ, modifiers: mods}
}

// splitLines cuts a span at line breaks; tokens may not cross lines.
func splitLines(index *lineIndex, s span) []SemanticToken {
	var out []SemanticToken
	start := s.start
	for start < s.end {
		pos := index.position(start)
		lineEnd := index.lineEnd(int(pos.Line))
		end := min(s.end, lineEnd)

		length := 0
		for _, r := range index.text[start:end] {
			length += utf16.RuneLen(r)
		}
		if length > 0 {
			out = append(out, SemanticToken{
				Line:           pos.Line,
				StartChar:      pos.Character,
				Length:         uint32(length),
				TokenType:      indexOf(s.tokenType, SemanticTokenTypes),
				TokenModifiers: s.modifiers,
			})
		}
		start = lineEnd + 1
	}
	return out
}

// encodeSemanticTokens encodes tokens into the LSP wire format using
// delta-line, delta-start compression
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.StartChar
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}
	return data
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
