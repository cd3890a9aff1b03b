package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"mwe2/internal/ast"
	"mwe2/internal/semantic"
	"mwe2/internal/types"
)

// completionContext is what the text before the cursor expects.
type completionContext int

const (
	completeTopLevel completionContext = iota
	completeInterpolation
	completeFeature
	completeValue
	completeNone
)

// completion computes the proposals at a byte offset of doc.
func (h *Handler) completion(doc *document, offset int) []protocol.CompletionItem {
	module := doc.parse.Module
	kind, component := classify(doc, offset)

	var items []protocol.CompletionItem
	switch kind {
	case completeInterpolation:
		items = append(items, symbolItems(doc.link, semantic.SymbolProperty)...)

	case completeFeature:
		items = append(items, h.featureItems(doc, component)...)

	case completeValue:
		items = append(items, symbolItems(doc.link, semantic.SymbolProperty, semantic.SymbolComponent)...)
		items = append(items, keywordItems("true", "false")...)
		items = append(items, h.typeItems(module)...)
		items = append(items, h.moduleItems(doc)...)

	case completeTopLevel:
		if module.CanonicalName.IsEmpty() {
			items = append(items, keywordItems("module")...)
		}
		items = append(items, keywordItems("import", "var")...)
		items = append(items, h.typeItems(module)...)
		items = append(items, h.moduleItems(doc)...)
	}
	return items
}

// classify inspects the source before offset. For feature and value
// positions, the enclosing component is returned as well.
func classify(doc *document, offset int) (completionContext, *ast.Component) {
	module := doc.parse.Module
	if str := stringAt(module, offset); str != nil {
		before := doc.text[str.Pos.Offset:offset]
		if i := strings.LastIndex(before, "${"); i >= 0 && !strings.Contains(before[i:], "}") {
			return completeInterpolation, nil
		}
		return completeNone, nil
	}

	component := componentAt(doc.text, module, offset)
	if component == nil {
		return completeTopLevel, nil
	}

	// skip the word being typed and look at what precedes it
	i := offset
	for i > 0 && isIdentByte(doc.text[i-1]) {
		i--
	}
	prev := strings.TrimRight(doc.text[:i], " \t\r\n")
	if strings.HasSuffix(prev, "=") {
		return completeValue, component
	}
	return completeFeature, component
}

// stringAt returns the string literal containing offset. An unterminated
// literal extends to the end of its line.
func stringAt(module *ast.Module, offset int) *ast.StringLiteral {
	var found *ast.StringLiteral
	ast.Inspect(module, func(n ast.Node) bool {
		if s, ok := n.(*ast.StringLiteral); ok && s.Pos.Offset < offset {
			terminated := s.Value != nil && s.Value.End != ast.NoQuote
			if offset < s.EndPos.Offset || (!terminated && offset <= s.EndPos.Offset) {
				found = s
			}
		}
		return true
	})
	return found
}

// componentAt returns the innermost component whose body contains offset.
func componentAt(text string, module *ast.Module, offset int) *ast.Component {
	var found *ast.Component
	for _, c := range ast.Components(module) {
		if c.Pos.Offset > offset || offset > c.EndPos.Offset {
			continue
		}
		brace := strings.IndexByte(text[c.Pos.Offset:offset], '{')
		if brace < 0 {
			continue
		}
		// a closed body ends before its closing brace
		if offset == c.EndPos.Offset && c.EndPos.Offset > 0 && text[c.EndPos.Offset-1] == '}' {
			continue
		}
		if found == nil || c.Pos.Offset >= found.Pos.Offset {
			found = c
		}
	}
	return found
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '^' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (h *Handler) featureItems(doc *document, c *ast.Component) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	if module, ok := doc.link.Modules[c]; ok {
		for _, prop := range module.Properties {
			if prop.Name.IsEmpty() {
				continue
			}
			items = append(items, item(prop.Name.Name(), protocol.CompletionItemKindProperty, module.CanonicalName.Name()))
		}
		return items
	}

	t, ok := doc.link.Types[c]
	if !ok || h.types == nil {
		return nil
	}
	for _, f := range h.types.Features(t) {
		detail := f.Type
		if f.Multi {
			detail += " (multi)"
		}
		items = append(items, item(f.Name, protocol.CompletionItemKindProperty, detail))
	}
	return items
}

func (h *Handler) typeItems(module *ast.Module) []protocol.CompletionItem {
	if h.types == nil {
		return nil
	}
	var items []protocol.CompletionItem
	for _, name := range types.NewImportScope(module.Imports).Visible(h.types) {
		items = append(items, item(name, protocol.CompletionItemKindClass, ""))
	}
	return items
}

func (h *Handler) moduleItems(doc *document) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	self := doc.parse.Module.CanonicalName.Name()
	for _, name := range h.modules().ModuleNames() {
		if name == self {
			continue
		}
		it := item("@"+name, protocol.CompletionItemKindModule, "")
		it.InsertText = ptrString("@" + name + " {}")
		items = append(items, it)
	}
	return items
}

func symbolItems(link *semantic.Result, kinds ...semantic.SymbolKind) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for _, name := range link.Symbols.Names(kinds...) {
		symbol := link.Symbols.Lookup(name)
		kind := protocol.CompletionItemKindVariable
		if symbol.Kind == semantic.SymbolComponent {
			kind = protocol.CompletionItemKindReference
		}
		items = append(items, item(name, kind, symbol.Kind.String()))
	}
	return items
}

func keywordItems(keywords ...string) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0, len(keywords))
	for _, kw := range keywords {
		items = append(items, item(kw, protocol.CompletionItemKindKeyword, ""))
	}
	return items
}

func item(label string, kind protocol.CompletionItemKind, detail string) protocol.CompletionItem {
	it := protocol.CompletionItem{Label: label, Kind: &kind}
	if detail != "" {
		it.Detail = ptrString(detail)
	}
	return it
}
