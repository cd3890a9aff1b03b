package semantic

import (
	"mwe2/internal/ast"
	"mwe2/internal/errors"
	"mwe2/internal/types"
)

// valueContext describes where a value appears. defaultOf is the index of
// the property whose default is being linked, or -1 inside components.
type valueContext struct {
	defaultOf int
}

func (l *Linker) linkValue(v ast.Value, feature *types.PropertyDescriptor, ctx valueContext) {
	switch v := v.(type) {
	case *ast.Component:
		l.linkComponent(v, feature, ctx)
	case *ast.StringLiteral:
		if v.Value != nil {
			for _, part := range v.Value.Parts {
				if ref, ok := part.(*ast.PropertyReference); ok {
					l.linkPropertyReference(ref, ctx)
				}
			}
		}
	case *ast.Reference:
		l.linkReference(v, ctx)
	}
}

// linkReference binds a bare reference to a property or named component.
func (l *Linker) linkReference(ref *ast.Reference, ctx valueContext) {
	name := ref.Referable.Value
	if name == "" {
		return
	}
	symbol := l.result.Symbols.Lookup(name)
	if symbol == nil {
		l.addUnresolvedReferenceError(name, ref.Referable.Pos)
		return
	}
	l.bind(ref, symbol, ref.Referable.Pos, ctx)
}

// linkPropertyReference binds ${name}, which may only name a property.
func (l *Linker) linkPropertyReference(ref *ast.PropertyReference, ctx valueContext) {
	name := ref.Property.Value
	if name == "" {
		return
	}
	symbol := l.result.Symbols.Lookup(name)
	if symbol == nil || symbol.Kind != SymbolProperty {
		l.addUnresolvedPropertyError(name, ref.Property.Pos)
		return
	}
	l.bind(ref, symbol, ref.Property.Pos, ctx)
}

// bind records the binding. Inside a property default only properties
// declared earlier are visible, which rules out cycles between defaults.
func (l *Linker) bind(ref ast.Node, symbol *Symbol, pos ast.Position, ctx valueContext) {
	if ctx.defaultOf >= 0 && (symbol.Kind == SymbolComponent || symbol.Order >= ctx.defaultOf) {
		l.addCompilerError(errors.ForwardReference(symbol.Name, pos, symbol.Position))
		return
	}
	l.result.Bindings[ref] = symbol
	if prop := symbol.Property(); prop != nil {
		l.used[prop] = true
	}
}
