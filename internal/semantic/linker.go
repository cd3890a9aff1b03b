package semantic

import (
	"mwe2/internal/ast"
	"mwe2/internal/errors"
	"mwe2/internal/types"
)

// Linker resolves the cross references of a parsed module. It runs in two
// passes: the first declares every property and named component, the second
// binds references and resolves types, features and modules.
type Linker struct {
	opts   Options
	module *ast.Module
	scope  *types.ImportScope
	result *Result

	used map[*ast.DeclaredProperty]bool
}

func NewLinker(opts Options) *Linker {
	return &Linker{opts: opts}
}

// Link links module with the given collaborators.
func Link(module *ast.Module, opts Options) *Result {
	return NewLinker(opts).Link(module)
}

// Link resolves module and returns the bindings and diagnostics. A Linker
// may be reused; each call starts from a clean state.
func (l *Linker) Link(module *ast.Module) *Result {
	l.module = module
	l.result = newResult(module)
	l.scope = types.NewImportScope(module.Imports)
	l.used = make(map[*ast.DeclaredProperty]bool)

	// Pass 1: declarations are visible module-wide before any reference is checked
	l.declareProperties()
	l.declareComponents()

	// Pass 2: references, types and features
	for i, prop := range module.Properties {
		l.linkDeclaredProperty(prop, i)
	}
	if module.Root != nil {
		l.linkComponent(module.Root, nil, valueContext{defaultOf: -1})
	}

	if l.opts.ReportUnused {
		l.reportUnused()
	}
	return l.result
}

func (l *Linker) declareProperties() {
	for i, prop := range l.module.Properties {
		name := prop.Name.Name()
		if name == "" {
			continue
		}
		if previous := l.result.Symbols.LookupLocal(name); previous != nil {
			l.addDuplicateError(name, prop.Name.Pos, previous)
			continue
		}
		symbol := l.result.Symbols.Define(name, SymbolProperty, prop, prop.Name.Pos)
		symbol.Order = i
	}
}

func (l *Linker) declareComponents() {
	for _, c := range ast.Components(l.module) {
		if c.Name == nil || c.Name.IsEmpty() {
			continue
		}
		name := c.Name.Name()
		if previous := l.result.Symbols.LookupLocal(name); previous != nil {
			l.addDuplicateError(name, c.Name.Pos, previous)
			continue
		}
		l.result.Symbols.Define(name, SymbolComponent, c, c.Name.Pos)
	}
}

func (l *Linker) linkDeclaredProperty(prop *ast.DeclaredProperty, index int) {
	if prop.Type != nil && !prop.Type.IsEmpty() {
		if t, ok := l.resolveType(prop.Type); ok {
			l.result.Types[prop] = t
		}
	}
	if prop.Default != nil {
		l.linkValue(prop.Default, nil, valueContext{defaultOf: index})
	}
}

// resolveType looks a written type name up through the module's imports.
// ok is false when no type resolver is configured or the name is unknown,
// in which case an error has been recorded for the latter.
func (l *Linker) resolveType(name *ast.FQN) (*types.TypeDescriptor, bool) {
	if l.opts.Types == nil {
		return nil, false
	}
	t, ok := l.scope.Resolve(l.opts.Types, name.Name())
	if !ok {
		l.addUnknownTypeError(name.Name(), name.Pos)
	}
	return t, ok
}

func (l *Linker) reportUnused() {
	for _, prop := range l.module.Properties {
		if l.used[prop] || prop.Name.IsEmpty() {
			continue
		}
		l.addCompilerError(errors.UnusedProperty(prop.Name.Name(), prop.Name.Pos))
	}
}
