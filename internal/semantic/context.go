package semantic

import (
	"mwe2/internal/ast"
	"mwe2/internal/errors"
	"mwe2/internal/types"
)

// ModuleResolver finds other modules by canonical name for '@module'
// component references.
type ModuleResolver interface {
	ResolveModule(name string) (*ast.Module, bool)
	ModuleNames() []string
}

// Options selects the collaborators a link pass uses. A nil resolver
// disables the checks that need it.
type Options struct {
	Types   types.Resolver
	Modules ModuleResolver

	// ReportUnused warns about declared properties nothing references.
	// Off by default: properties may be set from outside the module.
	ReportUnused bool
}

// Result holds everything a link pass learned about one module.
type Result struct {
	Module *ast.Module

	// Bindings maps *ast.Reference and *ast.PropertyReference nodes to the
	// declaration they name.
	Bindings map[ast.Node]*Symbol

	// Types maps *ast.Component and *ast.DeclaredProperty nodes to their
	// resolved type. A component without a type takes the declared type of
	// the feature it is assigned to.
	Types map[ast.Node]*types.TypeDescriptor

	// Features maps assignments to the feature they set.
	Features map[*ast.Assignment]*types.PropertyDescriptor

	// Modules maps '@module' components to the module they instantiate.
	Modules map[*ast.Component]*ast.Module

	Symbols *SymbolTable
	Errors  []errors.CompilerError
}

func newResult(module *ast.Module) *Result {
	return &Result{
		Module:   module,
		Bindings: make(map[ast.Node]*Symbol),
		Types:    make(map[ast.Node]*types.TypeDescriptor),
		Features: make(map[*ast.Assignment]*types.PropertyDescriptor),
		Modules:  make(map[*ast.Component]*ast.Module),
		Symbols:  NewSymbolTable(nil),
	}
}

// Diagnostics returns the link diagnostics ordered by position.
func (r *Result) Diagnostics() []errors.CompilerError {
	out := append([]errors.CompilerError(nil), r.Errors...)
	errors.Sort(out)
	return out
}

// HasErrors reports whether linking produced any error-level diagnostic.
func (r *Result) HasErrors() bool {
	return errors.HasErrors(r.Errors)
}

// Definition returns the declaration node a reference resolves to.
func (r *Result) Definition(ref ast.Node) ast.Node {
	if symbol, ok := r.Bindings[ref]; ok {
		return symbol.Node
	}
	return nil
}

// Uses returns the reference nodes bound to the declaration decl.
func (r *Result) Uses(decl ast.Node) []ast.Node {
	var out []ast.Node
	ast.Inspect(r.Module, func(n ast.Node) bool {
		if symbol, ok := r.Bindings[n]; ok && symbol.Node == decl {
			out = append(out, n)
		}
		return true
	})
	return out
}
