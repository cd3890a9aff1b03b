package semantic

import (
	"mwe2/internal/ast"
	"mwe2/internal/errors"
	"mwe2/internal/types"
)

func (l *Linker) addCompilerError(err errors.CompilerError) {
	l.result.Errors = append(l.result.Errors, err)
}

func (l *Linker) addDuplicateError(name string, pos ast.Position, previous *Symbol) {
	l.addCompilerError(errors.DuplicateDeclaration(name, pos, previous.Position))
}

func (l *Linker) addUnresolvedReferenceError(name string, pos ast.Position) {
	// suggest any declared name, property or component
	similar := errors.FindSimilarNames(name, l.result.Symbols.Names())
	l.addCompilerError(errors.UnresolvedReference(name, pos, similar))
}

func (l *Linker) addUnresolvedPropertyError(name string, pos ast.Position) {
	similar := errors.FindSimilarNames(name, l.result.Symbols.Names(SymbolProperty))
	l.addCompilerError(errors.UnresolvedProperty(name, pos, similar))
}

func (l *Linker) addUnknownTypeError(name string, pos ast.Position) {
	similar := errors.FindSimilarNames(name, l.scope.Visible(l.opts.Types))
	l.addCompilerError(errors.UnknownType(name, pos, similar))
}

func (l *Linker) addUnknownFeatureError(t *types.TypeDescriptor, feature string, pos ast.Position) {
	var available []string
	for _, f := range l.opts.Types.Features(t) {
		available = append(available, f.Name)
	}
	l.addCompilerError(errors.UnknownFeature(t.SimpleName(), feature, pos, available))
}

func (l *Linker) addUnknownModulePropertyError(module *ast.Module, feature string, pos ast.Position) {
	var available []string
	for _, p := range module.Properties {
		available = append(available, p.Name.Name())
	}
	l.addCompilerError(errors.UnknownFeature("@"+module.CanonicalName.Name(), feature, pos, available))
}

func (l *Linker) addUnresolvedModuleError(name string, pos ast.Position) {
	similar := errors.FindSimilarNames(name, l.opts.Modules.ModuleNames())
	l.addCompilerError(errors.UnresolvedModule(name, pos, similar))
}
