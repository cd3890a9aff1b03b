package semantic

import (
	"mwe2/internal/ast"
	"mwe2/internal/errors"
	"mwe2/internal/types"
)

// linkComponent resolves the type or module a component instantiates and
// links its assignments. expected is the feature the component is assigned
// to, or nil for the root.
func (l *Linker) linkComponent(c *ast.Component, expected *types.PropertyDescriptor, ctx valueContext) {
	var (
		t      *types.TypeDescriptor
		module *ast.Module
	)

	switch {
	case c.Module != nil:
		module = l.linkModuleReference(c)
	case c.Type != nil && !c.Type.IsEmpty():
		if resolved, ok := l.resolveType(c.Type); ok {
			t = resolved
			if t.Abstract {
				l.addCompilerError(errors.AbstractType(c.Type.Name(), c.Type.Pos))
			}
		}
	case expected != nil && l.opts.Types != nil:
		// an untyped component takes the type of the feature it is assigned to
		if inferred, ok := l.opts.Types.ResolveType(expected.Type); ok {
			t = inferred
		}
	}
	if t != nil {
		l.result.Types[c] = t
	}

	first := make(map[string]*ast.Assignment)
	for _, a := range c.Assignments {
		feature := l.linkAssignment(a, t, module)

		name := a.Feature.Value
		if prev, seen := first[name]; seen {
			if feature != nil && !feature.Multi {
				l.addCompilerError(errors.RepeatedAssignment(name, a.Feature.Pos, prev.Feature.Pos))
			}
		} else {
			first[name] = a
		}

		l.linkValue(a.Value, feature, ctx)
	}
}

// linkAssignment resolves the feature an assignment sets. For '@module'
// components the features are the declared properties of that module.
func (l *Linker) linkAssignment(a *ast.Assignment, t *types.TypeDescriptor, module *ast.Module) *types.PropertyDescriptor {
	name := a.Feature.Value
	if name == "" {
		return nil
	}

	switch {
	case module != nil:
		for _, prop := range module.Properties {
			if prop.Name.Name() == name {
				feature := &types.PropertyDescriptor{Name: name, Owner: module.CanonicalName.Name()}
				if prop.Type != nil {
					feature.Type = prop.Type.Name()
				}
				l.result.Features[a] = feature
				return feature
			}
		}
		l.addUnknownModulePropertyError(module, name, a.Feature.Pos)

	case t != nil:
		if feature, ok := l.opts.Types.ResolveFeature(t, name); ok {
			l.result.Features[a] = feature
			return feature
		}
		l.addUnknownFeatureError(t, name, a.Feature.Pos)
	}
	return nil
}

func (l *Linker) linkModuleReference(c *ast.Component) *ast.Module {
	if l.opts.Modules == nil || c.Module.IsEmpty() {
		return nil
	}
	name := c.Module.Name()
	module, ok := l.opts.Modules.ResolveModule(name)
	if !ok {
		l.addUnresolvedModuleError(name, c.Module.Pos)
		return nil
	}
	l.result.Modules[c] = module

	// the component has the type of the referenced module's root
	if l.opts.Types != nil && module.Root != nil && module.Root.Type != nil {
		scope := types.NewImportScope(module.Imports)
		if t, ok := scope.Resolve(l.opts.Types, module.Root.Type.Name()); ok {
			l.result.Types[c] = t
		}
	}
	return module
}
