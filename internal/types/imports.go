package types

import (
	"strings"

	"mwe2/internal/ast"
)

// ImportScope expands the simple type names a module uses into fully
// qualified candidates according to its imports.
//
//	import a.b.X    makes X resolve to a.b.X
//	import a.b.*    makes any X resolve to a.b.X
type ImportScope struct {
	exact     map[string]string
	wildcards []string
}

// NewImportScope builds the scope of a module's imports. Imports with an
// empty namespace, left behind by parse errors, are ignored.
func NewImportScope(imports []*ast.Import) *ImportScope {
	scope := &ImportScope{exact: make(map[string]string)}
	for _, imp := range imports {
		name := imp.Namespace.Name()
		if name == "" {
			continue
		}
		if imp.Wildcard {
			scope.wildcards = append(scope.wildcards, name)
			continue
		}
		scope.exact[SimpleName(name)] = name
	}
	return scope
}

// Candidates returns the fully qualified names name may denote, in lookup
// order: the name itself, a builtin alias, an exact import, then every
// wildcard import in declaration order. A qualified name whose first
// segment matches an exact import is expanded through it as well.
func (s *ImportScope) Candidates(name string) []string {
	out := []string{name}
	if full := Canonical(name); full != name {
		out = append(out, full)
	}

	head, rest, qualified := strings.Cut(name, ".")
	if full, ok := s.exact[head]; ok {
		if qualified {
			out = append(out, full+"."+rest)
		} else {
			out = append(out, full)
		}
	}
	for _, ns := range s.wildcards {
		out = append(out, ns+"."+name)
	}
	return out
}

// Resolve looks name up through the scope and returns the first type r knows.
func (s *ImportScope) Resolve(r TypeResolver, name string) (*TypeDescriptor, bool) {
	for _, candidate := range s.Candidates(name) {
		if t, ok := r.ResolveType(candidate); ok {
			return t, true
		}
	}
	return nil, false
}

// Visible returns the simple names under which the known types are
// reachable from this scope, used for completion.
func (s *ImportScope) Visible(r Resolver) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	for _, full := range r.TypeNames() {
		simple := SimpleName(full)
		if s.exact[simple] == full {
			add(simple)
			continue
		}
		if ns, ok := namespaceOf(full); ok && containsString(s.wildcards, ns) {
			add(simple)
			continue
		}
		add(full)
	}
	return out
}

func namespaceOf(name string) (string, bool) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", false
	}
	return name[:i], true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
