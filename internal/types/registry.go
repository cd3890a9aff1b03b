package types

import (
	"fmt"
	"sort"
)

// PropertyDescriptor describes one assignable feature of a component type.
type PropertyDescriptor struct {
	Name  string
	Type  string // fully qualified name of the accepted value type
	Multi bool   // assigned through an adder, so repeated assignments append
	Owner string // type that declares the property
}

// Accessor returns the name of the method an assignment maps to:
// "addName" for multi-valued features, "setName" otherwise.
func (p *PropertyDescriptor) Accessor() string {
	if p.Multi {
		return AdderName(p.Name)
	}
	return SetterName(p.Name)
}

// TypeDescriptor describes a component type known to the toolchain.
type TypeDescriptor struct {
	Name       string
	Super      string
	Abstract   bool
	Properties map[string]*PropertyDescriptor // declared here, not inherited
}

// SimpleName returns the unqualified type name.
func (t *TypeDescriptor) SimpleName() string {
	return SimpleName(t.Name)
}

// TypeResolver looks up component types by fully qualified name.
type TypeResolver interface {
	ResolveType(name string) (*TypeDescriptor, bool)
}

// FeatureResolver looks up the assignable features of a type, including
// those inherited from its supertypes.
type FeatureResolver interface {
	ResolveFeature(t *TypeDescriptor, name string) (*PropertyDescriptor, bool)
	Features(t *TypeDescriptor) []*PropertyDescriptor
}

// Resolver combines type and feature resolution with enumeration of the
// known type names, which completion and suggestions need.
type Resolver interface {
	TypeResolver
	FeatureResolver
	TypeNames() []string
}

// Catalog is a static Resolver backed by type descriptors. It is not safe
// for concurrent mutation; build it fully before sharing it.
type Catalog struct {
	types map[string]*TypeDescriptor
}

// NewCatalog creates a catalog that already knows the builtin types.
func NewCatalog() *Catalog {
	c := &Catalog{types: make(map[string]*TypeDescriptor)}
	for _, t := range builtinTypes() {
		c.types[t.Name] = t
	}
	return c
}

// Add registers a type. Declaring the same type twice is an error, except
// that a catalog may redefine a builtin.
func (c *Catalog) Add(t *TypeDescriptor) error {
	if t.Name == "" {
		return fmt.Errorf("type without a name")
	}
	if existing, ok := c.types[t.Name]; ok && !IsBuiltin(existing.Name) {
		return fmt.Errorf("type %s is declared twice", t.Name)
	}
	if t.Properties == nil {
		t.Properties = make(map[string]*PropertyDescriptor)
	}
	for name, p := range t.Properties {
		if p.Owner == "" {
			p.Owner = t.Name
		}
		if p.Name == "" {
			p.Name = name
		}
	}
	c.types[t.Name] = t
	return nil
}

// Merge adds every type of other that is not a builtin.
func (c *Catalog) Merge(other *Catalog) error {
	for _, name := range other.TypeNames() {
		if IsBuiltin(name) {
			continue
		}
		if err := c.Add(other.types[name]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) ResolveType(name string) (*TypeDescriptor, bool) {
	t, ok := c.types[name]
	return t, ok
}

// ResolveFeature finds name on t or the nearest supertype declaring it.
func (c *Catalog) ResolveFeature(t *TypeDescriptor, name string) (*PropertyDescriptor, bool) {
	for _, cur := range c.hierarchy(t) {
		if p, ok := cur.Properties[name]; ok {
			return p, true
		}
	}
	return nil, false
}

// Features lists all features of t sorted by name. A feature redeclared by a
// subtype hides the inherited one.
func (c *Catalog) Features(t *TypeDescriptor) []*PropertyDescriptor {
	seen := make(map[string]bool)
	var out []*PropertyDescriptor
	for _, cur := range c.hierarchy(t) {
		for name, p := range cur.Properties {
			if !seen[name] {
				seen[name] = true
				out = append(out, p)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TypeNames returns all known type names in sorted order.
func (c *Catalog) TypeNames() []string {
	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of known types, builtins included.
func (c *Catalog) Len() int {
	return len(c.types)
}

// hierarchy returns t followed by its supertypes, stopping at an unknown
// supertype or a cycle.
func (c *Catalog) hierarchy(t *TypeDescriptor) []*TypeDescriptor {
	if t == nil {
		return nil
	}
	visited := map[string]bool{t.Name: true}
	chain := []*TypeDescriptor{t}
	for cur := t; cur.Super != ""; {
		next, ok := c.types[cur.Super]
		if !ok || visited[next.Name] {
			break
		}
		visited[next.Name] = true
		chain = append(chain, next)
		cur = next
	}
	return chain
}

// IsSubtype reports whether t is super or inherits from it.
func (c *Catalog) IsSubtype(t *TypeDescriptor, super string) bool {
	for _, cur := range c.hierarchy(t) {
		if cur.Name == super {
			return true
		}
	}
	return false
}
