package semantic

import (
	"sort"

	"mwe2/internal/ast"
)

type SymbolKind int

const (
	SymbolProperty SymbolKind = iota
	SymbolComponent
)

func (k SymbolKind) String() string {
	if k == SymbolComponent {
		return "component"
	}
	return "property"
}

type Symbol struct {
	Name     string
	Kind     SymbolKind
	Node     ast.Node // *ast.DeclaredProperty or *ast.Component
	Position ast.Position
	Order    int // declaration order among properties, -1 for components
}

// Property returns the declaration of a property symbol, or nil.
func (s *Symbol) Property() *ast.DeclaredProperty {
	p, _ := s.Node.(*ast.DeclaredProperty)
	return p
}

// Component returns the named component of a component symbol, or nil.
func (s *Symbol) Component() *ast.Component {
	c, _ := s.Node.(*ast.Component)
	return c
}

type SymbolTable struct {
	symbols map[string]*Symbol
	parent  *SymbolTable
}

func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]*Symbol),
		parent:  parent,
	}
}

func (st *SymbolTable) Define(name string, kind SymbolKind, node ast.Node, pos ast.Position) *Symbol {
	symbol := &Symbol{
		Name:     name,
		Kind:     kind,
		Node:     node,
		Position: pos,
		Order:    -1,
	}
	st.symbols[name] = symbol
	return symbol
}

func (st *SymbolTable) Lookup(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	if st.parent != nil {
		return st.parent.Lookup(name)
	}
	return nil
}

func (st *SymbolTable) LookupLocal(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	return nil
}

// Names returns the visible names of the given kinds, sorted.
func (st *SymbolTable) Names(kinds ...SymbolKind) []string {
	seen := make(map[string]bool)
	var names []string
	for table := st; table != nil; table = table.parent {
		for name, symbol := range table.symbols {
			if seen[name] || !kindIn(symbol.Kind, kinds) {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func kindIn(kind SymbolKind, kinds []SymbolKind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
