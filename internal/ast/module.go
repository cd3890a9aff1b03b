package ast

import "strings"

// Module represents one MWE2 source unit (the entire file)
// Example: "module org.example.Generate import org.example.* var x = 'a' Workflow { }"
type Module struct {
	Pos           Position
	EndPos        Position
	CanonicalName *FQN // empty FQN when the name is missing
	Imports       []*Import
	Properties    []*DeclaredProperty
	Root          *Component // nil when no root component could be parsed
	Comments      []*Comment // hidden comments in source order
	metadata      *Metadata
}

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Ident represents a single identifier token; a leading '^' escape is stripped
// Example: "message", "^module"
type Ident struct {
	Pos      Position
	EndPos   Position
	Value    string
	metadata *Metadata
}

// FQN is a dot separated name built from identifiers
// Example: "org.eclipse.emf.mwe2.Workflow"
type FQN struct {
	Pos      Position
	EndPos   Position
	Parts    []Ident
	metadata *Metadata
}

// Name returns the dotted name; a nil FQN has an empty name.
func (f *FQN) Name() string {
	if f == nil {
		return ""
	}
	names := make([]string, len(f.Parts))
	for i, part := range f.Parts {
		names[i] = part.Value
	}
	return strings.Join(names, ".")
}

// IsEmpty reports whether the FQN carries no identifiers.
func (f *FQN) IsEmpty() bool {
	return f == nil || len(f.Parts) == 0
}

// Import represents "import a.b.c" or "import a.b.*"
type Import struct {
	Pos       Position
	EndPos    Position
	Namespace *FQN
	Wildcard  bool
	metadata  *Metadata
}

// ImportedNamespace returns the imported name including the ".*" suffix.
func (i *Import) ImportedNamespace() string {
	if i.Wildcard {
		return i.Namespace.Name() + ".*"
	}
	return i.Namespace.Name()
}

// DeclaredProperty represents a module-level "var [Type] name [= value]"
type DeclaredProperty struct {
	Pos      Position
	EndPos   Position
	Type     *FQN // optional
	Name     *FQN
	Default  Value // optional
	metadata *Metadata
}

// Component is either the module's root component or a nested value.
// Type and Module are mutually exclusive; both nil means an untyped component.
// Example: "bean = org.example.Bean : myBean auto-inject { a = true }"
type Component struct {
	Pos         Position
	EndPos      Position
	Type        *FQN
	Module      *FQN // "@name" reference to another module
	Name        *FQN // optional ": name"
	AutoInject  bool
	Assignments []*Assignment
	Root        bool
	metadata    *Metadata
}

// Assignment represents "feature = value" inside a component body
type Assignment struct {
	Pos      Position
	EndPos   Position
	Feature  Ident
	Value    Value
	metadata *Metadata
}

// Value is one of *Component, *StringLiteral, *BooleanLiteral, *Reference or,
// on error paths only, *BadValue.
type Value interface {
	Node
	valueNode()
}

func (*Component) valueNode()      {}
func (*StringLiteral) valueNode()  {}
func (*BooleanLiteral) valueNode() {}
func (*Reference) valueNode()      {}
func (*BadValue) valueNode()       {}

// StringLiteral wraps a quoted compound string
type StringLiteral struct {
	Pos      Position
	EndPos   Position
	Value    *CompoundString
	metadata *Metadata
}

// QuoteKind identifies the quote character that opens or closes a string.
type QuoteKind int

const (
	NoQuote QuoteKind = iota // missing closing quote
	SingleQuote
	DoubleQuote
)

// Char returns the quote character, or the empty string for NoQuote.
func (q QuoteKind) Char() string {
	switch q {
	case SingleQuote:
		return "'"
	case DoubleQuote:
		return `"`
	}
	return ""
}

func (q QuoteKind) String() string {
	switch q {
	case SingleQuote:
		return "SINGLE"
	case DoubleQuote:
		return "DOUBLE"
	}
	return "NONE"
}

// CompoundString holds literal runs interleaved with ${name} references.
// Example: "'Hello ${name}!'"
type CompoundString struct {
	Pos      Position
	EndPos   Position
	Begin    QuoteKind
	End      QuoteKind
	Parts    []StringPart
	metadata *Metadata
}

// Text returns the literal content with interpolations rendered as ${name}.
func (cs *CompoundString) Text() string {
	var b strings.Builder
	for _, part := range cs.Parts {
		switch p := part.(type) {
		case *PlainString:
			b.WriteString(p.Value)
		case *PropertyReference:
			b.WriteString("${" + p.Property.Value + "}")
		}
	}
	return b.String()
}

// StringPart is either a *PlainString or a *PropertyReference.
type StringPart interface {
	Node
	stringPart()
}

func (*PlainString) stringPart()       {}
func (*PropertyReference) stringPart() {}

// PropertyReference represents "${name}" inside a string
type PropertyReference struct {
	Pos      Position
	EndPos   Position
	Property Ident
	metadata *Metadata
}

// PlainString is a decoded literal run: escapes are already resolved
type PlainString struct {
	Pos      Position
	EndPos   Position
	Value    string
	metadata *Metadata
}

// BooleanLiteral represents "true" or "false"
type BooleanLiteral struct {
	Pos      Position
	EndPos   Position
	IsTrue   bool
	metadata *Metadata
}

// Reference names a component or declared property of the same module
type Reference struct {
	Pos       Position
	EndPos    Position
	Referable Ident
	metadata  *Metadata
}

// BadValue stands in for a value that failed to parse
type BadValue struct {
	Bad      BadNode
	metadata *Metadata
}

// BadNode contains error information for failed parsing
type BadNode struct {
	Pos     Position
	EndPos  Position
	Message string
}

// Comment is a hidden // or /* */ comment kept for tooling
type Comment struct {
	Pos      Position
	EndPos   Position
	Text     string
	Block    bool
	metadata *Metadata
}
