package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// File is a whole module:
//
//	Module ::= 'module' FQN Import* DeclaredProperty* RootComponent
type File struct {
	Pos        lexer.Position
	Name       *QualifiedName `"module" @@`
	Imports    []*Import      `@@*`
	Properties []*Property    `@@*`
	Root       *Component     `@@`
}

type Ident struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@Ident`
}

// PropertyName is the name inside '${...}'. It cannot carry a '^' escape.
type PropertyName struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@PropertyName`
}

type QualifiedName struct {
	Pos   lexer.Position
	Parts []*Ident `@@ ( "." @@ )*`
}

type Import struct {
	Pos       lexer.Position
	Namespace *QualifiedName `"import" @@`
	Wildcard  bool           `@Wildcard?`
}

// Property is a declared property. A first name directly followed by
// another identifier is the type.
type Property struct {
	Pos     lexer.Position
	Type    *QualifiedName `"var" ( @@ (?= Ident) )?`
	Name    *QualifiedName `@@`
	Default *Value         `( "=" @@ )?`
}

type Component struct {
	Pos         lexer.Position
	Head        *ComponentHead `@@?`
	Name        *QualifiedName `( ":" @@ )?`
	AutoInject  bool           `@AutoInject?`
	Assignments []*Assignment  `"{" @@* "}"`
}

type ComponentHead struct {
	Module *QualifiedName `  "@" @@`
	Type   *QualifiedName `| @@`
}

type Assignment struct {
	Pos     lexer.Position
	Feature *Ident `@@ "="`
	Value   *Value `@@`
}

type Value struct {
	Pos       lexer.Position
	Component *Component     `  @@`
	String    *StringLiteral `| @@`
	Boolean   *string        `| @("true" | "false")`
	Reference *Ident         `| @@`
}

type StringLiteral struct {
	Pos    lexer.Position
	Single []*StringPart `  SingleQuote @@* SingleQuoteEnd`
	Double []*StringPart `| DoubleQuote @@* DoubleQuoteEnd`
}

type StringPart struct {
	Pos           lexer.Position
	Interpolation *PropertyName `  InterpolationStart @@ InterpolationEnd`
	Escape        *string       `| @Escape`
	Text          *string       `| @( SingleChars | DoubleChars | Dollar | Backslash )`
}
