package grammar

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"mwe2/internal/ast"
)

// ToAST converts a reference parse tree into the module AST used by the
// rest of the toolchain. Escapes are decoded, adjacent text runs are merged
// and '^' escapes are stripped from identifiers.
func ToAST(f *File) *ast.Module {
	if f == nil {
		return nil
	}
	m := &ast.Module{
		Pos:           position(f.Pos),
		CanonicalName: qualifiedName(f.Name),
	}
	for _, imp := range f.Imports {
		m.Imports = append(m.Imports, &ast.Import{
			Pos:       position(imp.Pos),
			Namespace: qualifiedName(imp.Namespace),
			Wildcard:  imp.Wildcard,
		})
	}
	for _, prop := range f.Properties {
		dp := &ast.DeclaredProperty{
			Pos:  position(prop.Pos),
			Name: qualifiedName(prop.Name),
		}
		if prop.Type != nil {
			dp.Type = qualifiedName(prop.Type)
		}
		if prop.Default != nil {
			dp.Default = value(prop.Default)
		}
		m.Properties = append(m.Properties, dp)
	}
	if f.Root != nil {
		m.Root = component(f.Root)
		m.Root.Root = true
	}
	return m
}

func position(p lexer.Position) ast.Position {
	return ast.Position{Filename: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func ident(i *Ident) ast.Ident {
	return ast.Ident{
		Pos:    position(i.Pos),
		EndPos: position(i.EndPos),
		Value:  strings.TrimPrefix(i.Value, "^"),
	}
}

func qualifiedName(q *QualifiedName) *ast.FQN {
	if q == nil {
		return &ast.FQN{}
	}
	fqn := &ast.FQN{Pos: position(q.Pos)}
	for _, part := range q.Parts {
		fqn.Parts = append(fqn.Parts, ident(part))
	}
	if n := len(q.Parts); n > 0 {
		fqn.EndPos = position(q.Parts[n-1].EndPos)
	}
	return fqn
}

func component(c *Component) *ast.Component {
	out := &ast.Component{
		Pos:        position(c.Pos),
		AutoInject: c.AutoInject,
	}
	if c.Head != nil {
		if c.Head.Module != nil {
			out.Module = qualifiedName(c.Head.Module)
		} else {
			out.Type = qualifiedName(c.Head.Type)
		}
	}
	if c.Name != nil {
		out.Name = qualifiedName(c.Name)
	}
	for _, a := range c.Assignments {
		out.Assignments = append(out.Assignments, &ast.Assignment{
			Pos:     position(a.Pos),
			Feature: ident(a.Feature),
			Value:   value(a.Value),
		})
	}
	return out
}

func value(v *Value) ast.Value {
	switch {
	case v.Component != nil:
		return component(v.Component)
	case v.String != nil:
		return stringLiteral(v.String)
	case v.Boolean != nil:
		return &ast.BooleanLiteral{Pos: position(v.Pos), IsTrue: *v.Boolean == "true"}
	case v.Reference != nil:
		ref := ident(v.Reference)
		return &ast.Reference{Pos: ref.Pos, EndPos: ref.EndPos, Referable: ref}
	}
	return &ast.BadValue{Bad: ast.BadNode{Pos: position(v.Pos), Message: "empty value"}}
}

func stringLiteral(s *StringLiteral) *ast.StringLiteral {
	quote, parts := ast.SingleQuote, s.Single
	if s.Double != nil {
		quote, parts = ast.DoubleQuote, s.Double
	}
	cs := &ast.CompoundString{Pos: position(s.Pos), Begin: quote, End: quote}

	var text *ast.PlainString
	for _, part := range parts {
		if part.Interpolation != nil {
			text = nil
			prop := ast.Ident{
				Pos:    position(part.Interpolation.Pos),
				EndPos: position(part.Interpolation.EndPos),
				Value:  part.Interpolation.Value,
			}
			cs.Parts = append(cs.Parts, &ast.PropertyReference{Pos: position(part.Pos), Property: prop})
			continue
		}

		var chunk string
		switch {
		case part.Escape != nil:
			chunk = (*part.Escape)[1:]
		case part.Text != nil:
			chunk = *part.Text
		}
		if text == nil {
			text = &ast.PlainString{Pos: position(part.Pos)}
			cs.Parts = append(cs.Parts, text)
		}
		text.Value += chunk
	}
	return &ast.StringLiteral{Pos: cs.Pos, Value: cs}
}
