package ast

import (
	"fmt"
	"strings"
)

// Dump renders the structure of a tree without source positions. Two trees
// with equal dumps are equal modulo position.
func Dump(node Node) string {
	var b strings.Builder
	dump(&b, node, 0)
	return b.String()
}

func dump(b *strings.Builder, node Node, depth int) {
	line := describe(node)
	if line == "" {
		return
	}
	b.WriteString(strings.Repeat("  ", depth) + line + "\n")

	for _, child := range Children(node) {
		switch child.(type) {
		case *FQN, *Ident:
			// names are folded into their parent's line
			continue
		}
		dump(b, child, depth+1)
	}
}

func describe(node Node) string {
	switch n := node.(type) {
	case *Module:
		return fmt.Sprintf("Module %q", n.CanonicalName.Name())
	case *Import:
		if n.Wildcard {
			return fmt.Sprintf("Import %q wildcard", n.Namespace.Name())
		}
		return fmt.Sprintf("Import %q", n.Namespace.Name())
	case *DeclaredProperty:
		s := fmt.Sprintf("DeclaredProperty %q", n.Name.Name())
		if n.Type != nil {
			s += fmt.Sprintf(" type=%q", n.Type.Name())
		}
		return s
	case *Component:
		var attrs []string
		if n.Root {
			attrs = append(attrs, "root")
		}
		if n.Type != nil {
			attrs = append(attrs, fmt.Sprintf("type=%q", n.Type.Name()))
		}
		if n.Module != nil {
			attrs = append(attrs, fmt.Sprintf("module=%q", n.Module.Name()))
		}
		if n.Name != nil {
			attrs = append(attrs, fmt.Sprintf("name=%q", n.Name.Name()))
		}
		if n.AutoInject {
			attrs = append(attrs, "auto-inject")
		}
		return strings.TrimSpace("Component " + strings.Join(attrs, " "))
	case *Assignment:
		return fmt.Sprintf("Assignment %q", n.Feature.Value)
	case *StringLiteral:
		return "StringLiteral"
	case *CompoundString:
		return fmt.Sprintf("CompoundString %s..%s", n.Begin, n.End)
	case *PlainString:
		return fmt.Sprintf("PlainString %q", n.Value)
	case *PropertyReference:
		return fmt.Sprintf("PropertyReference %q", n.Property.Value)
	case *BooleanLiteral:
		return fmt.Sprintf("BooleanLiteral %t", n.IsTrue)
	case *Reference:
		return fmt.Sprintf("Reference %q", n.Referable.Value)
	case *BadValue:
		return fmt.Sprintf("BadValue %q", n.Bad.Message)
	case *Comment:
		return fmt.Sprintf("Comment %q", n.Text)
	}
	return ""
}
