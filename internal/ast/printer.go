package ast

import (
	"fmt"
	"strings"
)

// reserved lists the words that must be written with a '^' escape when used
// as identifiers.
var reserved = map[string]bool{
	"module": true,
	"var":    true,
	"import": true,
	"true":   true,
	"false":  true,
}

// IsReserved reports whether name is a keyword of the module language.
func IsReserved(name string) bool {
	return reserved[name]
}

func (m *Module) String() string {
	var b strings.Builder

	b.WriteString("module " + m.CanonicalName.String() + "\n")

	if len(m.Imports) > 0 {
		b.WriteString("\n")
		for _, imp := range m.Imports {
			b.WriteString(imp.String() + "\n")
		}
	}

	if len(m.Properties) > 0 {
		b.WriteString("\n")
		for _, prop := range m.Properties {
			b.WriteString(prop.String() + "\n")
		}
	}

	if m.Root != nil {
		b.WriteString("\n" + m.Root.String() + "\n")
	}

	return b.String()
}

func (i *Ident) String() string {
	if reserved[i.Value] {
		return "^" + i.Value
	}
	return i.Value
}

func (f *FQN) String() string {
	if f == nil {
		return ""
	}
	parts := make([]string, len(f.Parts))
	for i := range f.Parts {
		parts[i] = f.Parts[i].String()
	}
	return strings.Join(parts, ".")
}

func (i *Import) String() string {
	if i.Wildcard {
		return "import " + i.Namespace.String() + ".*"
	}
	return "import " + i.Namespace.String()
}

func (dp *DeclaredProperty) String() string {
	var b strings.Builder
	b.WriteString("var ")
	if dp.Type != nil {
		b.WriteString(dp.Type.String() + " ")
	}
	b.WriteString(dp.Name.String())
	if dp.Default != nil {
		b.WriteString(" = " + dp.Default.String())
	}
	return b.String()
}

func (c *Component) String() string {
	var head []string
	switch {
	case c.Type != nil:
		head = append(head, c.Type.String())
	case c.Module != nil:
		head = append(head, "@"+c.Module.String())
	}
	if c.Name != nil {
		head = append(head, ": "+c.Name.String())
	}
	if c.AutoInject {
		head = append(head, "auto-inject")
	}

	if len(c.Assignments) == 0 {
		return strings.Join(append(head, "{}"), " ")
	}

	var b strings.Builder
	b.WriteString(strings.Join(append(head, "{"), " ") + "\n")
	for _, a := range c.Assignments {
		b.WriteString("  " + strings.ReplaceAll(a.String(), "\n", "\n  ") + "\n")
	}
	b.WriteString("}")
	return b.String()
}

func (a *Assignment) String() string {
	value := "<missing>"
	if a.Value != nil {
		value = a.Value.String()
	}
	return fmt.Sprintf("%s = %s", a.Feature.String(), value)
}

func (sl *StringLiteral) String() string {
	return sl.Value.String()
}

func (cs *CompoundString) String() string {
	quote := cs.Begin
	if quote == NoQuote {
		quote = DoubleQuote
	}
	q := quote.Char()

	var b strings.Builder
	b.WriteString(q)
	for _, part := range cs.Parts {
		if plain, ok := part.(*PlainString); ok {
			b.WriteString(escapeString(plain.Value, q))
			continue
		}
		b.WriteString(part.String())
	}
	b.WriteString(q)
	return b.String()
}

// escapeString re-applies the backslash escapes the parser decodes.
func escapeString(s, quote string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, quote, `\`+quote)
}

func (pr *PropertyReference) String() string {
	return "${" + pr.Property.Value + "}"
}

func (ps *PlainString) String() string {
	return ps.Value
}

func (bl *BooleanLiteral) String() string {
	if bl.IsTrue {
		return "true"
	}
	return "false"
}

func (r *Reference) String() string {
	return r.Referable.String()
}

func (bv *BadValue) String() string {
	return fmt.Sprintf("BadValue: %s", bv.Bad.Message)
}

func (c *Comment) String() string {
	return c.Text
}
