package ast

// Children returns the direct children of a node in source order.
// Hidden comments are not children; they hang off Module.Comments.
func Children(node Node) []Node {
	var out []Node
	addFQN := func(f *FQN) {
		if f != nil {
			out = append(out, f)
		}
	}

	switch n := node.(type) {
	case *Module:
		addFQN(n.CanonicalName)
		for _, imp := range n.Imports {
			out = append(out, imp)
		}
		for _, prop := range n.Properties {
			out = append(out, prop)
		}
		if n.Root != nil {
			out = append(out, n.Root)
		}

	case *FQN:
		for i := range n.Parts {
			out = append(out, &n.Parts[i])
		}

	case *Import:
		addFQN(n.Namespace)

	case *DeclaredProperty:
		addFQN(n.Type)
		addFQN(n.Name)
		if n.Default != nil {
			out = append(out, n.Default)
		}

	case *Component:
		addFQN(n.Type)
		addFQN(n.Module)
		addFQN(n.Name)
		for _, a := range n.Assignments {
			out = append(out, a)
		}

	case *Assignment:
		out = append(out, &n.Feature)
		if n.Value != nil {
			out = append(out, n.Value)
		}

	case *StringLiteral:
		if n.Value != nil {
			out = append(out, n.Value)
		}

	case *CompoundString:
		for _, part := range n.Parts {
			out = append(out, part)
		}

	case *PropertyReference:
		out = append(out, &n.Property)

	case *Reference:
		out = append(out, &n.Referable)
	}
	return out
}

// Inspect traverses the tree depth-first, calling fn for each node. When fn
// returns false the children of that node are skipped.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Inspect(child, fn)
	}
}

// CollectAllNodes collects all nodes in the AST tree in pre-order
func CollectAllNodes(root Node) []Node {
	var nodes []Node
	Inspect(root, func(n Node) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}

// Components returns every component of the module in source order,
// including those nested in property defaults.
func Components(m *Module) []*Component {
	var out []*Component
	Inspect(m, func(n Node) bool {
		if c, ok := n.(*Component); ok {
			out = append(out, c)
		}
		return true
	})
	return out
}
