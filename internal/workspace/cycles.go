package workspace

import (
	"mwe2/internal/ast"
	"mwe2/internal/errors"
)

// edge is one '@module' reference from a module to another.
type edge struct {
	to  string
	ref *ast.Component
}

func (w *Workspace) edges(f *File) []edge {
	var out []edge
	for _, c := range ast.Components(f.Module()) {
		if c.Module == nil || c.Module.IsEmpty() {
			continue
		}
		if _, ok := w.modules[c.Module.Name()]; ok {
			out = append(out, edge{to: c.Module.Name(), ref: c})
		}
	}
	return out
}

// detectCycles reports every '@module' reference that closes a cycle. The
// diagnostic goes to the file holding the reference.
func (w *Workspace) detectCycles() {
	// depth-first search: done modules are known to be cycle free below,
	// stack holds the modules on the current path
	done := make(map[string]bool)
	onStack := make(map[string]bool)
	var stack []string

	var visit func(name string)
	visit = func(name string) {
		if done[name] {
			return
		}
		onStack[name] = true
		stack = append(stack, name)

		f := w.modules[name]
		for _, e := range w.edges(f) {
			if onStack[e.to] {
				f.Errors = append(f.Errors, errors.ModuleCycle(cyclePath(stack, e.to), e.ref.Module.Pos))
				continue
			}
			visit(e.to)
		}

		stack = stack[:len(stack)-1]
		delete(onStack, name)
		done[name] = true
	}

	for _, name := range w.ModuleNames() {
		visit(name)
	}
}

// cyclePath returns the part of stack starting at to, closed with to again.
func cyclePath(stack []string, to string) []string {
	for i, name := range stack {
		if name == to {
			cycle := append([]string(nil), stack[i:]...)
			return append(cycle, to)
		}
	}
	return []string{to, to}
}
