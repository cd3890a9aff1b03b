package ast

import (
	"fmt"
	"strings"
)

// MetadataVisitor assigns node IDs and parent links to a finished tree and
// answers position and parent queries over it.
type MetadataVisitor struct {
	tracker    *NodeTracker
	sourceText string
}

// NewMetadataVisitor creates a new metadata visitor
func NewMetadataVisitor(sourceText string) *MetadataVisitor {
	return &MetadataVisitor{
		tracker:    NewNodeTracker(),
		sourceText: sourceText,
	}
}

// AssignModule assigns metadata to a module, its children and its comments.
func (mv *MetadataVisitor) AssignModule(m *Module) {
	if m == nil {
		return
	}
	id := mv.AssignMetadata(m, 0)
	for _, c := range m.Comments {
		mv.AssignMetadata(c, id)
	}
}

// AssignMetadata assigns metadata to a node and all its children and returns
// the ID given to node.
func (mv *MetadataVisitor) AssignMetadata(node Node, parentID NodeID) NodeID {
	if node == nil {
		return 0
	}

	nodeID := mv.tracker.GenerateID()
	start := node.NodePos()
	end := node.NodeEndPos()

	metadata := &Metadata{
		NodeID:     nodeID,
		Source:     CreateSourceRange(start, end),
		SourceText: mv.extractSourceText(start, end),
		ParentID:   parentID,
	}

	node.SetMetadata(metadata)
	mv.tracker.SetMetadata(nodeID, metadata)
	mv.tracker.SetNode(nodeID, node)

	for _, child := range Children(node) {
		mv.AssignMetadata(child, nodeID)
	}
	return nodeID
}

// extractSourceText extracts the source text between two positions
func (mv *MetadataVisitor) extractSourceText(start, end Position) string {
	if mv.sourceText == "" {
		return ""
	}

	if start.Offset < 0 || end.Offset < 0 || start.Offset > len(mv.sourceText) || end.Offset > len(mv.sourceText) {
		return ""
	}

	if start.Offset > end.Offset {
		return ""
	}

	return mv.sourceText[start.Offset:end.Offset]
}

// GetTracker returns the node tracker
func (mv *MetadataVisitor) GetTracker() *NodeTracker {
	return mv.tracker
}

// Node returns the node with the given ID, or nil.
func (mv *MetadataVisitor) Node(id NodeID) Node {
	return mv.tracker.GetNode(id)
}

// Parent returns the parent of node, or nil for the module and untracked nodes.
func (mv *MetadataVisitor) Parent(node Node) Node {
	md := node.GetMetadata()
	if md == nil || md.ParentID == 0 {
		return nil
	}
	return mv.tracker.GetNode(md.ParentID)
}

// Ancestors returns the parent chain of node, nearest first.
func (mv *MetadataVisitor) Ancestors(node Node) []Node {
	var out []Node
	for p := mv.Parent(node); p != nil; p = mv.Parent(p) {
		out = append(out, p)
	}
	return out
}

// FindNodeByPosition returns the metadata of the innermost node whose range
// contains pos. Ties go to the node assigned last, which is the deeper one.
func (mv *MetadataVisitor) FindNodeByPosition(pos Position) *Metadata {
	var best *Metadata
	for _, meta := range mv.tracker.metadata {
		if !meta.Source.Contains(pos) {
			continue
		}
		if best == nil || meta.Source.Size() < best.Source.Size() ||
			(meta.Source.Size() == best.Source.Size() && meta.NodeID > best.NodeID) {
			best = meta
		}
	}
	return best
}

// FindInnermost returns the innermost node containing pos, or nil.
func (mv *MetadataVisitor) FindInnermost(pos Position) Node {
	meta := mv.FindNodeByPosition(pos)
	if meta == nil {
		return nil
	}
	return mv.tracker.GetNode(meta.NodeID)
}

// GetNodesByType returns the metadata of all nodes of a specific type in ID order
func (mv *MetadataVisitor) GetNodesByType(nodeType NodeType) []*Metadata {
	var result []*Metadata
	for id := NodeID(1); int(id) <= mv.tracker.Len(); id++ {
		if n := mv.tracker.GetNode(id); n != nil && n.NodeType() == nodeType {
			result = append(result, mv.tracker.GetMetadata(id))
		}
	}
	return result
}

// PrintDebugInfo prints debugging information about all nodes in ID order
func (mv *MetadataVisitor) PrintDebugInfo() string {
	var sb strings.Builder
	sb.WriteString("=== AST Metadata Debug Info ===\n")

	for id := NodeID(1); int(id) <= mv.tracker.Len(); id++ {
		meta := mv.tracker.GetMetadata(id)
		node := mv.tracker.GetNode(id)
		sb.WriteString(fmt.Sprintf("%s: %s\n", node.NodeType(), meta.String()))

		if meta.SourceText != "" {
			sb.WriteString("   Source: ")
			sb.WriteString(strings.ReplaceAll(meta.SourceText, "\n", "\\n"))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
