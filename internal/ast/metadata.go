package ast

import "fmt"

// NodeID is a unique identifier for each AST node within one parse
type NodeID uint32

// SourceRange represents a range in the source code
type SourceRange struct {
	Start Position
	End   Position
}

// Metadata contains tooling information for AST nodes
type Metadata struct {
	// Unique identifier for this AST node
	NodeID NodeID

	// Source location information
	Source SourceRange

	// Original source text for this node
	SourceText string

	// Parent node ID (0 if root)
	ParentID NodeID
}

// NodeTracker is the arena: it hands out node IDs and indexes nodes and
// their metadata by ID.
type NodeTracker struct {
	nextID   NodeID
	metadata map[NodeID]*Metadata
	nodes    map[NodeID]Node
}

// NewNodeTracker creates a new node tracker
func NewNodeTracker() *NodeTracker {
	return &NodeTracker{
		nextID:   1, // Start at 1, reserve 0 for "no parent"
		metadata: make(map[NodeID]*Metadata),
		nodes:    make(map[NodeID]Node),
	}
}

// GenerateID creates a new unique node ID
func (nt *NodeTracker) GenerateID() NodeID {
	id := nt.nextID
	nt.nextID++
	return id
}

// SetMetadata associates metadata with a node ID
func (nt *NodeTracker) SetMetadata(id NodeID, meta *Metadata) {
	nt.metadata[id] = meta
}

// GetMetadata retrieves metadata for a node ID
func (nt *NodeTracker) GetMetadata(id NodeID) *Metadata {
	return nt.metadata[id]
}

// SetNode records the node stored under an ID
func (nt *NodeTracker) SetNode(id NodeID, node Node) {
	nt.nodes[id] = node
}

// GetNode retrieves the node stored under an ID
func (nt *NodeTracker) GetNode(id NodeID) Node {
	return nt.nodes[id]
}

// Len returns the number of tracked nodes
func (nt *NodeTracker) Len() int {
	return len(nt.metadata)
}

// CreateSourceRange creates a SourceRange from start and end positions
func CreateSourceRange(start, end Position) SourceRange {
	return SourceRange{Start: start, End: end}
}

// Contains checks if a position is within this source range
func (sr SourceRange) Contains(pos Position) bool {
	return sr.Start.Offset <= pos.Offset && pos.Offset <= sr.End.Offset
}

// Size returns the length of the range in bytes
func (sr SourceRange) Size() int {
	return sr.End.Offset - sr.Start.Offset
}

// String returns a human-readable representation of the source range
func (sr SourceRange) String() string {
	if sr.Start.Line == sr.End.Line {
		return fmt.Sprintf("%s:%d:%d-%d", sr.Start.Filename, sr.Start.Line, sr.Start.Column, sr.End.Column)
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", sr.Start.Filename, sr.Start.Line, sr.Start.Column, sr.End.Line, sr.End.Column)
}

// String returns a human-readable representation of metadata
func (m *Metadata) String() string {
	return fmt.Sprintf("NodeID:%d Source:%s Parent:%d", m.NodeID, m.Source.String(), m.ParentID)
}
