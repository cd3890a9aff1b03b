package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeTracker(t *testing.T) {
	tracker := NewNodeTracker()

	id1 := tracker.GenerateID()
	id2 := tracker.GenerateID()

	assert.NotEqual(t, id1, id2, "GenerateID should return unique IDs")
	assert.Equal(t, NodeID(1), id1)
	assert.Equal(t, NodeID(2), id2)
}

func TestSourceRange(t *testing.T) {
	start := Position{Filename: "test.mwe2", Line: 1, Column: 1, Offset: 0}
	end := Position{Filename: "test.mwe2", Line: 1, Column: 10, Offset: 9}

	sr := CreateSourceRange(start, end)
	assert.True(t, sr.Contains(Position{Offset: 4}))
	assert.False(t, sr.Contains(Position{Offset: 20}))
	assert.Equal(t, 9, sr.Size())
	assert.Equal(t, "test.mwe2:1:1-10", sr.String())

	multi := CreateSourceRange(start, Position{Filename: "test.mwe2", Line: 3, Column: 2, Offset: 30})
	assert.Equal(t, "test.mwe2:1:1-3:2", multi.String())
}

func pos(offset int) Position {
	return Position{Filename: "t.mwe2", Offset: offset, Line: 1, Column: offset + 1}
}

// buildTree models "module m W { a = b }"
func buildTree() (*Module, *Reference) {
	ref := &Reference{Pos: pos(17), EndPos: pos(18), Referable: Ident{Pos: pos(17), EndPos: pos(18), Value: "b"}}
	assign := &Assignment{Pos: pos(13), EndPos: pos(18), Feature: Ident{Pos: pos(13), EndPos: pos(14), Value: "a"}, Value: ref}
	root := &Component{
		Pos:         pos(9),
		EndPos:      pos(21),
		Root:        true,
		Type:        &FQN{Pos: pos(9), EndPos: pos(10), Parts: []Ident{{Pos: pos(9), EndPos: pos(10), Value: "W"}}},
		Assignments: []*Assignment{assign},
	}
	module := &Module{
		Pos:           pos(0),
		EndPos:        pos(21),
		CanonicalName: &FQN{Pos: pos(7), EndPos: pos(8), Parts: []Ident{{Pos: pos(7), EndPos: pos(8), Value: "m"}}},
		Root:          root,
	}
	return module, ref
}

func TestMetadataVisitorAssignsParents(t *testing.T) {
	source := "module m W { a = b }"
	module, ref := buildTree()

	mv := NewMetadataVisitor(source)
	mv.AssignModule(module)

	require.NotNil(t, module.GetMetadata())
	assert.Equal(t, NodeID(1), module.GetMetadata().NodeID)
	assert.Equal(t, NodeID(0), module.GetMetadata().ParentID)

	parent := mv.Parent(ref)
	require.NotNil(t, parent)
	assign, ok := parent.(*Assignment)
	require.True(t, ok, "reference parent should be the assignment")
	assert.Equal(t, "a", assign.Feature.Value)

	ancestors := mv.Ancestors(ref)
	require.Len(t, ancestors, 3)
	assert.Equal(t, COMPONENT, ancestors[1].NodeType())
	assert.Equal(t, MODULE, ancestors[2].NodeType())

	assert.Equal(t, "a = b", assign.GetMetadata().SourceText)
	assert.Equal(t, len(CollectAllNodes(module)), mv.GetTracker().Len())
}

func TestFindInnermostNode(t *testing.T) {
	source := "module m W { a = b }"
	module, _ := buildTree()

	mv := NewMetadataVisitor(source)
	mv.AssignModule(module)

	node := mv.FindInnermost(pos(17))
	require.NotNil(t, node)
	assert.Equal(t, IDENT, node.NodeType())
	assert.Equal(t, "b", node.(*Ident).Value)

	node = mv.FindInnermost(pos(15))
	require.NotNil(t, node)
	assert.Equal(t, ASSIGNMENT, node.NodeType())

	assert.Nil(t, mv.FindInnermost(pos(99)))
}

func TestGetNodesByType(t *testing.T) {
	module, _ := buildTree()
	mv := NewMetadataVisitor("")
	mv.AssignModule(module)

	assert.Len(t, mv.GetNodesByType(COMPONENT), 1)
	assert.Len(t, mv.GetNodesByType(IDENT), 4)
	assert.Contains(t, mv.PrintDebugInfo(), "COMPONENT: NodeID:")
}
