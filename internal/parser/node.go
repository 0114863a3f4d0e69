package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// RawNode is the view of a concrete syntax tree node consumed by the
// normalizer. Tree-sitter nodes satisfy it through Wrap; tests can build
// synthetic trees without a grammar.
type RawNode interface {
	// Type returns the grammar category of the node (e.g. "identifier").
	Type() string

	// StartByte returns the offset of the first byte spanned by the node.
	StartByte() uint32

	// EndByte returns the offset one past the last byte spanned by the node.
	EndByte() uint32

	// ChildCount returns the number of children, named and anonymous.
	ChildCount() int

	// Child returns the i-th child, or nil when it cannot be resolved.
	Child(i int) RawNode
}

// sitterNode adapts *sitter.Node to RawNode
type sitterNode struct {
	node *sitter.Node
}

// Wrap returns a RawNode backed by a tree-sitter node, or nil for a nil node
func Wrap(node *sitter.Node) RawNode {
	if node == nil {
		return nil
	}
	return sitterNode{node: node}
}

func (n sitterNode) Type() string {
	return n.node.Type()
}

func (n sitterNode) StartByte() uint32 {
	return n.node.StartByte()
}

func (n sitterNode) EndByte() uint32 {
	return n.node.EndByte()
}

func (n sitterNode) ChildCount() int {
	return int(n.node.ChildCount())
}

func (n sitterNode) Child(i int) RawNode {
	return Wrap(n.node.Child(i))
}
