package analyzer

import (
	"fmt"
	"strings"
)

// Node is an element of a normalized syntax tree.
//
// Text is empty for internal nodes and for stripped identifier/literal
// leaves; otherwise it holds the exact source text of the leaf. Children
// are ordered and exclusively owned. Nodes are built once by a Normalizer
// and must not be modified afterwards.
type Node struct {
	Category string
	Text     string
	Children []*Node
}

// NewNode creates a node with the given category, text and children
func NewNode(category, text string, children ...*Node) *Node {
	return &Node{
		Category: category,
		Text:     text,
		Children: children,
	}
}

// IsLeaf returns true if this node has no children
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Label returns the comparison label of the node
func (n *Node) Label() string {
	if n.Text == "" {
		return n.Category
	}
	return n.Category + ":" + n.Text
}

// SameLabel reports whether two nodes carry the same category and text
func (n *Node) SameLabel(other *Node) bool {
	return n.Category == other.Category && n.Text == other.Text
}

// Size returns the number of nodes in the subtree rooted at this node
func (n *Node) Size() int {
	if n == nil {
		return 0
	}

	size := 0
	stack := []*Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++
		stack = append(stack, top.Children...)
	}
	return size
}

// Height returns the height of the subtree rooted at this node; a leaf has height 0
func (n *Node) Height() int {
	if n == nil {
		return 0
	}

	type entry struct {
		node  *Node
		depth int
	}

	height := 0
	stack := []entry{{node: n}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.depth > height {
			height = top.depth
		}
		for _, child := range top.node.Children {
			stack = append(stack, entry{node: child, depth: top.depth + 1})
		}
	}
	return height
}

// Equal reports whether two trees are structurally identical with equal labels
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}

	left, right := []*Node{n}, []*Node{other}
	for len(left) > 0 {
		a, b := left[len(left)-1], right[len(right)-1]
		left, right = left[:len(left)-1], right[:len(right)-1]
		if !a.SameLabel(b) || len(a.Children) != len(b.Children) {
			return false
		}
		left = append(left, a.Children...)
		right = append(right, b.Children...)
	}
	return true
}

// String returns a short description of the node
func (n *Node) String() string {
	return fmt.Sprintf("Node{Category: %s, Text: %q, Children: %d}", n.Category, n.Text, len(n.Children))
}

// Dump renders the subtree as an indented outline, one node per line
func (n *Node) Dump() string {
	var builder strings.Builder
	n.dump(&builder, 0)
	return builder.String()
}

func (n *Node) dump(builder *strings.Builder, level int) {
	builder.WriteString(strings.Repeat("\t", level))
	builder.WriteString(n.Category)
	if n.Text != "" {
		fmt.Fprintf(builder, ", %q", n.Text)
	}
	builder.WriteString("\n")
	for _, child := range n.Children {
		child.dump(builder, level+1)
	}
}
