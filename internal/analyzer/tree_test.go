package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNode_Size(t *testing.T) {
	tests := []struct {
		name     string
		tree     *Node
		expected int
	}{
		{"nil tree", nil, 0},
		{"single node", NewNode("identifier", ""), 1},
		{
			name: "nested",
			tree: NewNode("block", "",
				NewNode("{", "{"),
				NewNode("expression_statement", "",
					NewNode("method_invocation", "",
						NewNode("identifier", ""),
						NewNode("argument_list", ""))),
				NewNode("}", "}")),
			expected: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tree.Size())
		})
	}
}

func TestNode_Height(t *testing.T) {
	var nilNode *Node
	assert.Equal(t, 0, nilNode.Height())
	assert.Equal(t, 0, NewNode("a", "").Height())

	chain := NewNode("a", "", NewNode("b", "", NewNode("c", "")), NewNode("d", ""))
	assert.Equal(t, 2, chain.Height())
}

func TestNode_Label(t *testing.T) {
	assert.Equal(t, "identifier", NewNode("identifier", "").Label())
	assert.Equal(t, "+:+", NewNode("+", "+").Label())
	assert.True(t, NewNode("(", "(").SameLabel(NewNode("(", "(")))
	assert.False(t, NewNode("(", "(").SameLabel(NewNode("(", "")))
	assert.True(t, NewNode("a", "").IsLeaf())
	assert.False(t, NewNode("a", "", NewNode("b", "")).IsLeaf())
}

func TestNode_Equal(t *testing.T) {
	build := func(last string) *Node {
		return NewNode("root", "", NewNode("x", ""), NewNode("y", "", NewNode(last, last)))
	}

	assert.True(t, build("z").Equal(build("z")))
	assert.False(t, build("z").Equal(build("w")))
	assert.False(t, build("z").Equal(NewNode("root", "")))

	var nilNode *Node
	assert.True(t, nilNode.Equal(nil))
	assert.False(t, nilNode.Equal(NewNode("a", "")))
}

func TestNode_Dump(t *testing.T) {
	tree := NewNode("binary_expression", "", NewNode("identifier", ""), NewNode("<", "<"))
	expected := "binary_expression\n\tidentifier\n\t<, \"<\"\n"
	assert.Equal(t, expected, tree.Dump())
}
