package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/codedist/internal/parser"
)

// fakeRawNode is a hand-built raw syntax node
type fakeRawNode struct {
	kind       string
	start, end uint32
	children   []*fakeRawNode
	// count overrides the reported child count when non-zero
	count int
}

func (f *fakeRawNode) Type() string      { return f.kind }
func (f *fakeRawNode) StartByte() uint32 { return f.start }
func (f *fakeRawNode) EndByte() uint32   { return f.end }

func (f *fakeRawNode) ChildCount() int {
	if f.count != 0 {
		return f.count
	}
	return len(f.children)
}

func (f *fakeRawNode) Child(i int) parser.RawNode {
	if i < 0 || i >= len(f.children) || f.children[i] == nil {
		return nil
	}
	return f.children[i]
}

func leaf(kind string, start, end uint32) *fakeRawNode {
	return &fakeRawNode{kind: kind, start: start, end: end}
}

func inner(kind string, children ...*fakeRawNode) *fakeRawNode {
	return &fakeRawNode{kind: kind, children: children}
}

func TestNormalizer_StripsIdentifiersAndLiterals(t *testing.T) {
	source := []byte("x = 42 + y")
	root := inner("assignment",
		leaf("identifier", 0, 1),
		leaf("=", 2, 3),
		inner("binary_expression",
			leaf("decimal_integer_literal", 4, 6),
			leaf("+", 7, 8),
			leaf("identifier", 9, 10)))

	tree, spellings, err := NewNormalizer(nil).Normalize(source, root)
	require.NoError(t, err)

	expected := NewNode("assignment", "",
		NewNode("identifier", ""),
		NewNode("=", "="),
		NewNode("binary_expression", "",
			NewNode("decimal_integer_literal", ""),
			NewNode("+", "+"),
			NewNode("identifier", "")))
	assert.True(t, expected.Equal(tree), "got:\n%s", tree.Dump())
	assert.Equal(t, []string{"42", "x", "y"}, spellings.Sorted())
}

func TestNormalizer_CustomClassifier(t *testing.T) {
	source := []byte("a.b")
	root := inner("field_access",
		leaf("identifier", 0, 1),
		leaf(".", 1, 2),
		leaf("field_identifier", 2, 3))

	tree, spellings, err := NewNormalizer(NewSubstringClassifier("field")).Normalize(source, root)
	require.NoError(t, err)

	assert.Equal(t, "a", tree.Children[0].Text, "plain identifiers are kept")
	assert.Equal(t, "", tree.Children[2].Text)
	assert.Equal(t, []string{"b"}, spellings.Sorted())
}

func TestNormalizer_InvalidUTF8(t *testing.T) {
	source := []byte{'a', 0xff, 0xfe, 'b'}
	root := inner("program",
		leaf("identifier", 1, 3),
		leaf("junk", 1, 3))

	tree, spellings, err := NewNormalizer(nil).Normalize(source, root)
	require.NoError(t, err)

	assert.Equal(t, []string{""}, spellings.Sorted())
	assert.Equal(t, "", tree.Children[1].Text)
}

func TestNormalizer_MalformedTrees(t *testing.T) {
	tests := []struct {
		name   string
		source string
		root   parser.RawNode
	}{
		{"nil root", "x", nil},
		{"span past end", "x", inner("program", leaf("identifier", 0, 5))},
		{"reversed span", "xyz", inner("program", leaf("identifier", 2, 1))},
		{"missing child", "x", &fakeRawNode{kind: "program", count: 2, children: []*fakeRawNode{leaf("identifier", 0, 1)}}},
		{"negative child count", "x", &fakeRawNode{kind: "program", count: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, spellings, err := NewNormalizer(nil).Normalize([]byte(tt.source), tt.root)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedTree))
			assert.Nil(t, tree)
			assert.Nil(t, spellings)
		})
	}
}

func TestNormalizer_DeepTree(t *testing.T) {
	const depth = 100000
	source := []byte("x")

	root := leaf("identifier", 0, 1)
	for i := 0; i < depth; i++ {
		root = inner("parenthesized_expression", root)
	}

	tree, spellings, err := NewNormalizer(nil).Normalize(source, root)
	require.NoError(t, err)
	assert.Equal(t, depth+1, tree.Size())
	assert.Equal(t, depth, tree.Height())
	assert.Equal(t, 1, spellings.Len())
}

func TestNormalizer_JavaSnippet(t *testing.T) {
	grammar, err := parser.BuiltinGrammar("java")
	require.NoError(t, err)

	p := parser.New(grammar)
	result, err := p.ParseSnippet(context.Background(), "int total = count + 1;")
	require.NoError(t, err)

	tree, spellings, err := NewNormalizerForGrammar(grammar).Normalize(result.SourceCode, result.Root())
	require.NoError(t, err)

	assert.Equal(t, "program", tree.Category)
	assert.Equal(t, []string{"1", "A", "count", "total"}, spellings.Sorted())

	// Stripped leaves never keep their text
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.IsLeaf() && (n.Category == "identifier" || n.Category == "decimal_integer_literal") {
			assert.Empty(t, n.Text)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(tree)
}
