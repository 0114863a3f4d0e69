package analyzer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ludo-technologies/codedist/internal/parser"
)

// ErrMalformedTree is returned when a raw tree cannot be traversed
var ErrMalformedTree = errors.New("malformed syntax tree")

// LeafClassifier decides which leaf categories carry identifier or literal
// spellings that must be stripped from the tree.
type LeafClassifier interface {
	Strip(category string) bool
}

// SubstringClassifier strips leaves whose category contains any of the
// patterns (case-sensitive).
type SubstringClassifier struct {
	Patterns []string
}

// NewSubstringClassifier creates a classifier matching the given patterns
func NewSubstringClassifier(patterns ...string) SubstringClassifier {
	return SubstringClassifier{Patterns: patterns}
}

// DefaultClassifier strips categories containing "identifier" or "literal"
func DefaultClassifier() SubstringClassifier {
	return NewSubstringClassifier(parser.DefaultStripPatterns...)
}

// Strip reports whether leaves of the category are identifiers or literals
func (c SubstringClassifier) Strip(category string) bool {
	for _, pattern := range c.Patterns {
		if strings.Contains(category, pattern) {
			return true
		}
	}
	return false
}

// Normalizer converts raw syntax trees into normalized Node trees
type Normalizer struct {
	classifier LeafClassifier
}

// NewNormalizer creates a normalizer using the given leaf classifier
func NewNormalizer(classifier LeafClassifier) *Normalizer {
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	return &Normalizer{classifier: classifier}
}

// NewNormalizerForGrammar creates a normalizer that strips the grammar's patterns
func NewNormalizerForGrammar(grammar *parser.Grammar) *Normalizer {
	return NewNormalizer(NewSubstringClassifier(grammar.StripPatterns()...))
}

// Normalize builds the normalized tree of root and collects the spellings
// of its identifier and literal leaves. Leaf spans that are not valid UTF-8
// are treated as empty text. Children keep their source order.
func (n *Normalizer) Normalize(source []byte, root parser.RawNode) (*Node, SpellingSet, error) {
	if root == nil {
		return nil, nil, fmt.Errorf("%w: nil root node", ErrMalformedTree)
	}

	spellings := NewSpellingSet()
	rootNode, err := n.newNode(source, root, spellings)
	if err != nil {
		return nil, nil, err
	}

	type frame struct {
		raw   parser.RawNode
		node  *Node
		next  int
		count int
	}

	stack := []frame{{raw: root, node: rootNode, count: root.ChildCount()}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == top.count {
			stack = stack[:len(stack)-1]
			continue
		}

		index := top.next
		top.next++

		child := top.raw.Child(index)
		if child == nil {
			return nil, nil, fmt.Errorf("%w: %s has no child at index %d", ErrMalformedTree, top.raw.Type(), index)
		}
		node, err := n.newNode(source, child, spellings)
		if err != nil {
			return nil, nil, err
		}
		top.node.Children = append(top.node.Children, node)

		if count := child.ChildCount(); count > 0 {
			stack = append(stack, frame{raw: child, node: node, count: count})
		}
	}

	return rootNode, spellings, nil
}

// newNode creates the node for raw without its children. Leaves get their
// text, or contribute it to spellings when classified as identifier/literal.
func (n *Normalizer) newNode(source []byte, raw parser.RawNode, spellings SpellingSet) (*Node, error) {
	node := &Node{Category: raw.Type()}

	if count := raw.ChildCount(); count > 0 {
		node.Children = make([]*Node, 0, count)
		return node, nil
	} else if count < 0 {
		return nil, fmt.Errorf("%w: %s reports %d children", ErrMalformedTree, raw.Type(), count)
	}

	start, end := raw.StartByte(), raw.EndByte()
	if end < start || int(end) > len(source) {
		return nil, fmt.Errorf("%w: %s spans [%d,%d) outside source of %d bytes",
			ErrMalformedTree, raw.Type(), start, end, len(source))
	}

	text := ""
	if span := source[start:end]; utf8.Valid(span) {
		text = string(span)
	}

	if n.classifier.Strip(node.Category) {
		spellings.Add(text)
	} else {
		node.Text = text
	}
	return node, nil
}
