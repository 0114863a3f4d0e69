package parser

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrParse is returned when source code cannot be turned into a usable tree
var ErrParse = errors.New("parse failed")

// Parser parses source code with a loaded grammar using tree-sitter.
// A Parser is not safe for concurrent use; the Grammar it was built from is.
type Parser struct {
	parser  *sitter.Parser
	grammar *Grammar
}

// New creates a new Parser for the given grammar
func New(grammar *Grammar) *Parser {
	parser := sitter.NewParser()
	parser.SetLanguage(grammar.language)
	return &Parser{
		parser:  parser,
		grammar: grammar,
	}
}

// Grammar returns the grammar the parser was built with
func (p *Parser) Grammar() *Grammar {
	return p.grammar
}

// ParseResult represents the result of parsing source code
type ParseResult struct {
	Tree       *sitter.Tree
	RootNode   *sitter.Node
	SourceCode []byte
}

// Root returns the root node as a RawNode
func (r *ParseResult) Root() RawNode {
	return Wrap(r.RootNode)
}

// Parse parses source code and returns the concrete syntax tree
func (p *Parser) Parse(ctx context.Context, source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("%w: parser produced no tree", ErrParse)
	}

	rootNode := tree.RootNode()
	if rootNode == nil {
		return nil, fmt.Errorf("%w: parser produced no root node", ErrParse)
	}

	if p.grammar.rejectSyntaxErrors && rootNode.HasError() {
		return nil, fmt.Errorf("%w: %d syntax error(s) found in source code", ErrParse, p.CountSyntaxErrors(rootNode))
	}

	return &ParseResult{
		Tree:       tree,
		RootNode:   rootNode,
		SourceCode: source,
	}, nil
}

// ParseSnippet wraps a code fragment in the grammar scaffold and parses it
func (p *Parser) ParseSnippet(ctx context.Context, code string) (*ParseResult, error) {
	return p.Parse(ctx, []byte(p.grammar.scaffold.Wrap(code)))
}

// WalkTree traverses the tree and calls the visitor function for each node
func (p *Parser) WalkTree(node *sitter.Node, visitor func(*sitter.Node) error) error {
	if err := visitor(node); err != nil {
		return err
	}

	childCount := int(node.ChildCount())
	for i := 0; i < childCount; i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if err := p.WalkTree(child, visitor); err != nil {
			return err
		}
	}

	return nil
}

// CountSyntaxErrors counts error and missing nodes in the tree
func (p *Parser) CountSyntaxErrors(node *sitter.Node) int {
	count := 0

	_ = p.WalkTree(node, func(n *sitter.Node) error {
		if n.IsError() || n.IsMissing() {
			count++
		}
		return nil
	})

	return count
}
