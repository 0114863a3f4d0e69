// Package parser turns source snippets into concrete syntax trees using
// tree-sitter.
//
// A Grammar is loaded once from a grammar descriptor (TOML or YAML) naming
// one of the languages compiled into the binary, plus the scaffold used to
// wrap bare fragments and the category patterns that identify identifier
// and literal leaves. Grammars are immutable and may be shared; Parsers are
// cheap and belong to a single goroutine.
//
// Basic usage:
//
//	g, err := parser.LoadGrammar("grammars/java.toml")
//	if err != nil {
//	    // errors.Is(err, parser.ErrGrammarNotFound) or parser.ErrInvalidGrammar
//	}
//	p := parser.New(g)
//	result, err := p.ParseSnippet(ctx, "void foo() { return; }")
//	// Use result.Root() to traverse the tree
package parser
