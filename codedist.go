// Package codedist measures how far a code snippet moved from an earlier
// version of itself.
//
// Both snippets are parsed with the grammar described by a grammar
// descriptor file, identifier and literal spellings are stripped, and the
// exact tree edit distance between the two stripped trees is computed.
// Spellings are compared separately: NewIdentifierCount reports how many
// the after snippet introduces.
//
// Basic usage:
//
//	d, err := codedist.TreeEditDistance(buggy, fixed, "grammar.toml")
//	if err != nil {
//	    // domain.HasCode(err, domain.ErrCodeGrammarNotFound) and friends
//	}
//	n, err := codedist.NewIdentifierCount(buggy, fixed, "grammar.toml")
//
// Grammar descriptors are loaded once per location and shared by every
// call; all functions are safe for concurrent use.
package codedist

import (
	"context"

	"github.com/ludo-technologies/codedist/service"
)

var comparisons = service.NewComparisonServiceWithCache(service.SharedGrammarCache())

// TreeEditDistance returns the unit-cost edit distance between the stripped
// syntax trees of before and after
func TreeEditDistance(before, after, grammarLocation string) (int, error) {
	return TreeEditDistanceContext(context.Background(), before, after, grammarLocation)
}

// TreeEditDistanceContext is TreeEditDistance with cancellation
func TreeEditDistanceContext(ctx context.Context, before, after, grammarLocation string) (int, error) {
	return comparisons.TreeEditDistance(ctx, before, after, grammarLocation)
}

// NewIdentifierCount returns how many distinct identifier and literal
// spellings of after never occur in before
func NewIdentifierCount(before, after, grammarLocation string) (int, error) {
	return NewIdentifierCountContext(context.Background(), before, after, grammarLocation)
}

// NewIdentifierCountContext is NewIdentifierCount with cancellation
func NewIdentifierCountContext(ctx context.Context, before, after, grammarLocation string) (int, error) {
	return comparisons.NewIdentifierCount(ctx, before, after, grammarLocation)
}
