package domain

import (
	"context"
	"fmt"
	"io"
)

// PathStrategy names accepted by CompareRequest.Strategy
const (
	PathStrategyAuto  = "auto"
	PathStrategyLeft  = "left"
	PathStrategyRight = "right"
	PathStrategyHeavy = "heavy"
)

// CostWeights scales the unit cost of each edit operation
type CostWeights struct {
	Insert int `json:"insert" yaml:"insert"`
	Delete int `json:"delete" yaml:"delete"`
	Rename int `json:"rename" yaml:"rename"`
}

// DefaultCostWeights returns unit weights for every operation
func DefaultCostWeights() CostWeights {
	return CostWeights{
		Insert: DefaultInsertCost,
		Delete: DefaultDeleteCost,
		Rename: DefaultRenameCost,
	}
}

// IsUnit reports whether all weights are 1
func (w CostWeights) IsUnit() bool {
	return w.Insert == 1 && w.Delete == 1 && w.Rename == 1
}

// Validate checks that all weights are non-negative
func (w CostWeights) Validate() error {
	if w.Insert < 0 || w.Delete < 0 || w.Rename < 0 {
		return NewValidationError(fmt.Sprintf("cost weights must be non-negative, got insert=%d delete=%d rename=%d",
			w.Insert, w.Delete, w.Rename))
	}
	return nil
}

// GrammarSelector identifies the grammar a comparison parses with
type GrammarSelector struct {
	// Location of a grammar descriptor file; takes precedence over Language
	Location string
	// Language of a built-in grammar, used when Location is empty
	Language string
}

// String returns the location, or the built-in language name
func (g GrammarSelector) String() string {
	if g.Location != "" {
		return g.Location
	}
	return "builtin:" + g.Language
}

// CompareRequest represents a request to compare a before and after snippet
type CompareRequest struct {
	// Snippet texts
	Before string
	After  string

	// Labels used in reports, typically the file names
	BeforeName string
	AfterName  string

	Grammar GrammarSelector

	// Engine configuration
	Cost     CostWeights
	Strategy string

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	ShowDetails  bool
}

// Validate checks the request before any parsing happens
func (r *CompareRequest) Validate() error {
	if r.Grammar.Location == "" && r.Grammar.Language == "" {
		return NewValidationError("a grammar location or built-in language is required")
	}
	if err := r.Cost.Validate(); err != nil {
		return err
	}
	switch r.Strategy {
	case "", PathStrategyAuto, PathStrategyLeft, PathStrategyRight, PathStrategyHeavy:
	default:
		return NewValidationError(fmt.Sprintf("invalid strategy %q, must be one of: auto, left, right, heavy", r.Strategy))
	}
	if r.OutputFormat != "" && !r.OutputFormat.IsValid() {
		return NewUnsupportedFormatError(string(r.OutputFormat))
	}
	return nil
}

// NewIdentifier is a spelling introduced by the after snippet
type NewIdentifier struct {
	Spelling string `json:"spelling" yaml:"spelling"`
	Nearest  string `json:"nearest,omitempty" yaml:"nearest,omitempty"`
	Distance int    `json:"distance" yaml:"distance"`
}

// CompareResponse holds both measurements for one pair of snippets
type CompareResponse struct {
	BeforeName string `json:"before" yaml:"before"`
	AfterName  string `json:"after" yaml:"after"`
	Grammar    string `json:"grammar" yaml:"grammar"`

	TreeEditDistance   int     `json:"tree_edit_distance" yaml:"tree_edit_distance"`
	NewIdentifierCount int     `json:"new_identifier_count" yaml:"new_identifier_count"`
	Similarity         float64 `json:"similarity" yaml:"similarity"`
	// Change classifies the pair: identical, renamed, near-miss or rewrite
	Change string `json:"change" yaml:"change"`

	BeforeNodes int    `json:"before_nodes" yaml:"before_nodes"`
	AfterNodes  int    `json:"after_nodes" yaml:"after_nodes"`
	Strategy    string `json:"strategy" yaml:"strategy"`

	// Details, filled when requested
	NewIdentifiers []NewIdentifier `json:"new_identifiers,omitempty" yaml:"new_identifiers,omitempty"`
}

// ComparisonService measures the difference between two snippets
type ComparisonService interface {
	// Compare parses both snippets and computes both measurements
	Compare(ctx context.Context, req *CompareRequest) (*CompareResponse, error)

	// TreeEditDistance computes the normalized tree edit distance only
	TreeEditDistance(ctx context.Context, before, after, grammarLocation string) (int, error)

	// NewIdentifierCount counts spellings of after that are absent from before
	NewIdentifierCount(ctx context.Context, before, after, grammarLocation string) (int, error)

	// CheckGrammar loads the grammar, reporting a missing or unusable one
	CheckGrammar(selector GrammarSelector) error
}

// SnippetReader reads snippet text from files or stdin
type SnippetReader interface {
	// ReadSnippet reads the snippet at path; "-" reads standard input
	ReadSnippet(path string) (string, error)
}
