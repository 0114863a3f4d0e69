package domain

import (
	"context"
	"io"
	"time"
)

// SnippetPair is one before/after record of a pair file
type SnippetPair struct {
	ID     string `json:"id" yaml:"id"`
	Before string `json:"before" yaml:"before"`
	After  string `json:"after" yaml:"after"`

	// Source is the pair file the record was read from
	Source string `json:"-" yaml:"-"`
}

// BatchRequest represents a request to compare every pair found under Paths
type BatchRequest struct {
	// Pair files or directories searched for pair files
	Paths           []string
	IncludePatterns []string
	ExcludePatterns []string

	Grammar  GrammarSelector
	Cost     CostWeights
	Strategy string

	// Execution
	MaxWorkers   int
	Timeout      time.Duration
	ShowProgress bool

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	ShowDetails  bool
}

// PairResult holds the outcome of one pair; exactly one of Result and Error is set
type PairResult struct {
	ID     string           `json:"id" yaml:"id"`
	Source string           `json:"source" yaml:"source"`
	Result *CompareResponse `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the pair could not be compared
func (r PairResult) Failed() bool {
	return r.Error != ""
}

// BatchSummary aggregates the successful comparisons of a batch
type BatchSummary struct {
	TotalPairs          int     `json:"total_pairs" yaml:"total_pairs"`
	Succeeded           int     `json:"succeeded" yaml:"succeeded"`
	Failed              int     `json:"failed" yaml:"failed"`
	MeanDistance        float64 `json:"mean_distance" yaml:"mean_distance"`
	MaxDistance         int     `json:"max_distance" yaml:"max_distance"`
	TotalNewIdentifiers int     `json:"total_new_identifiers" yaml:"total_new_identifiers"`
}

// BatchResponse lists pair results in input order with their summary
type BatchResponse struct {
	Grammar string       `json:"grammar" yaml:"grammar"`
	Files   []string     `json:"files" yaml:"files"`
	Results []PairResult `json:"results" yaml:"results"`
	Summary BatchSummary `json:"summary" yaml:"summary"`
}

// BatchService compares many snippet pairs concurrently
type BatchService interface {
	Run(ctx context.Context, req *BatchRequest) (*BatchResponse, error)
}

// PairReader discovers and reads pair files
type PairReader interface {
	// CollectPairFiles expands paths into pair files matching the patterns
	CollectPairFiles(paths []string, includePatterns, excludePatterns []string) ([]string, error)

	// ReadPairs reads every record of a pair file
	ReadPairs(path string) ([]SnippetPair, error)
}
