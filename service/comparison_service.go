package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ludo-technologies/codedist/domain"
	"github.com/ludo-technologies/codedist/internal/analyzer"
	"github.com/ludo-technologies/codedist/internal/constants"
	"github.com/ludo-technologies/codedist/internal/parser"
)

// ComparisonServiceImpl implements the ComparisonService interface
type ComparisonServiceImpl struct {
	grammars *GrammarCache
}

// NewComparisonService creates a new comparison service implementation
func NewComparisonService() *ComparisonServiceImpl {
	return NewComparisonServiceWithCache(NewGrammarCache())
}

// NewComparisonServiceWithCache creates a comparison service sharing an existing grammar cache
func NewComparisonServiceWithCache(cache *GrammarCache) *ComparisonServiceImpl {
	if cache == nil {
		cache = NewGrammarCache()
	}
	return &ComparisonServiceImpl{grammars: cache}
}

// normalizedSnippet is a snippet reduced to its stripped tree and spellings
type normalizedSnippet struct {
	tree      *analyzer.Node
	spellings analyzer.SpellingSet
}

// Compare parses both snippets and computes both measurements
func (s *ComparisonServiceImpl) Compare(ctx context.Context, req *domain.CompareRequest) (*domain.CompareResponse, error) {
	if req == nil {
		return nil, domain.NewValidationError("compare request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	grammar, err := s.grammars.Get(req.Grammar)
	if err != nil {
		return nil, err
	}

	before, after, err := s.normalizePair(ctx, grammar, req.Before, req.After)
	if err != nil {
		return nil, err
	}

	engine := analyzer.NewTreeEditDistance(costModelFor(req.Cost))
	engine.SetStrategy(pathStrategyFor(req.Strategy))
	result, err := engine.ComputeContext(ctx, before.tree, after.tree)
	if err != nil {
		return nil, fmt.Errorf("comparison cancelled: %w", err)
	}

	response := &domain.CompareResponse{
		BeforeName:         req.BeforeName,
		AfterName:          req.AfterName,
		Grammar:            req.Grammar.String(),
		TreeEditDistance:   result.Distance,
		NewIdentifierCount: analyzer.NewIdentifierCount(before.spellings, after.spellings),
		Similarity:         result.Similarity,
		BeforeNodes:        result.Tree1Size,
		AfterNodes:         result.Tree2Size,
		Strategy:           result.Strategy.String(),
	}
	response.Change = constants.ClassifyChange(response.TreeEditDistance, response.NewIdentifierCount, response.Similarity)

	if req.ShowDetails {
		for _, added := range analyzer.NewIdentifiers(before.spellings, after.spellings) {
			response.NewIdentifiers = append(response.NewIdentifiers, domain.NewIdentifier{
				Spelling: added.Spelling,
				Nearest:  added.Nearest,
				Distance: added.Distance,
			})
		}
	}

	slog.DebugContext(ctx, "snippets compared",
		"grammar", response.Grammar,
		"distance", response.TreeEditDistance,
		"new_identifiers", response.NewIdentifierCount,
		"strategy", response.Strategy)

	return response, nil
}

// TreeEditDistance computes the normalized tree edit distance with unit costs
func (s *ComparisonServiceImpl) TreeEditDistance(ctx context.Context, before, after, grammarLocation string) (int, error) {
	grammar, err := s.grammarAt(grammarLocation)
	if err != nil {
		return 0, err
	}

	b, a, err := s.normalizePair(ctx, grammar, before, after)
	if err != nil {
		return 0, err
	}
	result, err := analyzer.NewTreeEditDistance(nil).ComputeContext(ctx, b.tree, a.tree)
	if err != nil {
		return 0, fmt.Errorf("comparison cancelled: %w", err)
	}
	return result.Distance, nil
}

// NewIdentifierCount counts spellings of after that are absent from before
func (s *ComparisonServiceImpl) NewIdentifierCount(ctx context.Context, before, after, grammarLocation string) (int, error) {
	grammar, err := s.grammarAt(grammarLocation)
	if err != nil {
		return 0, err
	}

	b, a, err := s.normalizePair(ctx, grammar, before, after)
	if err != nil {
		return 0, err
	}
	return analyzer.NewIdentifierCount(b.spellings, a.spellings), nil
}

// CheckGrammar loads the grammar into the cache
func (s *ComparisonServiceImpl) CheckGrammar(selector domain.GrammarSelector) error {
	_, err := s.grammars.Get(selector)
	return err
}

func (s *ComparisonServiceImpl) grammarAt(location string) (*parser.Grammar, error) {
	if location == "" {
		return nil, grammarLoadError(fmt.Errorf("%w: empty grammar location", parser.ErrGrammarNotFound))
	}
	return s.grammars.Get(domain.GrammarSelector{Location: location})
}

// normalizePair parses and normalizes both snippets with one parser
func (s *ComparisonServiceImpl) normalizePair(ctx context.Context, grammar *parser.Grammar, before, after string) (*normalizedSnippet, *normalizedSnippet, error) {
	p := parser.New(grammar)
	normalizer := analyzer.NewNormalizerForGrammar(grammar)

	b, err := normalizeSnippet(ctx, p, normalizer, "before", before)
	if err != nil {
		return nil, nil, err
	}
	a, err := normalizeSnippet(ctx, p, normalizer, "after", after)
	if err != nil {
		return nil, nil, err
	}
	return b, a, nil
}

func normalizeSnippet(ctx context.Context, p *parser.Parser, normalizer *analyzer.Normalizer, label, code string) (*normalizedSnippet, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("comparison cancelled: %w", ctx.Err())
	default:
	}

	result, err := p.ParseSnippet(ctx, code)
	if err != nil {
		return nil, parseFailure(label, err)
	}

	tree, spellings, err := normalizer.Normalize(result.SourceCode, result.Root())
	if err != nil {
		return nil, parseFailure(label, err)
	}
	return &normalizedSnippet{tree: tree, spellings: spellings}, nil
}

func parseFailure(label string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("comparison cancelled: %w", err)
	}
	return domain.NewParseError(label, err)
}

// costModelFor returns nil for unit weights so the engine uses its default model
func costModelFor(weights domain.CostWeights) analyzer.CostModel {
	if weights == (domain.CostWeights{}) || weights.IsUnit() {
		return nil
	}
	return analyzer.NewWeightedCostModel(weights.Insert, weights.Delete, weights.Rename, nil)
}

func pathStrategyFor(name string) analyzer.PathStrategy {
	switch name {
	case domain.PathStrategyLeft:
		return analyzer.LeftPaths
	case domain.PathStrategyRight:
		return analyzer.RightPaths
	case domain.PathStrategyHeavy:
		return analyzer.HeavyPaths
	default:
		return analyzer.AutoPaths
	}
}
