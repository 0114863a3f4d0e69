package service

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/ludo-technologies/codedist/domain"
	"github.com/ludo-technologies/codedist/internal/parser"
)

// sharedGrammarCache lets every service in one process reuse loaded grammars
var (
	sharedGrammarCacheOnce sync.Once
	sharedGrammarCache     *GrammarCache
)

// GrammarCache loads each grammar once and shares the immutable handle.
// It is safe for concurrent use. Failed loads are not kept, so a descriptor
// written after a failure is picked up by the next request.
type GrammarCache struct {
	mu      sync.Mutex
	entries map[domain.GrammarSelector]*parser.Grammar
}

// NewGrammarCache creates a new empty GrammarCache
func NewGrammarCache() *GrammarCache {
	return &GrammarCache{
		entries: make(map[domain.GrammarSelector]*parser.Grammar),
	}
}

// Get returns the grammar for selector, loading it on first use. Errors
// are domain errors with GRAMMAR_NOT_FOUND or INVALID_GRAMMAR codes.
func (c *GrammarCache) Get(selector domain.GrammarSelector) (*parser.Grammar, error) {
	// A location makes the language irrelevant
	if selector.Location != "" {
		selector.Language = ""
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if grammar, ok := c.entries[selector]; ok {
		return grammar, nil
	}

	grammar, err := loadGrammar(selector)
	if err != nil {
		return nil, err
	}
	c.entries[selector] = grammar
	slog.Debug("grammar loaded", "grammar", selector.String(), "language", grammar.Name())
	return grammar, nil
}

// SharedGrammarCache returns the process-wide grammar cache
func SharedGrammarCache() *GrammarCache {
	sharedGrammarCacheOnce.Do(func() {
		sharedGrammarCache = NewGrammarCache()
	})
	return sharedGrammarCache
}

// Len returns the number of loaded grammars
func (c *GrammarCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func loadGrammar(selector domain.GrammarSelector) (*parser.Grammar, error) {
	var (
		grammar *parser.Grammar
		err     error
	)
	if selector.Location != "" {
		grammar, err = parser.LoadGrammar(selector.Location)
	} else {
		grammar, err = parser.BuiltinGrammar(selector.Language)
	}
	if err != nil {
		return nil, grammarLoadError(err)
	}
	return grammar, nil
}

// grammarLoadError classifies a parser load error. The parser's message
// already names the grammar, so the domain error adds none of its own.
func grammarLoadError(err error) error {
	if errors.Is(err, parser.ErrGrammarNotFound) {
		return domain.NewDomainError(domain.ErrCodeGrammarNotFound, "cannot load grammar", err)
	}
	return domain.NewDomainError(domain.ErrCodeInvalidGrammar, "cannot load grammar", err)
}
