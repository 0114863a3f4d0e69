package mcp

import (
	"github.com/ludo-technologies/codedist/domain"
	"github.com/ludo-technologies/codedist/internal/config"
)

func NewTestDependencies(comparison domain.ComparisonService, batch domain.BatchService, cfg *config.Config) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Dependencies{
		comparison: comparison,
		batch:      batch,
		config:     cfg,
	}
}
