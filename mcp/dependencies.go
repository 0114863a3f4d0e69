package mcp

import (
	"github.com/ludo-technologies/codedist/domain"
	"github.com/ludo-technologies/codedist/internal/config"
	"github.com/ludo-technologies/codedist/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	comparison domain.ComparisonService
	batch      domain.BatchService
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
// Grammars are loaded once per server and shared by every tool call.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		comparison: service.NewComparisonServiceWithCache(service.NewGrammarCache()),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configuration file the snapshot was loaded from (empty when discovered or defaulted).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// Comparison returns the service comparing single pairs.
func (d *Dependencies) Comparison() domain.ComparisonService {
	return d.comparison
}

// BuildBatchService assembles a batch service for one tool call. The
// executor holds per-run settings, so calls never share one.
func (d *Dependencies) BuildBatchService() domain.BatchService {
	if d.batch != nil {
		return d.batch
	}
	return service.NewBatchService(
		service.NewFileReader(),
		d.comparison,
		service.NewParallelExecutor(),
		nil,
	)
}
