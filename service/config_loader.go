package service

import (
	"os"
	"time"

	"github.com/ludo-technologies/codedist/domain"
	"github.com/ludo-technologies/codedist/internal/config"
)

// ConfigurationLoaderImpl resolves configuration files and command line
// overrides into comparison and batch requests
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// Load reads configPath (or discovers .codedist.toml from startDir),
// applies the explicitly set overrides, and validates the result
func (c *ConfigurationLoaderImpl) Load(configPath, startDir string, overrides config.Overrides, explicitFlags map[string]bool) (*config.Config, error) {
	if startDir == "" {
		if wd, err := os.Getwd(); err == nil {
			startDir = wd
		}
	}

	cfg, err := config.LoadConfig(configPath, startDir)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}

	merged := cfg.ApplyOverrides(overrides, explicitFlags)
	if err := merged.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}
	return merged, nil
}

// CompareRequest builds a comparison request from a resolved configuration
func (c *ConfigurationLoaderImpl) CompareRequest(cfg *config.Config) *domain.CompareRequest {
	return &domain.CompareRequest{
		Grammar:      cfg.GrammarSelector(),
		Cost:         cfg.CostWeights(),
		Strategy:     cfg.Cost.Strategy,
		OutputFormat: domain.OutputFormat(cfg.Output.Format),
		OutputWriter: os.Stdout,
		ShowDetails:  cfg.Output.ShowDetails,
	}
}

// BatchRequest builds a batch request from a resolved configuration
func (c *ConfigurationLoaderImpl) BatchRequest(cfg *config.Config, paths []string) *domain.BatchRequest {
	return &domain.BatchRequest{
		Paths:           paths,
		IncludePatterns: cfg.Batch.IncludePatterns,
		ExcludePatterns: cfg.Batch.ExcludePatterns,
		Grammar:         cfg.GrammarSelector(),
		Cost:            cfg.CostWeights(),
		Strategy:        cfg.Cost.Strategy,
		MaxWorkers:      cfg.Batch.MaxWorkers,
		Timeout:         time.Duration(cfg.Batch.TimeoutSeconds) * time.Second,
		OutputFormat:    domain.OutputFormat(cfg.Output.Format),
		OutputWriter:    os.Stdout,
		ShowDetails:     cfg.Output.ShowDetails,
	}
}
