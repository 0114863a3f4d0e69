package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"

	"github.com/ludo-technologies/codedist/domain"
)

// Config represents the main configuration structure
type Config struct {
	// Grammar selects the grammar snippets are parsed with
	Grammar GrammarConfig `mapstructure:"grammar" yaml:"grammar"`

	// Cost holds the edit operation weights and path strategy
	Cost CostConfig `mapstructure:"cost" yaml:"cost"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Batch holds pair file discovery and execution configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch"`
}

// GrammarConfig holds grammar selection
type GrammarConfig struct {
	// Path of a grammar descriptor file. Takes precedence over Language.
	Path string `mapstructure:"path" yaml:"path"`

	// Language of a built-in grammar, used when Path is empty
	Language string `mapstructure:"language" yaml:"language"`
}

// CostConfig holds edit distance configuration
type CostConfig struct {
	InsertWeight int `mapstructure:"insert_weight" yaml:"insert_weight"`
	DeleteWeight int `mapstructure:"delete_weight" yaml:"delete_weight"`
	RenameWeight int `mapstructure:"rename_weight" yaml:"rename_weight"`

	// Strategy is the path decomposition: auto, left, right, heavy
	Strategy string `mapstructure:"strategy" yaml:"strategy"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv
	Format string `mapstructure:"format" yaml:"format"`

	// ShowDetails lists new identifiers with their nearest prior spelling
	ShowDetails bool `mapstructure:"show_details" yaml:"show_details"`
}

// BatchConfig holds configuration for batch comparison
type BatchConfig struct {
	// IncludePatterns specifies doublestar patterns of pair files
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies doublestar patterns of files to skip
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// MaxWorkers bounds concurrent comparisons; 0 means one per CPU
	MaxWorkers int `mapstructure:"max_workers" yaml:"max_workers"`

	// TimeoutSeconds bounds the whole batch; 0 means no limit
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Grammar: GrammarConfig{
			Language: domain.DefaultGrammarLanguage,
		},
		Cost: CostConfig{
			InsertWeight: domain.DefaultInsertCost,
			DeleteWeight: domain.DefaultDeleteCost,
			RenameWeight: domain.DefaultRenameCost,
			Strategy:     domain.DefaultPathStrategy,
		},
		Output: OutputConfig{
			Format:      string(domain.OutputFormatText),
			ShowDetails: false,
		},
		Batch: BatchConfig{
			IncludePatterns: append([]string(nil), domain.DefaultPairIncludePatterns...),
			ExcludePatterns: append([]string(nil), domain.DefaultPairExcludePatterns...),
			MaxWorkers:      domain.DefaultMaxWorkers,
			TimeoutSeconds:  domain.DefaultTimeoutSeconds,
		},
	}
}

// LoadConfig loads configuration with the following priority:
//  1. configPath, in any format viper reads (toml, yaml, json)
//  2. .codedist.toml found from startDir upwards
//  3. defaults
func LoadConfig(configPath, startDir string) (*Config, error) {
	if configPath != "" {
		return loadViperConfig(configPath)
	}

	config, err := NewTomlConfigLoader().LoadConfig(startDir)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// loadViperConfig reads an explicitly named configuration file
func loadViperConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file %s: %w", configPath, err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Unmarshal into config struct
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Grammar.Path == "" && c.Grammar.Language == "" {
		return fmt.Errorf("grammar.path or grammar.language must be set")
	}

	if c.Cost.InsertWeight < 0 || c.Cost.DeleteWeight < 0 || c.Cost.RenameWeight < 0 {
		return fmt.Errorf("cost weights must be >= 0, got insert=%d delete=%d rename=%d",
			c.Cost.InsertWeight, c.Cost.DeleteWeight, c.Cost.RenameWeight)
	}

	validStrategies := map[string]bool{
		domain.PathStrategyAuto:  true,
		domain.PathStrategyLeft:  true,
		domain.PathStrategyRight: true,
		domain.PathStrategyHeavy: true,
	}

	if !validStrategies[c.Cost.Strategy] {
		return fmt.Errorf("invalid cost.strategy '%s', must be one of: auto, left, right, heavy", c.Cost.Strategy)
	}

	// Validate output format
	if !domain.OutputFormat(c.Output.Format).IsValid() {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv", c.Output.Format)
	}

	// Validate include patterns (at least one must be specified)
	if len(c.Batch.IncludePatterns) == 0 {
		return fmt.Errorf("batch.include_patterns cannot be empty")
	}

	for _, pattern := range append(append([]string(nil), c.Batch.IncludePatterns...), c.Batch.ExcludePatterns...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid batch pattern '%s'", pattern)
		}
	}

	if c.Batch.MaxWorkers < 0 {
		return fmt.Errorf("batch.max_workers must be >= 0, got %d", c.Batch.MaxWorkers)
	}

	if c.Batch.TimeoutSeconds < 0 {
		return fmt.Errorf("batch.timeout_seconds must be >= 0, got %d", c.Batch.TimeoutSeconds)
	}

	return nil
}

// GrammarSelector returns the grammar selection as a domain value
func (c *Config) GrammarSelector() domain.GrammarSelector {
	return domain.GrammarSelector{
		Location: c.Grammar.Path,
		Language: c.Grammar.Language,
	}
}

// CostWeights returns the configured weights as a domain value
func (c *Config) CostWeights() domain.CostWeights {
	return domain.CostWeights{
		Insert: c.Cost.InsertWeight,
		Delete: c.Cost.DeleteWeight,
		Rename: c.Cost.RenameWeight,
	}
}
