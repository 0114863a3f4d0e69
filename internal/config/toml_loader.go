package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ludo-technologies/codedist/domain"
)

// CodedistTomlConfig represents the structure of .codedist.toml
type CodedistTomlConfig struct {
	Grammar TomlGrammarConfig `toml:"grammar"`
	Cost    TomlCostConfig    `toml:"cost"`
	Output  TomlOutputConfig  `toml:"output"`
	Batch   TomlBatchConfig   `toml:"batch"`
}

// TomlGrammarConfig represents the [grammar] section
type TomlGrammarConfig struct {
	Path     string `toml:"path"`
	Language string `toml:"language"`
}

// TomlCostConfig represents the [cost] section
type TomlCostConfig struct {
	InsertWeight *int   `toml:"insert_weight"` // pointer to detect unset
	DeleteWeight *int   `toml:"delete_weight"` // pointer to detect unset
	RenameWeight *int   `toml:"rename_weight"` // pointer to detect unset
	Strategy     string `toml:"strategy"`
}

// TomlOutputConfig represents the [output] section
type TomlOutputConfig struct {
	Format      string `toml:"format"`
	ShowDetails *bool  `toml:"show_details"` // pointer to detect unset
}

// TomlBatchConfig represents the [batch] section
type TomlBatchConfig struct {
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
	MaxWorkers      *int     `toml:"max_workers"`     // pointer to detect unset
	TimeoutSeconds  *int     `toml:"timeout_seconds"` // pointer to detect unset
}

// TomlConfigLoader handles TOML-only configuration loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads .codedist.toml found from startDir upwards, merged over
// the defaults. Without a config file the defaults are returned.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	configPath, err := l.FindConfigFile(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return l.LoadFile(configPath)
}

// LoadFile loads a single .codedist.toml file merged over the defaults
func (l *TomlConfigLoader) LoadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var tomlConfig CodedistTomlConfig
	if err := toml.Unmarshal(data, &tomlConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	config := DefaultConfig()
	l.mergeTomlConfig(config, &tomlConfig)

	// A relative grammar path is relative to the config file
	if config.Grammar.Path != "" && !filepath.IsAbs(config.Grammar.Path) {
		config.Grammar.Path = filepath.Join(filepath.Dir(configPath), config.Grammar.Path)
	}

	return config, nil
}

// FindConfigFile walks up the directory tree to find .codedist.toml
func (l *TomlConfigLoader) FindConfigFile(startDir string) (string, error) {
	dir := startDir
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	for {
		configPath := filepath.Join(dir, domain.ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// mergeTomlConfig merges .codedist.toml values into defaults
// using pointer fields to detect unset values
func (l *TomlConfigLoader) mergeTomlConfig(defaults *Config, tomlConfig *CodedistTomlConfig) {
	// [grammar]: a path replaces the built-in language selection
	if tomlConfig.Grammar.Path != "" {
		defaults.Grammar.Path = tomlConfig.Grammar.Path
	}
	if tomlConfig.Grammar.Language != "" {
		defaults.Grammar.Language = tomlConfig.Grammar.Language
	}

	// [cost]
	if tomlConfig.Cost.InsertWeight != nil {
		defaults.Cost.InsertWeight = *tomlConfig.Cost.InsertWeight
	}
	if tomlConfig.Cost.DeleteWeight != nil {
		defaults.Cost.DeleteWeight = *tomlConfig.Cost.DeleteWeight
	}
	if tomlConfig.Cost.RenameWeight != nil {
		defaults.Cost.RenameWeight = *tomlConfig.Cost.RenameWeight
	}
	if tomlConfig.Cost.Strategy != "" {
		defaults.Cost.Strategy = tomlConfig.Cost.Strategy
	}

	// [output]
	if tomlConfig.Output.Format != "" {
		defaults.Output.Format = tomlConfig.Output.Format
	}
	if tomlConfig.Output.ShowDetails != nil {
		defaults.Output.ShowDetails = *tomlConfig.Output.ShowDetails
	}

	// [batch]
	if len(tomlConfig.Batch.IncludePatterns) > 0 {
		defaults.Batch.IncludePatterns = tomlConfig.Batch.IncludePatterns
	}
	if tomlConfig.Batch.ExcludePatterns != nil {
		defaults.Batch.ExcludePatterns = tomlConfig.Batch.ExcludePatterns
	}
	if tomlConfig.Batch.MaxWorkers != nil {
		defaults.Batch.MaxWorkers = *tomlConfig.Batch.MaxWorkers
	}
	if tomlConfig.Batch.TimeoutSeconds != nil {
		defaults.Batch.TimeoutSeconds = *tomlConfig.Batch.TimeoutSeconds
	}
}
