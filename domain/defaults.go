package domain

// Grammar defaults. The built-in language is used when no grammar
// descriptor location is configured.
const (
	DefaultGrammarLanguage = "java"
)

// Edit cost defaults: unit cost for every operation
const (
	DefaultInsertCost = 1
	DefaultDeleteCost = 1
	DefaultRenameCost = 1
)

// DefaultPathStrategy lets the engine choose the cheaper decomposition per pair
const DefaultPathStrategy = "auto"

// Batch defaults
const (
	// DefaultMaxWorkers of 0 means one worker per CPU
	DefaultMaxWorkers = 0

	// DefaultTimeoutSeconds bounds a whole batch run
	DefaultTimeoutSeconds = 300
)

// DefaultPairIncludePatterns are the doublestar patterns matched against pair files
var DefaultPairIncludePatterns = []string{"**/*.yaml", "**/*.yml", "**/*.json"}

// DefaultPairExcludePatterns skips configuration files that live next to pair files
var DefaultPairExcludePatterns = []string{"**/.codedist.*"}

// ConfigFileName is the dedicated configuration file discovered from the working directory upwards
const ConfigFileName = ".codedist.toml"

// DefaultGrammarFileName is the grammar descriptor written by `codedist init`
const DefaultGrammarFileName = "grammar.toml"
