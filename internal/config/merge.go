package config

// WasExplicitlySet checks if a flag was explicitly set by the user
func WasExplicitlySet(flags map[string]bool, flagName string) bool {
	if flags == nil {
		return false
	}
	return flags[flagName]
}

// MergeString merges a string value, using override only if explicitly set
func MergeString(base, override, flagName string, flags map[string]bool) string {
	if WasExplicitlySet(flags, flagName) {
		return override
	}
	return base
}

// MergeInt merges an int value, using override only if explicitly set
func MergeInt(base, override int, flagName string, flags map[string]bool) int {
	if WasExplicitlySet(flags, flagName) {
		return override
	}
	return base
}

// MergeBool merges a bool value, using override only if explicitly set
func MergeBool(base, override bool, flagName string, flags map[string]bool) bool {
	if WasExplicitlySet(flags, flagName) {
		return override
	}
	return base
}

// MergeStringSlice merges a string slice, using override only if explicitly set
func MergeStringSlice(base, override []string, flagName string, flags map[string]bool) []string {
	if WasExplicitlySet(flags, flagName) && len(override) > 0 {
		return override
	}
	return base
}

// Overrides holds command line values that may replace configured ones
type Overrides struct {
	GrammarPath     string
	Language        string
	InsertWeight    int
	DeleteWeight    int
	RenameWeight    int
	Strategy        string
	Format          string
	ShowDetails     bool
	IncludePatterns []string
	ExcludePatterns []string
	MaxWorkers      int
	TimeoutSeconds  int
}

// Flag names recognised by ApplyOverrides
const (
	FlagGrammar  = "grammar"
	FlagLanguage = "language"
	FlagInsert   = "insert-cost"
	FlagDelete   = "delete-cost"
	FlagRename   = "rename-cost"
	FlagStrategy = "strategy"
	FlagFormat   = "format"
	FlagDetails  = "details"
	FlagInclude  = "include"
	FlagExclude  = "exclude"
	FlagWorkers  = "workers"
	FlagTimeout  = "timeout"
)

// ApplyOverrides returns a copy of c with every explicitly set flag applied.
// An explicit --language clears a configured grammar path and vice versa.
func (c *Config) ApplyOverrides(o Overrides, flags map[string]bool) *Config {
	merged := *c

	merged.Grammar.Path = MergeString(c.Grammar.Path, o.GrammarPath, FlagGrammar, flags)
	merged.Grammar.Language = MergeString(c.Grammar.Language, o.Language, FlagLanguage, flags)
	if WasExplicitlySet(flags, FlagLanguage) && !WasExplicitlySet(flags, FlagGrammar) {
		merged.Grammar.Path = ""
	}

	merged.Cost.InsertWeight = MergeInt(c.Cost.InsertWeight, o.InsertWeight, FlagInsert, flags)
	merged.Cost.DeleteWeight = MergeInt(c.Cost.DeleteWeight, o.DeleteWeight, FlagDelete, flags)
	merged.Cost.RenameWeight = MergeInt(c.Cost.RenameWeight, o.RenameWeight, FlagRename, flags)
	merged.Cost.Strategy = MergeString(c.Cost.Strategy, o.Strategy, FlagStrategy, flags)

	merged.Output.Format = MergeString(c.Output.Format, o.Format, FlagFormat, flags)
	merged.Output.ShowDetails = MergeBool(c.Output.ShowDetails, o.ShowDetails, FlagDetails, flags)

	merged.Batch.IncludePatterns = MergeStringSlice(c.Batch.IncludePatterns, o.IncludePatterns, FlagInclude, flags)
	merged.Batch.ExcludePatterns = MergeStringSlice(c.Batch.ExcludePatterns, o.ExcludePatterns, FlagExclude, flags)
	merged.Batch.MaxWorkers = MergeInt(c.Batch.MaxWorkers, o.MaxWorkers, FlagWorkers, flags)
	merged.Batch.TimeoutSeconds = MergeInt(c.Batch.TimeoutSeconds, o.TimeoutSeconds, FlagTimeout, flags)

	return &merged
}
