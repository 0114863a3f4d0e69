package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ludo-technologies/codedist/domain"
	"github.com/ludo-technologies/codedist/internal/config"
	"github.com/ludo-technologies/codedist/service"
)

// GetExplicitFlags extracts which flags were explicitly set from a cobra command
func GetExplicitFlags(cmd *cobra.Command) map[string]bool {
	explicitFlags := make(map[string]bool)
	if cmd != nil {
		cmd.Flags().Visit(func(f *pflag.Flag) {
			explicitFlags[f.Name] = true
		})
	}
	return explicitFlags
}

// engineFlags are shared by every command that compares snippets
type engineFlags struct {
	grammarPath  string
	language     string
	insertWeight int
	deleteWeight int
	renameWeight int
	strategy     string
}

func (f *engineFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.grammarPath, config.FlagGrammar, "g", "", "Grammar descriptor file")
	flags.StringVarP(&f.language, config.FlagLanguage, "l", domain.DefaultGrammarLanguage, "Built-in grammar language, used without --grammar")
	flags.IntVar(&f.insertWeight, config.FlagInsert, domain.DefaultInsertCost, "Cost of inserting a node")
	flags.IntVar(&f.deleteWeight, config.FlagDelete, domain.DefaultDeleteCost, "Cost of deleting a node")
	flags.IntVar(&f.renameWeight, config.FlagRename, domain.DefaultRenameCost, "Cost of relabeling a node")
	flags.StringVar(&f.strategy, config.FlagStrategy, domain.DefaultPathStrategy, "Path strategy (auto|left|right|heavy)")
}

func (f *engineFlags) apply(o *config.Overrides) {
	o.GrammarPath = f.grammarPath
	o.Language = f.language
	o.InsertWeight = f.insertWeight
	o.DeleteWeight = f.deleteWeight
	o.RenameWeight = f.renameWeight
	o.Strategy = f.strategy
}

// outputFlags select the report format and destination
type outputFlags struct {
	format      string
	showDetails bool
	outputPath  string
}

func (f *outputFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.format, config.FlagFormat, "f", string(domain.OutputFormatText), "Output format (text|json|yaml|csv)")
	flags.BoolVar(&f.showDetails, config.FlagDetails, false, "List new identifiers with their nearest prior spelling")
	flags.StringVarP(&f.outputPath, "output", "o", "", "Write the report to a file instead of stdout")
}

func (f *outputFlags) apply(o *config.Overrides) {
	o.Format = f.format
	o.ShowDetails = f.showDetails
}

// loadConfig resolves the configuration file named by --config, or the
// nearest .codedist.toml, and applies the flags set on cmd
func loadConfig(cmd *cobra.Command, overrides config.Overrides) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	startDir, err := os.Getwd()
	if err != nil {
		startDir = "."
	}
	return service.NewConfigurationLoader().Load(configPath, startDir, overrides, GetExplicitFlags(cmd))
}
