package main

import (
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/codedist/app"
	"github.com/ludo-technologies/codedist/domain"
	"github.com/ludo-technologies/codedist/internal/config"
	"github.com/ludo-technologies/codedist/service"
)

// CompareCommand represents the compare command
type CompareCommand struct {
	engine engineFlags
	output outputFlags
}

// NewCompareCommand creates a new compare command
func NewCompareCommand() *CompareCommand {
	return &CompareCommand{}
}

// CreateCobraCommand creates the cobra command for a full comparison report
func (c *CompareCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <before> <after>",
		Short: "Report both measurements for a pair of snippets",
		Long: `Compare a before and an after snippet and report the tree edit distance,
the new identifier count, the similarity and the tree sizes.

Either snippet may be "-" to read it from standard input.

Examples:
  # Text report
  codedist compare before.java after.java

  # JSON report listing every new identifier
  codedist compare --format json --details before.java after.java

  # Python snippets, written to a file
  codedist compare -l python -o report.yaml -f yaml old.py new.py`,
		Args: cobra.ExactArgs(2),
		RunE: c.runCompare,
	}

	c.engine.register(cmd.Flags())
	c.output.register(cmd.Flags())

	return cmd
}

// runCompare executes the compare command
func (c *CompareCommand) runCompare(cmd *cobra.Command, args []string) error {
	var overrides config.Overrides
	c.engine.apply(&overrides)
	c.output.apply(&overrides)

	_, err := runComparison(cmd, args, overrides, c.output.outputPath, true)
	return err
}

// runComparison loads configuration, compares the two snippet files and,
// when report is set, writes the formatted report
func runComparison(cmd *cobra.Command, args []string, overrides config.Overrides, outputPath string, report bool) (*domain.CompareResponse, error) {
	cfg, err := loadConfig(cmd, overrides)
	if err != nil {
		return nil, err
	}

	loader := service.NewConfigurationLoader()
	req := loader.CompareRequest(cfg)
	req.OutputWriter = cmd.OutOrStdout()
	req.OutputPath = outputPath

	builder := app.NewCompareUseCaseBuilder().
		WithService(service.NewComparisonServiceWithCache(service.SharedGrammarCache())).
		WithReader(service.NewFileReaderWithStdin(cmd.InOrStdin()))
	if report {
		builder = builder.
			WithFormatter(newOutputFormatter(cmd)).
			WithReportWriter(service.NewFileOutputWriter(cmd.ErrOrStderr()))
	}

	useCase, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return useCase.Execute(cmd.Context(), args[0], args[1], *req)
}

// newOutputFormatter colors text output only when stdout is a terminal
func newOutputFormatter(cmd *cobra.Command) *service.OutputFormatterImpl {
	if isTerminal(cmd.OutOrStdout()) {
		return service.NewColorOutputFormatter()
	}
	return service.NewOutputFormatter()
}

// NewCompareCmd creates and returns the compare cobra command
func NewCompareCmd() *cobra.Command {
	return NewCompareCommand().CreateCobraCommand()
}
