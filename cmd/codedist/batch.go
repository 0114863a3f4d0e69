package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/codedist/app"
	"github.com/ludo-technologies/codedist/internal/config"
	"github.com/ludo-technologies/codedist/service"
)

// BatchCommand represents the batch command
type BatchCommand struct {
	engine          engineFlags
	output          outputFlags
	includePatterns []string
	excludePatterns []string
	maxWorkers      int
	timeoutSeconds  int
	noProgress      bool
}

// NewBatchCommand creates a new batch command
func NewBatchCommand() *BatchCommand {
	return &BatchCommand{}
}

// CreateCobraCommand creates the cobra command for batch comparison
func (b *BatchCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <paths...>",
		Short: "Compare every snippet pair in pair files",
		Long: `Compare every before/after pair found in pair files.

A pair file is JSON or YAML holding one record, or a list of records, with
"before" and "after" snippets and an optional "id". Directories are searched
recursively for files matching --include and not matching --exclude.

Pairs are compared concurrently. A pair that fails to parse is reported in
the results without stopping the others; the command then exits with 2.

Examples:
  codedist batch pairs/
  codedist batch --format csv -o results.csv pairs.yaml more.json
  codedist batch --workers 4 --timeout 60 --include "**/*.json" corpus/`,
		Args: cobra.MinimumNArgs(1),
		RunE: b.runBatch,
	}

	b.engine.register(cmd.Flags())
	b.output.register(cmd.Flags())
	cmd.Flags().StringSliceVar(&b.includePatterns, config.FlagInclude, nil, "Pair file patterns (default from config)")
	cmd.Flags().StringSliceVar(&b.excludePatterns, config.FlagExclude, nil, "Patterns of files to skip")
	cmd.Flags().IntVarP(&b.maxWorkers, config.FlagWorkers, "w", 0, "Concurrent comparisons (0 = one per CPU)")
	cmd.Flags().IntVar(&b.timeoutSeconds, config.FlagTimeout, 0, "Timeout for the whole batch in seconds (0 = none)")
	cmd.Flags().BoolVar(&b.noProgress, "no-progress", false, "Disable the progress bar")

	return cmd
}

// runBatch executes the batch command
func (b *BatchCommand) runBatch(cmd *cobra.Command, args []string) error {
	overrides := config.Overrides{
		IncludePatterns: b.includePatterns,
		ExcludePatterns: b.excludePatterns,
		MaxWorkers:      b.maxWorkers,
		TimeoutSeconds:  b.timeoutSeconds,
	}
	b.engine.apply(&overrides)
	b.output.apply(&overrides)

	cfg, err := loadConfig(cmd, overrides)
	if err != nil {
		return err
	}

	req := service.NewConfigurationLoader().BatchRequest(cfg, args)
	req.OutputWriter = cmd.OutOrStdout()
	req.OutputPath = b.output.outputPath
	req.ShowProgress = !b.noProgress

	progress := service.NewProgressManager()
	defer progress.Close()

	batchService := service.NewBatchService(
		service.NewFileReader(),
		service.NewComparisonServiceWithCache(service.SharedGrammarCache()),
		service.NewParallelExecutor(),
		progress,
	)
	useCase := app.NewBatchUseCase(batchService, newOutputFormatter(cmd), service.NewFileOutputWriter(cmd.ErrOrStderr()))

	response, err := useCase.Execute(cmd.Context(), *req)
	if err != nil {
		return err
	}
	if response.Summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", errPairsFailed, response.Summary.Failed, response.Summary.TotalPairs)
	}
	return nil
}

// NewBatchCmd creates and returns the batch cobra command
func NewBatchCmd() *cobra.Command {
	return NewBatchCommand().CreateCobraCommand()
}
