package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ludo-technologies/codedist/internal/log"
	"github.com/ludo-technologies/codedist/internal/version"
	"github.com/ludo-technologies/codedist/service"
)

// Exit codes
const (
	exitOK          = 0
	exitError       = 1
	exitPairsFailed = 2
)

// errPairsFailed is returned by batch when at least one pair could not be compared
var errPairsFailed = errors.New("one or more pairs failed")

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
		logEnv     string
		logger     *zap.Logger
	)

	rootCmd := &cobra.Command{
		Use:   "codedist",
		Short: "Measure how far one code snippet is from another",
		Long: `codedist compares a before and an after code snippet by the shape of
their syntax trees.

Identifier and literal spellings are stripped before comparing, so renaming
a variable costs nothing. Two numbers come out of every comparison:
  • tree edit distance: the fewest node insertions, deletions and relabelings
    turning one stripped tree into the other
  • new identifier count: spellings the after snippet uses that the before
    snippet does not`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = log.Initialize(log.Options{Env: logEnv, Verbose: verbose})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logEnv, "log-env", envOr("CODEDIST_LOG_ENV", log.LoggingEnvDev.String()), "Log encoding (dev|prod)")

	rootCmd.AddCommand(NewDistanceCmd())
	rootCmd.AddCommand(NewIdentifiersCmd())
	rootCmd.AddCommand(NewCompareCmd())
	rootCmd.AddCommand(NewBatchCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// reportError prints err with its category and recovery suggestions
func reportError(w io.Writer, err error) int {
	if errors.Is(err, errPairsFailed) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitPairsFailed
	}

	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)
	fmt.Fprintf(w, "Error: %v\n", err)
	fmt.Fprintf(w, "\n%s: %s\n", categorized.Category, categorized.Message)
	for _, suggestion := range categorizer.GetRecoverySuggestions(categorized.Category) {
		fmt.Fprintf(w, "  • %s\n", suggestion)
	}
	return exitError
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(reportError(os.Stderr, err))
	}
	os.Exit(exitOK)
}
