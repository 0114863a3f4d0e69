package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/codedist/internal/config"
)

// IdentifiersCommand prints the new identifier count
type IdentifiersCommand struct {
	engine  engineFlags
	details bool
}

// NewIdentifiersCommand creates a new identifiers command
func NewIdentifiersCommand() *IdentifiersCommand {
	return &IdentifiersCommand{}
}

// CreateCobraCommand creates the cobra command for the new identifier count
func (i *IdentifiersCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identifiers <before> <after>",
		Short: "Count identifier and literal spellings new in the after snippet",
		Long: `Print how many distinct identifier and literal spellings appear in the
after snippet but nowhere in the before snippet.

With --details every new spelling is listed after the count, together with
the closest spelling of the before snippet.

Examples:
  codedist identifiers before.java after.java
  codedist identifiers --details -l python old.py new.py`,
		Args: cobra.ExactArgs(2),
		RunE: i.runIdentifiers,
	}

	i.engine.register(cmd.Flags())
	cmd.Flags().BoolVar(&i.details, config.FlagDetails, false, "List each new spelling")
	return cmd
}

func (i *IdentifiersCommand) runIdentifiers(cmd *cobra.Command, args []string) error {
	var overrides config.Overrides
	i.engine.apply(&overrides)
	overrides.ShowDetails = i.details

	response, err := runComparison(cmd, args, overrides, "", false)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, response.NewIdentifierCount)
	for _, added := range response.NewIdentifiers {
		if added.Nearest == "" {
			fmt.Fprintf(out, "%q\n", added.Spelling)
			continue
		}
		fmt.Fprintf(out, "%q\t(nearest %q, distance %d)\n", added.Spelling, added.Nearest, added.Distance)
	}
	return nil
}

// NewIdentifiersCmd creates and returns the identifiers cobra command
func NewIdentifiersCmd() *cobra.Command {
	return NewIdentifiersCommand().CreateCobraCommand()
}
