package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/codedist/internal/config"
)

// DistanceCommand prints only the tree edit distance
type DistanceCommand struct {
	engine engineFlags
}

// NewDistanceCommand creates a new distance command
func NewDistanceCommand() *DistanceCommand {
	return &DistanceCommand{}
}

// CreateCobraCommand creates the cobra command for the tree edit distance
func (d *DistanceCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distance <before> <after>",
		Short: "Print the tree edit distance between two snippets",
		Long: `Print the number of node insertions, deletions and relabelings that turn
the before snippet's stripped syntax tree into the after snippet's.

Identifiers and literals are compared by kind only, so renaming a variable
does not change the distance.

Examples:
  codedist distance before.java after.java
  git show HEAD~1:Foo.java | codedist distance - Foo.java
  codedist distance --grammar grammar.toml a.snippet b.snippet`,
		Args: cobra.ExactArgs(2),
		RunE: d.runDistance,
	}

	d.engine.register(cmd.Flags())
	return cmd
}

func (d *DistanceCommand) runDistance(cmd *cobra.Command, args []string) error {
	var overrides config.Overrides
	d.engine.apply(&overrides)

	response, err := runComparison(cmd, args, overrides, "", false)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), response.TreeEditDistance)
	return nil
}

// NewDistanceCmd creates and returns the distance cobra command
func NewDistanceCmd() *cobra.Command {
	return NewDistanceCommand().CreateCobraCommand()
}
