package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/codedist/internal/parser"
	"github.com/ludo-technologies/codedist/internal/version"
)

// VersionCommand represents the version command
type VersionCommand struct {
	short bool
}

// NewVersionCommand creates a new version command
func NewVersionCommand() *VersionCommand {
	return &VersionCommand{
		short: false,
	}
}

// CreateCobraCommand creates the cobra command for version display
func (v *VersionCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display detailed version information for codedist.

Shows version number, build commit, build date, Go version, platform
information and the built-in grammar languages.
Use --short to display only the version number.

Examples:
  # Show full version information
  codedist version

  # Show only version number (useful for scripts)
  codedist version --short`,
		RunE: v.runVersion,
	}

	cmd.Flags().BoolVarP(&v.short, "short", "s", false, "Show only version number")

	return cmd
}

// runVersion executes the version command
func (v *VersionCommand) runVersion(cmd *cobra.Command, args []string) error {
	if v.short {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version.Short())
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version.Info())
	fmt.Fprintf(cmd.OutOrStdout(), "Languages: %v\n", parser.SupportedLanguages())
	return nil
}

// NewVersionCmd creates and returns the version cobra command
func NewVersionCmd() *cobra.Command {
	versionCommand := NewVersionCommand()
	return versionCommand.CreateCobraCommand()
}
