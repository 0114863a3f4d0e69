package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/codedist/domain"
	"github.com/ludo-technologies/codedist/internal/config"
	"github.com/ludo-technologies/codedist/internal/parser"
)

// InitCommand represents the init command
type InitCommand struct {
	force     bool
	dir       string
	language  string
	noGrammar bool
}

// NewInitCommand creates a new init command
func NewInitCommand() *InitCommand {
	return &InitCommand{
		dir:      ".",
		language: domain.DefaultGrammarLanguage,
	}
}

// CreateCobraCommand creates the cobra command for configuration initialization
func (i *InitCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .codedist.toml and a grammar descriptor",
		Long: `Initialize codedist in a directory.

Writes .codedist.toml with every setting spelled out, and grammar.toml, a
grammar descriptor for a built-in language that can be edited to change
the scaffold snippets are wrapped in, the node kinds that are stripped, or
whether syntax errors are rejected.

Examples:
  # Java grammar in the current directory
  codedist init

  # Python grammar in another directory
  codedist init --language python --dir tools/

  # Configuration only, using the built-in grammar
  codedist init --no-grammar

  # Overwrite existing files
  codedist init --force`,
		Args: cobra.NoArgs,
		RunE: i.runInit,
	}

	cmd.Flags().BoolVarP(&i.force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().StringVarP(&i.dir, "dir", "d", ".", "Directory to write the files to")
	cmd.Flags().StringVarP(&i.language, "language", "l", domain.DefaultGrammarLanguage, "Language of the grammar descriptor")
	cmd.Flags().BoolVar(&i.noGrammar, "no-grammar", false, "Only write .codedist.toml")

	return cmd
}

// runInit executes the init command
func (i *InitCommand) runInit(cmd *cobra.Command, args []string) error {
	dir, err := filepath.Abs(i.dir)
	if err != nil {
		return fmt.Errorf("failed to resolve directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, domain.ConfigFileName)
	grammarPath := filepath.Join(dir, domain.DefaultGrammarFileName)

	targets := []string{configPath}
	if !i.noGrammar {
		targets = append(targets, grammarPath)
	}
	if !i.force {
		for _, target := range targets {
			if _, err := os.Stat(target); err == nil {
				return domain.NewConfigError(fmt.Sprintf("%s already exists, use --force to overwrite", target), nil)
			}
		}
	}

	configGrammar := ""
	if !i.noGrammar {
		descriptor, err := parser.DescriptorTOML(i.language)
		if err != nil {
			return domain.NewInvalidGrammarError(i.language, err)
		}
		if err := os.WriteFile(grammarPath, descriptor, 0o644); err != nil {
			return domain.NewOutputError("failed to write grammar descriptor", err)
		}
		configGrammar = domain.DefaultGrammarFileName
	}

	configData, err := config.GenerateDefaultConfigTOML(configGrammar)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, []byte(configData), 0o644); err != nil {
		return domain.NewOutputError("failed to write configuration file", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ Configuration file created: %s\n", relativeToCwd(configPath))
	if !i.noGrammar {
		fmt.Fprintf(out, "✅ Grammar descriptor created: %s\n", relativeToCwd(grammarPath))
	}
	fmt.Fprintf(out, "\nRun 'codedist compare <before> <after>' from %s or below to use them.\n", relativeToCwd(dir))

	return nil
}

func relativeToCwd(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}

// NewInitCmd creates and returns the init cobra command
func NewInitCmd() *cobra.Command {
	return NewInitCommand().CreateCobraCommand()
}
