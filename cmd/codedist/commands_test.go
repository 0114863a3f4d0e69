package main

import (
	"testing"

	"github.com/spf13/cobra"
)

// TestComparisonCommandInterfaces tests the commands that compare a single pair
func TestComparisonCommandInterfaces(t *testing.T) {
	tests := []struct {
		name     string
		create   func() *cobra.Command
		use      string
		expected []string
	}{
		{
			name:     "distance",
			create:   func() *cobra.Command { return NewDistanceCommand().CreateCobraCommand() },
			use:      "distance <before> <after>",
			expected: []string{"grammar", "language", "insert-cost", "delete-cost", "rename-cost", "strategy"},
		},
		{
			name:     "identifiers",
			create:   func() *cobra.Command { return NewIdentifiersCommand().CreateCobraCommand() },
			use:      "identifiers <before> <after>",
			expected: []string{"grammar", "language", "details"},
		},
		{
			name:     "compare",
			create:   func() *cobra.Command { return NewCompareCommand().CreateCobraCommand() },
			use:      "compare <before> <after>",
			expected: []string{"grammar", "language", "strategy", "format", "details", "output"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cobraCmd := tt.create()
			if cobraCmd == nil {
				t.Fatal("CreateCobraCommand should return a valid cobra command")
			}

			if cobraCmd.Use != tt.use {
				t.Errorf("Expected command use '%s', got '%s'", tt.use, cobraCmd.Use)
			}
			if cobraCmd.Short == "" {
				t.Error("Command should have a short description")
			}

			flags := cobraCmd.Flags()
			for _, flagName := range tt.expected {
				if flags.Lookup(flagName) == nil {
					t.Errorf("Expected flag '%s' to be defined", flagName)
				}
			}

			if err := cobraCmd.Args(cobraCmd, []string{"only-one"}); err == nil {
				t.Error("Command should require exactly two snippets")
			}
		})
	}
}

// TestBatchCommandInterface tests the batch command interface
func TestBatchCommandInterface(t *testing.T) {
	batchCmd := NewBatchCommand()
	if batchCmd == nil {
		t.Fatal("NewBatchCommand should return a valid command instance")
	}

	cobraCmd := batchCmd.CreateCobraCommand()
	if cobraCmd.Use != "batch <paths...>" {
		t.Errorf("Expected command use 'batch <paths...>', got '%s'", cobraCmd.Use)
	}

	flags := cobraCmd.Flags()
	expectedFlags := []string{"include", "exclude", "workers", "timeout", "no-progress", "format", "output"}
	for _, flagName := range expectedFlags {
		if flags.Lookup(flagName) == nil {
			t.Errorf("Expected flag '%s' to be defined", flagName)
		}
	}

	if err := cobraCmd.Args(cobraCmd, nil); err == nil {
		t.Error("Batch should require at least one path")
	}
}

// TestInitCommandInterface tests the init command interface
func TestInitCommandInterface(t *testing.T) {
	cobraCmd := NewInitCommand().CreateCobraCommand()

	if cobraCmd.Use != "init" {
		t.Errorf("Expected command use 'init', got '%s'", cobraCmd.Use)
	}

	for _, flagName := range []string{"force", "dir", "language", "no-grammar"} {
		if cobraCmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Expected flag '%s' to be defined", flagName)
		}
	}
}

// TestRootCommand tests that every subcommand is registered
func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"distance", "identifiers", "compare", "batch", "init", "version"} {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected subcommand '%s' to be registered", name)
		}
	}

	for _, flagName := range []string{"verbose", "config", "log-env"} {
		if root.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("Expected persistent flag '%s' to be defined", flagName)
		}
	}
}
