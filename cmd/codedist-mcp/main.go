package main

import (
	"fmt"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"

	"github.com/ludo-technologies/codedist/internal/config"
	"github.com/ludo-technologies/codedist/internal/log"
	"github.com/ludo-technologies/codedist/internal/version"
	"github.com/ludo-technologies/codedist/mcp"
	"github.com/ludo-technologies/codedist/service"
)

const serverName = "codedist"

func main() {
	flags := pflag.NewFlagSet(serverName+"-mcp", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "Configuration file path (default: discover .codedist.toml)")
	verbose := flags.BoolP("verbose", "v", false, "Log every tool call")
	_ = flags.Parse(os.Args[1:])

	// stdout carries JSON-RPC, so logs always go to stderr
	logger, err := log.Initialize(log.Options{
		Env:         os.Getenv("CODEDIST_LOG_ENV"),
		Verbose:     *verbose,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := service.NewConfigurationLoader().Load(*configPath, "", config.Overrides{}, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)

	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(cfg, *configPath)))

	slog.Info("starting MCP server",
		"name", serverName,
		"version", version.Short(),
		"grammar", cfg.GrammarSelector().String(),
		"tools", []string{"tree_edit_distance", "new_identifier_count", "compare_snippets", "compare_batch"})

	// Blocks until the client disconnects
	if err := mcpserver.ServeStdio(server); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
