package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// engineOptions are the grammar and cost parameters shared by every tool
func engineOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("grammar",
			mcp.Description("Path to a grammar descriptor file (TOML or YAML). Takes precedence over language")),
		mcp.WithString("language",
			mcp.Description("Built-in grammar: java, csharp, cpp, javascript, python, ruby, go, rust, c (default: from config, else java)")),
		mcp.WithString("strategy",
			mcp.Enum("auto", "left", "right", "heavy"),
			mcp.Description("Path decomposition of the exact distance; all strategies give the same result (default: auto)")),
		mcp.WithNumber("insert_cost",
			mcp.Description("Cost of inserting a node (default: 1)")),
		mcp.WithNumber("delete_cost",
			mcp.Description("Cost of deleting a node (default: 1)")),
		mcp.WithNumber("rename_cost",
			mcp.Description("Cost of relabeling a node (default: 1)")),
	}
}

// snippetTool builds a tool taking a before and an after snippet
func snippetTool(name, description string, extra ...mcp.ToolOption) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(description),
		mcp.WithString("before",
			mcp.Required(),
			mcp.Description("Source text of the snippet before the change")),
		mcp.WithString("after",
			mcp.Required(),
			mcp.Description("Source text of the snippet after the change")),
	}
	opts = append(opts, engineOptions()...)
	opts = append(opts, extra...)
	return mcp.NewTool(name, opts...)
}

// RegisterTools registers all codedist MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	if h == nil {
		h = NewHandlerSet(nil)
	}

	// Tool 1: tree_edit_distance - structural distance only
	s.AddTool(snippetTool("tree_edit_distance",
		"Exact tree edit distance between the syntax trees of two code snippets, ignoring identifier and literal spellings",
	), h.HandleTreeEditDistance)

	// Tool 2: new_identifier_count - lexical novelty only
	s.AddTool(snippetTool("new_identifier_count",
		"Count the distinct identifier and literal spellings of the after snippet that never occur in the before snippet",
		mcp.WithBoolean("show_details",
			mcp.Description("List each new spelling with its nearest spelling in the before snippet (default: true)")),
	), h.HandleNewIdentifierCount)

	// Tool 3: compare_snippets - both measurements with tree sizes
	s.AddTool(snippetTool("compare_snippets",
		"Report the tree edit distance, the new identifier count, the similarity and the tree sizes of a snippet pair",
		mcp.WithBoolean("show_details",
			mcp.Description("List each new spelling with its nearest spelling in the before snippet (default: from config)")),
	), h.HandleCompareSnippets)

	// Tool 4: compare_batch - pair files on disk
	batchOpts := []mcp.ToolOption{
		mcp.WithDescription("Compare every before/after pair of YAML or JSON pair files"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Pair file, or directory searched for pair files")),
		mcp.WithNumber("workers",
			mcp.Description("Concurrent comparisons, 0 = one per CPU (default: from config)")),
		mcp.WithNumber("timeout_seconds",
			mcp.Description("Timeout for the whole batch in seconds, 0 = none (default: from config)")),
		mcp.WithString("output_mode",
			mcp.Enum("summary", "full"),
			mcp.Description("summary lists totals and failures, full adds every pair result (default: summary)")),
	}
	batchOpts = append(batchOpts, engineOptions()...)
	s.AddTool(mcp.NewTool("compare_batch", batchOpts...), h.HandleCompareBatch)
}
