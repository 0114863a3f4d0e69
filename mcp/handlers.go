package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ludo-technologies/codedist/domain"
	"github.com/ludo-technologies/codedist/internal/config"
	"github.com/ludo-technologies/codedist/service"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleTreeEditDistance handles the tree_edit_distance tool
func (h *HandlerSet) HandleTreeEditDistance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	req, errResult := h.compareRequest(args)
	if errResult != nil {
		return errResult, nil
	}
	req.ShowDetails = false

	result, err := h.deps.Comparison().Compare(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"tree_edit_distance": result.TreeEditDistance,
		"similarity":         result.Similarity,
		"before_nodes":       result.BeforeNodes,
		"after_nodes":        result.AfterNodes,
		"grammar":            result.Grammar,
	})
}

// HandleNewIdentifierCount handles the new_identifier_count tool
func (h *HandlerSet) HandleNewIdentifierCount(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	req, errResult := h.compareRequest(args)
	if errResult != nil {
		return errResult, nil
	}
	req.ShowDetails = true
	if sd, ok := args["show_details"].(bool); ok {
		req.ShowDetails = sd
	}

	result, err := h.deps.Comparison().Compare(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	responseData := map[string]interface{}{
		"new_identifier_count": result.NewIdentifierCount,
		"grammar":              result.Grammar,
	}
	if req.ShowDetails {
		newIdentifiers := result.NewIdentifiers
		if newIdentifiers == nil {
			newIdentifiers = []domain.NewIdentifier{}
		}
		responseData["new_identifiers"] = newIdentifiers
	}
	return jsonResult(responseData)
}

// HandleCompareSnippets handles the compare_snippets tool
func (h *HandlerSet) HandleCompareSnippets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	req, errResult := h.compareRequest(args)
	if errResult != nil {
		return errResult, nil
	}
	if sd, ok := args["show_details"].(bool); ok {
		req.ShowDetails = sd
	}

	result, err := h.deps.Comparison().Compare(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	return jsonResult(result)
}

// HandleCompareBatch handles the compare_batch tool
func (h *HandlerSet) HandleCompareBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	overrides, flags := engineOverrides(args)
	if w, ok := args["workers"].(float64); ok {
		overrides.MaxWorkers = int(w)
		flags[config.FlagWorkers] = true
	}
	if ts, ok := args["timeout_seconds"].(float64); ok {
		overrides.TimeoutSeconds = int(ts)
		flags[config.FlagTimeout] = true
	}

	cfg, err := h.resolveConfig(overrides, flags)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := service.NewConfigurationLoader().BatchRequest(cfg, []string{path})
	req.OutputWriter = nil

	result, err := h.deps.BuildBatchService().Run(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("batch comparison failed: %v", err)), nil
	}

	outputMode := "summary"
	if om, ok := args["output_mode"].(string); ok {
		outputMode = om
	}

	var responseData interface{}
	switch outputMode {
	case "full":
		responseData = result
	default:
		responseData = formatBatchSummary(result)
	}
	return jsonResult(responseData)
}

// compareRequest reads the snippets and engine parameters of a tool call
func (h *HandlerSet) compareRequest(args map[string]interface{}) (*domain.CompareRequest, *mcp.CallToolResult) {
	before, ok := args["before"].(string)
	if !ok {
		return nil, mcp.NewToolResultError("before parameter is required and must be a string")
	}
	after, ok := args["after"].(string)
	if !ok {
		return nil, mcp.NewToolResultError("after parameter is required and must be a string")
	}

	cfg, err := h.resolveConfig(engineOverrides(args))
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}

	req := service.NewConfigurationLoader().CompareRequest(cfg)
	req.Before = before
	req.After = after
	req.BeforeName = "before"
	req.AfterName = "after"
	req.OutputWriter = nil
	return req, nil
}

// resolveConfig applies tool arguments on top of the server configuration
func (h *HandlerSet) resolveConfig(overrides config.Overrides, flags map[string]bool) (*config.Config, error) {
	base := h.deps.Config()
	if base == nil {
		base = config.DefaultConfig()
	}

	merged := base.ApplyOverrides(overrides, flags)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return merged, nil
}

// engineOverrides collects the grammar and cost arguments present in args
func engineOverrides(args map[string]interface{}) (config.Overrides, map[string]bool) {
	var overrides config.Overrides
	flags := make(map[string]bool)

	if g, ok := args["grammar"].(string); ok && g != "" {
		overrides.GrammarPath = g
		flags[config.FlagGrammar] = true
	}
	if l, ok := args["language"].(string); ok && l != "" {
		overrides.Language = l
		flags[config.FlagLanguage] = true
	}
	if s, ok := args["strategy"].(string); ok && s != "" {
		overrides.Strategy = s
		flags[config.FlagStrategy] = true
	}
	if c, ok := args["insert_cost"].(float64); ok {
		overrides.InsertWeight = int(c)
		flags[config.FlagInsert] = true
	}
	if c, ok := args["delete_cost"].(float64); ok {
		overrides.DeleteWeight = int(c)
		flags[config.FlagDelete] = true
	}
	if c, ok := args["rename_cost"].(float64); ok {
		overrides.RenameWeight = int(c)
		flags[config.FlagRename] = true
	}

	return overrides, flags
}

// formatBatchSummary keeps totals and the failed pairs of a batch
func formatBatchSummary(result *domain.BatchResponse) map[string]interface{} {
	type Failure struct {
		ID     string `json:"id"`
		Source string `json:"source"`
		Error  string `json:"error"`
	}

	failures := []Failure{}
	for _, r := range result.Results {
		if r.Error != "" {
			failures = append(failures, Failure{ID: r.ID, Source: r.Source, Error: r.Error})
		}
	}

	return map[string]interface{}{
		"grammar":  result.Grammar,
		"files":    result.Files,
		"summary":  result.Summary,
		"failures": failures,
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
