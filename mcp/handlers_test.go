package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/codedist/domain"
	"github.com/ludo-technologies/codedist/mcp"
)

const (
	loopWithI = "void f() { for (int i = 0; i < 10; i++) { foo(i); } }"
	loopWithJ = "void f() { for (int j = 0; j < 10; j++) { foo(j); } }"
)

type args struct {
	arguments interface{}
	setupFS   func(t *testing.T) string
}

type want struct {
	isError      *bool
	expectPrefix string
	check        func(t *testing.T, res *mcplib.CallToolResult)
}

var (
	errTrue  = true
	errFalse = false
)

func setupPairFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	pairs := `- id: rename
  before: "` + loopWithI + `"
  after: "` + loopWithJ + `"
- id: grown
  before: "int x = 1;"
  after: "int x = 1; int y = x;"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pairs.yaml"), []byte(pairs), 0o644))
	return dir
}

func runToolTest(
	t *testing.T,
	deps *mcp.Dependencies,
	setupFS func(t *testing.T) string,
	arguments interface{},
	handlerFunc func(*mcp.HandlerSet, context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error),
) *mcplib.CallToolResult {

	t.Helper()
	if deps == nil {
		deps = mcp.NewDependencies(nil, "")
	}
	h := mcp.NewHandlerSet(deps)

	if setupFS != nil {
		if path := setupFS(t); path != "" {
			if m, ok := arguments.(map[string]interface{}); ok {
				m["path"] = path
			}
		}
	}

	req := mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Arguments: arguments,
		},
	}

	res, err := handlerFunc(h, context.Background(), req)
	require.NoError(t, err)

	return res
}

func decodeResult(t *testing.T, res *mcplib.CallToolResult) map[string]interface{} {
	t.Helper()
	require.Greater(t, len(res.Content), 0)
	text := mcplib.GetTextFromContent(res.Content[0])
	require.NotEmpty(t, text)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text), &result))
	return result
}

func checkWant(t *testing.T, res *mcplib.CallToolResult, w want) {
	t.Helper()
	if w.isError != nil && *w.isError != res.IsError {
		t.Fatalf("IsError = %v, want %v: %s", res.IsError, *w.isError, mcplib.GetTextFromContent(res.Content[0]))
	}
	if w.expectPrefix != "" && len(res.Content) > 0 {
		text := mcplib.GetTextFromContent(res.Content[0])
		if !strings.HasPrefix(text, w.expectPrefix) {
			t.Fatalf("error text %q does not start with %q", text, w.expectPrefix)
		}
	}
	if w.check != nil {
		w.check(t, res)
	}
}

func TestHandleTreeEditDistance(t *testing.T) {
	tests := map[string]struct {
		args args
		want want
	}{
		"invalid_arguments_format": {
			args: args{arguments: "not-a-map"},
			want: want{isError: &errTrue, expectPrefix: "invalid arguments format"},
		},
		"before_missing": {
			args: args{arguments: map[string]interface{}{"after": "int x;"}},
			want: want{isError: &errTrue, expectPrefix: "before parameter is required"},
		},
		"invalid_strategy": {
			args: args{arguments: map[string]interface{}{
				"before":   "int x;",
				"after":    "int x;",
				"strategy": "diagonal",
			}},
			want: want{isError: &errTrue, expectPrefix: "invalid arguments"},
		},
		"missing_grammar": {
			args: args{arguments: map[string]interface{}{
				"before":  "int x;",
				"after":   "int x;",
				"grammar": "/non/existing/grammar.toml",
			}},
			want: want{isError: &errTrue, expectPrefix: "comparison failed"},
		},
		"renamed_loop_variable": {
			args: args{arguments: map[string]interface{}{
				"before": loopWithI,
				"after":  loopWithJ,
			}},
			want: want{
				isError: &errFalse,
				check: func(t *testing.T, res *mcplib.CallToolResult) {
					result := decodeResult(t, res)
					assert.Equal(t, float64(0), result["tree_edit_distance"])
					assert.Equal(t, float64(1), result["similarity"])
					assert.Equal(t, "builtin:java", result["grammar"])
				},
			},
		},
		"weighted_insert": {
			args: args{arguments: map[string]interface{}{
				"before":      "x = 1",
				"after":       "x = 1\ny = 2",
				"language":    "python",
				"insert_cost": float64(3),
			}},
			want: want{
				isError: &errFalse,
				check: func(t *testing.T, res *mcplib.CallToolResult) {
					result := decodeResult(t, res)
					distance := result["tree_edit_distance"].(float64)
					assert.Greater(t, distance, float64(0))
					assert.Equal(t, float64(0), float64(int(distance)%3), "every edit is an insertion")
				},
			},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := runToolTest(t, nil, tc.args.setupFS, tc.args.arguments, (*mcp.HandlerSet).HandleTreeEditDistance)
			checkWant(t, res, tc.want)
		})
	}
}

func TestHandleNewIdentifierCount(t *testing.T) {
	tests := map[string]struct {
		args args
		want want
	}{
		"after_missing": {
			args: args{arguments: map[string]interface{}{"before": "int x;"}},
			want: want{isError: &errTrue, expectPrefix: "after parameter is required"},
		},
		"details_by_default": {
			args: args{arguments: map[string]interface{}{
				"before": loopWithI,
				"after":  loopWithJ,
			}},
			want: want{
				isError: &errFalse,
				check: func(t *testing.T, res *mcplib.CallToolResult) {
					result := decodeResult(t, res)
					assert.Equal(t, float64(1), result["new_identifier_count"])
					added := result["new_identifiers"].([]interface{})
					require.Len(t, added, 1)
					first := added[0].(map[string]interface{})
					assert.Equal(t, "j", first["spelling"])
					assert.Equal(t, "i", first["nearest"])
				},
			},
		},
		"details_disabled": {
			args: args{arguments: map[string]interface{}{
				"before":       "int x = 1;",
				"after":        "int x = 1;",
				"show_details": false,
			}},
			want: want{
				isError: &errFalse,
				check: func(t *testing.T, res *mcplib.CallToolResult) {
					result := decodeResult(t, res)
					assert.Equal(t, float64(0), result["new_identifier_count"])
					assert.NotContains(t, result, "new_identifiers")
				},
			},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := runToolTest(t, nil, tc.args.setupFS, tc.args.arguments, (*mcp.HandlerSet).HandleNewIdentifierCount)
			checkWant(t, res, tc.want)
		})
	}
}

func TestHandleCompareSnippets(t *testing.T) {
	res := runToolTest(t, nil, nil, map[string]interface{}{
		"before":       "def f(a):\n    return a",
		"after":        "def f(b):\n    return b + 1",
		"language":     "python",
		"show_details": true,
	}, (*mcp.HandlerSet).HandleCompareSnippets)
	require.False(t, res.IsError, mcplib.GetTextFromContent(res.Content[0]))

	var response domain.CompareResponse
	require.NoError(t, json.Unmarshal([]byte(mcplib.GetTextFromContent(res.Content[0])), &response))

	assert.Equal(t, "builtin:python", response.Grammar)
	assert.Greater(t, response.TreeEditDistance, 0)
	assert.Equal(t, 2, response.NewIdentifierCount)
	assert.Len(t, response.NewIdentifiers, 2)
	assert.Greater(t, response.BeforeNodes, 0)
	assert.Greater(t, response.AfterNodes, response.BeforeNodes)
}

// failingComparison fails every comparison
type failingComparison struct{}

func (failingComparison) Compare(context.Context, *domain.CompareRequest) (*domain.CompareResponse, error) {
	return nil, errors.New("engine unavailable")
}

func (failingComparison) TreeEditDistance(context.Context, string, string, string) (int, error) {
	return 0, errors.New("engine unavailable")
}

func (failingComparison) NewIdentifierCount(context.Context, string, string, string) (int, error) {
	return 0, errors.New("engine unavailable")
}

func (failingComparison) CheckGrammar(domain.GrammarSelector) error {
	return errors.New("engine unavailable")
}

func TestHandleCompareSnippets_ServiceError(t *testing.T) {
	deps := mcp.NewTestDependencies(failingComparison{}, nil, nil)
	res := runToolTest(t, deps, nil, map[string]interface{}{
		"before": "int x;",
		"after":  "int y;",
	}, (*mcp.HandlerSet).HandleCompareSnippets)

	checkWant(t, res, want{isError: &errTrue, expectPrefix: "comparison failed: engine unavailable"})
}

func TestHandleCompareBatch(t *testing.T) {
	tests := map[string]struct {
		args args
		want want
	}{
		"path_missing": {
			args: args{arguments: map[string]interface{}{}},
			want: want{isError: &errTrue, expectPrefix: "path parameter is required"},
		},
		"path_not_exist": {
			args: args{arguments: map[string]interface{}{"path": "/non/existing/path"}},
			want: want{isError: &errTrue, expectPrefix: "path does not exist"},
		},
		"summary": {
			args: args{
				setupFS:   setupPairFile,
				arguments: map[string]interface{}{"workers": float64(2)},
			},
			want: want{
				isError: &errFalse,
				check: func(t *testing.T, res *mcplib.CallToolResult) {
					result := decodeResult(t, res)
					summary := result["summary"].(map[string]interface{})
					assert.Equal(t, float64(2), summary["total_pairs"])
					assert.Equal(t, float64(0), summary["failed"])
					assert.Equal(t, float64(2), summary["total_new_identifiers"])
					assert.Empty(t, result["failures"])
					assert.NotContains(t, result, "results")
				},
			},
		},
		"full": {
			args: args{
				setupFS:   setupPairFile,
				arguments: map[string]interface{}{"output_mode": "full"},
			},
			want: want{
				isError: &errFalse,
				check: func(t *testing.T, res *mcplib.CallToolResult) {
					var response domain.BatchResponse
					require.NoError(t, json.Unmarshal([]byte(mcplib.GetTextFromContent(res.Content[0])), &response))
					require.Len(t, response.Results, 2)
					assert.Equal(t, "rename", response.Results[0].ID)
					assert.Equal(t, 0, response.Results[0].Result.TreeEditDistance)
					assert.Equal(t, "grown", response.Results[1].ID)
				},
			},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := runToolTest(t, nil, tc.args.setupFS, tc.args.arguments, (*mcp.HandlerSet).HandleCompareBatch)
			checkWant(t, res, tc.want)
		})
	}
}

func TestRegisterTools(t *testing.T) {
	s := server.NewMCPServer("codedist-test", "0.0.0", server.WithToolCapabilities(true))
	mcp.RegisterTools(s, nil)

	response := s.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(response)
	require.NoError(t, err)

	for _, name := range []string{"tree_edit_distance", "new_identifier_count", "compare_snippets", "compare_batch"} {
		assert.Contains(t, string(data), `"name":"`+name+`"`)
	}
}
