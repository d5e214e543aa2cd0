// Package tools exposes the subgraph operations as MCP tools.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/qraqula/graphmcp/internal/failure"
	"github.com/qraqula/graphmcp/internal/search"
)

const (
	SearchSubgraphs   = "searchSubgraphs"
	GetSubgraphSchema = "getSubgraphSchema"
	QuerySubgraph     = "querySubgraph"
)

// Operations is the behaviour the tools dispatch to.
type Operations interface {
	Search(ctx context.Context, text string) ([]search.Result, error)
	Schema(ctx context.Context, subgraphID string, asText bool) (string, error)
	Query(ctx context.Context, subgraphID, query string, variables map[string]any) ([]byte, error)
}

// Tool pairs a tool definition with its handler.
type Tool struct {
	Definition mcp.Tool
	Handler    server.ToolHandlerFunc
}

// ArgumentError reports a missing or unusable tool argument.
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %q: %s", e.Name, e.Reason)
}

func (e *ArgumentError) Kind() string { return "InvalidArgument" }

// Table returns the three tools in registration order.
func Table(ops Operations) []Tool {
	h := handlers{ops: ops}
	return []Tool{
		{
			Definition: mcp.NewTool(SearchSubgraphs,
				mcp.WithDescription("Search for subgraphs on The Graph Network by name or description. Returns active subgraphs with their IDs, display names, networks and signal, in the index's ranking order."),
				mcp.WithString("searchQuery",
					mcp.Required(),
					mcp.Description("Search term matched against subgraph names and descriptions"),
				),
			),
			Handler: h.search,
		},
		{
			Definition: mcp.NewTool(GetSubgraphSchema,
				mcp.WithDescription("Fetch the schema of a subgraph using GraphQL introspection, either as GraphQL SDL text or as the raw introspection JSON."),
				mcp.WithString("subgraphId",
					mcp.Required(),
					mcp.Description("ID of the subgraph to introspect"),
				),
				mcp.WithBoolean("asText",
					mcp.Description("Return the schema as GraphQL SDL instead of introspection JSON (default: false)"),
				),
			),
			Handler: h.schema,
		},
		{
			Definition: mcp.NewTool(QuerySubgraph,
				mcp.WithDescription("Execute a GraphQL query against a subgraph and return the response body unchanged."),
				mcp.WithString("subgraphId",
					mcp.Required(),
					mcp.Description("ID of the subgraph to query"),
				),
				mcp.WithString("query",
					mcp.Required(),
					mcp.Description("GraphQL query document"),
				),
				mcp.WithObject("variables",
					mcp.Description("Variables for the query (optional)"),
				),
			),
			Handler: h.query,
		},
	}
}

// NewServer registers every tool in Table on a new MCP server.
func NewServer(ops Operations, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"graphmcp",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	for _, t := range Table(ops) {
		s.AddTool(t.Definition, t.Handler)
	}
	return s
}

type handlers struct {
	ops Operations
}

func (h handlers) search(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("searchQuery")
	if err != nil {
		return errorResult(&ArgumentError{Name: "searchQuery", Reason: "required"}), nil
	}
	results, err := h.ops.Search(ctx, text)
	if err != nil {
		return errorResult(err), nil
	}
	b, err := json.Marshal(results)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (h handlers) schema(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("subgraphId")
	if err != nil {
		return errorResult(&ArgumentError{Name: "subgraphId", Reason: "required"}), nil
	}
	out, err := h.ops.Schema(ctx, id, request.GetBool("asText", false))
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (h handlers) query(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("subgraphId")
	if err != nil {
		return errorResult(&ArgumentError{Name: "subgraphId", Reason: "required"}), nil
	}
	query, err := request.RequireString("query")
	if err != nil {
		return errorResult(&ArgumentError{Name: "query", Reason: "required"}), nil
	}
	variables, err := variablesArg(request.GetArguments()["variables"])
	if err != nil {
		return errorResult(err), nil
	}
	body, err := h.ops.Query(ctx, id, query, variables)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

// variablesArg accepts an object or a JSON-encoded object. Some clients
// send structured arguments as strings.
func variablesArg(v any) (map[string]any, error) {
	switch vars := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return vars, nil
	case string:
		if vars == "" {
			return nil, nil
		}
		var decoded map[string]any
		if err := json.Unmarshal([]byte(vars), &decoded); err != nil {
			return nil, &ArgumentError{Name: "variables", Reason: "not a JSON object"}
		}
		return decoded, nil
	}
	return nil, &ArgumentError{Name: "variables", Reason: fmt.Sprintf("unsupported type %T", v)}
}

func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(failure.JSON(err))
}
