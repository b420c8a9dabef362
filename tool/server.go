package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/adablock/block"
)

// ServerName is the MCP implementation name.
const ServerName = "adablock"

// Input is the MCP argument shape of the execute tool.
type Input struct {
	Code   string         `json:"code" jsonschema:"Ada source of a main subprogram"`
	Params map[string]any `json:"params,omitempty" jsonschema:"block header arguments: unit, ada-version, assertions, prove, mode, level"`
}

// NewServer returns an MCP server exposing the execute tool as MCPName.
// The server advertises no session tool.
func NewServer(exec *block.Executor, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)

	handler := ExecuteHandler(exec)
	mcp.AddTool(server, &mcp.Tool{
		Name:        MCPName,
		Title:       "Execute Ada block",
		Description: description,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in Input) (*mcp.CallToolResult, Output, error) {
		v, err := handler(ctx, map[string]any{ArgCode: in.Code, ArgParams: in.Params})
		if err != nil {
			return nil, Output{}, err
		}
		out := v.(Output)
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: out.Text}},
			IsError: out.Failed,
		}, out, nil
	})
	return server
}

// ServeStdio runs the MCP server over stdin and stdout until ctx is done or
// the client disconnects.
func ServeStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
