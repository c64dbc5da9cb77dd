// Package mcp connects the gipwrap tool registry to the Model Context Protocol.
//
// The integration works in both directions:
//
//   - Server: expose a [tool.Registry] as an MCP server so MCP clients can
//     list and call the built-in tools.
//   - Client: connect to an MCP server and offer its tools to the agent
//     through [Remote].
//
// gipwrap tools take a single free-form string. On the wire that string is
// the "input" argument of an object schema.
//
// # Exposing Tools as an MCP Server
//
//	reg := tool.Builtin(tool.DefaultWorkspace())
//	if err := mcp.ServeStdio(reg, mcp.WithVersion(version)); err != nil {
//	    log.Fatal(err)
//	}
//
// # Consuming MCP Servers
//
//	remote, err := mcp.Connect(ctx, "./my-mcp-server", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
//
//	reg, err := tool.NewRegistry(append(tool.BuiltinTools(ws), remote.Descriptors()...)...)
package mcp

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/spetersoncode/gipwrap/tool"
)

// InputArgument is the name of the single string argument every exposed tool takes.
const InputArgument = "input"

// InputSchema is the JSON schema advertised for every exposed tool.
var InputSchema = json.RawMessage(`{"type":"object","properties":{"input":{"type":"string"}}}`)

// ToMCPTool converts a tool descriptor to an MCP tool.
func ToMCPTool(d tool.Descriptor) mcp.Tool {
	return mcp.NewToolWithRawSchema(d.Name, d.Description, InputSchema)
}

// ToMCPTools converts descriptors to MCP tools, keeping their order.
func ToMCPTools(descs []tool.Descriptor) []mcp.Tool {
	result := make([]mcp.Tool, len(descs))
	for i, d := range descs {
		result[i] = ToMCPTool(d)
	}
	return result
}

// InputFromRequest returns the "input" argument of a call, or "" when it is
// absent or not a string.
func InputFromRequest(req mcp.CallToolRequest) string {
	return req.GetString(InputArgument, "")
}

// ToMCPCallToolResult converts a tool result to an MCP result.
func ToMCPCallToolResult(r tool.Result) *mcp.CallToolResult {
	if r.IsError {
		return mcp.NewToolResultError(r.Content)
	}
	return mcp.NewToolResultText(r.Text())
}

// ArgumentsFromInput builds call arguments for a remote tool from agent input.
// A JSON object is passed through as the argument map; any other text is
// sent as the "input" argument.
func ArgumentsFromInput(input string) map[string]any {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "{") {
		var args map[string]any
		if err := json.Unmarshal([]byte(trimmed), &args); err == nil {
			return args
		}
	}
	return map[string]any{InputArgument: input}
}

// TextFromResult flattens an MCP result into the text shown to the model.
func TextFromResult(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}

	var parts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			parts = append(parts, content.Text)
		case *mcp.TextContent:
			parts = append(parts, content.Text)
		default:
			if data, err := json.Marshal(content); err == nil {
				parts = append(parts, string(data))
			}
		}
	}

	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			parts = append(parts, string(data))
		}
	}

	return strings.Join(parts, "\n")
}
