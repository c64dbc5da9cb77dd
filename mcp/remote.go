package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/spetersoncode/gipwrap/tool"
)

// Remote is a connection to an MCP server whose tools can be offered to the agent.
// The tool list is fetched once when connecting.
type Remote struct {
	client *client.Client
	tools  []mcp.Tool
}

// Connect starts command as an MCP stdio server and lists its tools.
func Connect(ctx context.Context, command string, env []string, args ...string) (*Remote, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}
	return NewRemote(ctx, c)
}

// NewRemote initializes an MCP session on c and lists its tools.
// c is started if needed and closed on failure.
func NewRemote(ctx context.Context, c *client.Client) (*Remote, error) {
	if err := c.Start(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "gipwrap",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	list, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	return &Remote{client: c, tools: list.Tools}, nil
}

// Close closes the connection to the MCP server.
func (r *Remote) Close() error {
	return r.client.Close()
}

// Names returns the remote tool names in the order the server listed them.
func (r *Remote) Names() []string {
	names := make([]string, len(r.tools))
	for i, t := range r.tools {
		names[i] = t.Name
	}
	return names
}

// Descriptors returns one tool descriptor per remote tool. Invoking one
// calls the tool on the server; an MCP error result is returned as an error.
func (r *Remote) Descriptors() []tool.Descriptor {
	descs := make([]tool.Descriptor, len(r.tools))
	for i, t := range r.tools {
		descs[i] = tool.Descriptor{
			Name:        t.Name,
			Description: t.Description,
			Invoke:      r.invoker(t.Name),
		}
	}
	return descs
}

func (r *Remote) invoker(name string) tool.Invoker {
	return func(ctx context.Context, input string) (string, error) {
		result, err := r.client.CallTool(ctx, mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      name,
				Arguments: ArgumentsFromInput(input),
			},
		})
		if err != nil {
			return "", err
		}

		text := TextFromResult(result)
		if result.IsError {
			return "", errors.New(text)
		}
		if text == "" {
			return "", tool.ErrNoOutput
		}
		return text, nil
	}
}
