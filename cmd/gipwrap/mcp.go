package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/gipwrap/mcp"
	"github.com/spetersoncode/gipwrap/tool"
)

// newMCPCmd serves the built-in tools over MCP stdio.
//
// Configuration for Claude Desktop (claude_desktop_config.json):
//
//	{
//	    "mcpServers": {
//	        "gipwrap": {
//	            "command": "gipwrap",
//	            "args": ["mcp"]
//	        }
//	    }
//	}
func newMCPCmd(fv *flagValues, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the built-in tools over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, fv, stdin, stdout, stderr, func(ctx context.Context, a *app) error {
				reg := tool.Builtin(a.workspace())
				a.log.Info("serving MCP over stdio", "tools", reg.Names())
				return mcp.ServeStdio(reg,
					mcp.WithName("gipwrap"),
					mcp.WithVersion(version),
				)
			})
		},
	}
}
