package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/gipwrap/mcp"
	"github.com/spetersoncode/gipwrap/tool"
)

func newToolsCmd(fv *flagValues, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools offered to the agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, fv, stdin, stdout, stderr, func(ctx context.Context, a *app) error {
				reg, closeTools, err := a.buildRegistry(ctx)
				if err != nil {
					return err
				}
				defer a.closeLogged("mcp servers", closeTools)

				for _, d := range reg.Tools() {
					fmt.Fprintf(a.stdout, "- %s: %s\n", d.Name, d.Description)
				}
				return nil
			})
		},
	}
}

func (a *app) workspace() *tool.Workspace {
	if a.cfg.Workspace != "" {
		return tool.NewWorkspace(a.cfg.Workspace)
	}
	return tool.DefaultWorkspace()
}

// buildRegistry returns the built-in tools followed by the tools of every
// configured MCP server. The returned func closes the server connections.
func (a *app) buildRegistry(ctx context.Context) (*tool.Registry, func() error, error) {
	descs := tool.BuiltinTools(a.workspace())

	var remotes []*mcp.Remote
	closeAll := func() error {
		var errs []error
		for _, r := range remotes {
			errs = append(errs, r.Close())
		}
		return errors.Join(errs...)
	}

	for _, entry := range a.cfg.MCPServers {
		command, args, err := splitCommand(entry)
		if err != nil {
			return nil, nil, joinClose(err, closeAll)
		}
		r, err := mcp.Connect(ctx, command, nil, args...)
		if err != nil {
			return nil, nil, joinClose(fmt.Errorf("mcp server %q: %w", entry, err), closeAll)
		}
		a.log.Debug("mcp server connected", "command", command, "tools", r.Names())
		remotes = append(remotes, r)
		descs = append(descs, r.Descriptors()...)
	}

	reg, err := tool.NewRegistry(descs...)
	if err != nil {
		return nil, nil, joinClose(err, closeAll)
	}
	return reg, closeAll, nil
}

// joinClose runs closeFn and joins its failure, if any, to err.
func joinClose(err error, closeFn func() error) error {
	return errors.Join(err, closeFn())
}

// closeLogged runs closeFn and logs a failure at Debug.
func (a *app) closeLogged(what string, closeFn func() error) {
	if err := closeFn(); err != nil {
		a.log.Debug("close failed", "what", what, "error", err)
	}
}
