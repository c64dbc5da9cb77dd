// Package gipwrap wraps language model providers behind a single prompt-in,
// text-out call and drives an agent loop that lets the model request tools
// before it answers.
//
// The root package holds the shared vocabulary: provider tags and their
// defaults, the [Backend] capability each provider implements, the [Payload]
// returned by a single call, request [Option]s, and the error types.
//
// # Packages
//
//   - [github.com/spetersoncode/gipwrap/client]: resolves configuration into a
//     backend and performs single-shot calls.
//   - [github.com/spetersoncode/gipwrap/extract]: tolerant string field
//     lookup and provider envelope unwrapping.
//   - [github.com/spetersoncode/gipwrap/tool]: the tool registry and the
//     built-in workspace tools.
//   - [github.com/spetersoncode/gipwrap/agent]: the bounded tool-calling loop.
//   - [github.com/spetersoncode/gipwrap/mcp]: serves the tool registry over MCP.
//
// # Basic Usage
//
//	c, err := client.New(ctx, client.Config{Provider: gipwrap.ProviderOllama})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p, err := c.CallOnce(ctx, "What is the capital of France?", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p.Response)
//
// # Agent Mode
//
//	a := agent.New(c, tool.Builtin(tool.DefaultWorkspace()))
//	res, err := a.Run(ctx, "Summarize notes.txt", agent.WithThinking(os.Stderr))
//	fmt.Print(res.Output)
package gipwrap
