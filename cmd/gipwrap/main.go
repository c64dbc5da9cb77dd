// Command gipwrap sends a prompt to a language model provider and prints the
// answer. With -A it runs the tool-calling agent over the built-in tools.
//
// Usage:
//
//	echo "Summarize my notes" | gipwrap -a claude -A -T
//	gipwrap -a ollama -m mistral -i question.txt -o answer.txt
//	gipwrap tools
//	gipwrap mcp
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	ai "github.com/spetersoncode/gipwrap"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gipwrap: %v\n", err)
	}
	os.Exit(ai.ExitCode(err))
}
