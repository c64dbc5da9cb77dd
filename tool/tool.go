package tool

import (
	"context"
	"errors"
)

// NoOutputText is shown to the model when a tool returns neither output nor an error.
const NoOutputText = "Tool produced no output."

// ErrNoOutput may be returned by an Invoker that finished without producing
// any output. It is reported as NoOutputText rather than as an error.
var ErrNoOutput = errors.New("tool produced no output")

// Invoker runs a tool against its raw argument text.
// A returned error is not fatal to the caller: its message is handed back to
// the model so it can react on the next turn.
type Invoker func(ctx context.Context, input string) (string, error)

// Descriptor names, describes and implements one tool.
type Descriptor struct {
	Name        string
	Description string
	Invoke      Invoker
}

// Result is the outcome of one tool invocation.
type Result struct {
	Name     string
	Content  string // output text, or the error text when IsError is set
	IsError  bool
	NoOutput bool
}

// Text returns the content to show the model, substituting NoOutputText
// when the tool produced nothing at all.
func (r Result) Text() string {
	if r.NoOutput {
		return NoOutputText
	}
	return r.Content
}
