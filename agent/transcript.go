package agent

import (
	"fmt"
	"strings"
)

const turnTemplate = "\n\n[agent step %d]\nResponse: %s\nMessage: %s\nTool: %s\nToolInput: %s\nToolOutput:\n%s\n\n" +
	"Continue responding in JSON with keys status, message, tool, toolInput."

// Turn records one tool-calling step.
type Turn struct {
	Step      int
	Response  string // assistant text as received
	Message   *string
	Tool      *string
	ToolInput *string
	// ToolOutput is the tool's output, its error text, or the no-output notice.
	ToolOutput string
}

// String renders the turn as it is appended to the conversation.
func (t Turn) String() string {
	out := t.ToolOutput
	if out == "" {
		out = "(empty)"
	}
	return fmt.Sprintf(turnTemplate,
		t.Step,
		t.Response,
		deref(t.Message, "(none)"),
		deref(t.Tool, "(missing)"),
		deref(t.ToolInput, "(empty)"),
		out,
	)
}

// Transcript is the conversation resent to the provider on every step:
// the user's input followed by every completed turn. It only grows.
// A Transcript belongs to a single run and is not safe for concurrent use.
type Transcript struct {
	input string
	turns []Turn
	buf   strings.Builder
}

// NewTranscript starts a transcript from the user's input.
func NewTranscript(input string) *Transcript {
	t := &Transcript{input: input}
	t.buf.WriteString(input)
	return t
}

// Append adds a completed turn.
func (t *Transcript) Append(turn Turn) {
	t.turns = append(t.turns, turn)
	t.buf.WriteString(turn.String())
}

// Input returns the text the transcript started from.
func (t *Transcript) Input() string {
	return t.input
}

// Turns returns the recorded turns in order.
func (t *Transcript) Turns() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of recorded turns.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// String renders the whole conversation.
func (t *Transcript) String() string {
	return t.buf.String()
}
