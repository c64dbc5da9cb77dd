package agent

import (
	"io"
	"log/slog"

	ai "github.com/spetersoncode/gipwrap"
)

// DefaultMaxSteps is the number of model calls a run may make.
const DefaultMaxSteps = 8

// Options contains configuration for one agent run. It is fixed once the run starts.
type Options struct {
	// MaxSteps limits the number of provider calls. Default is 8.
	MaxSteps int

	// SystemPrompt is placed ahead of the agent protocol instructions.
	SystemPrompt string

	// Verbose makes a run whose payload has no extractable assistant text
	// emit the raw payload instead of nothing.
	Verbose bool

	// Thinking receives one trace line per tool-calling step, and the
	// message of an unrecognized terminal status. Nil disables the trace.
	// The loop never reads from it.
	Thinking io.Writer

	// Diagnostics receives the raw payload of each step when Verbose is
	// set, and one line per tool error. Nil disables them.
	Diagnostics io.Writer

	// Logger receives structured diagnostics. Default discards them.
	Logger *slog.Logger

	// CallOptions are passed through to every provider call.
	CallOptions []ai.Option
}

// Option is a functional option for configuring agent execution.
type Option func(*Options)

// WithMaxSteps sets the maximum number of provider calls.
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		o.MaxSteps = n
	}
}

// WithSystemPrompt sets the caller's base system prompt.
func WithSystemPrompt(s string) Option {
	return func(o *Options) {
		o.SystemPrompt = s
	}
}

// WithVerbose emits the raw payload when no assistant text can be extracted.
func WithVerbose(v bool) Option {
	return func(o *Options) {
		o.Verbose = v
	}
}

// WithThinking enables the thinking trace on w.
func WithThinking(w io.Writer) Option {
	return func(o *Options) {
		o.Thinking = w
	}
}

// WithDiagnostics sets the writer for step dumps and tool error lines.
func WithDiagnostics(w io.Writer) Option {
	return func(o *Options) {
		o.Diagnostics = w
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithCallOptions sets options passed to every provider call.
func WithCallOptions(opts ...ai.Option) Option {
	return func(o *Options) {
		o.CallOptions = append(o.CallOptions, opts...)
	}
}

// ApplyOptions applies functional options with defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		MaxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
