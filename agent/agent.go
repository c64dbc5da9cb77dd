package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	ai "github.com/spetersoncode/gipwrap"
	"github.com/spetersoncode/gipwrap/tool"
)

const tracerName = "github.com/spetersoncode/gipwrap/agent"

// Caller performs one provider round trip. *client.Client satisfies it.
type Caller interface {
	CallOnce(ctx context.Context, input, systemPrompt string, opts ...ai.Option) (*ai.Payload, error)
}

// Agent drives the tool-calling loop over a Caller and a fixed tool registry.
type Agent struct {
	caller   Caller
	registry *tool.Registry
	tracer   trace.Tracer
}

// New creates a new Agent with the given caller and tool registry.
func New(caller Caller, registry *tool.Registry) *Agent {
	return &Agent{
		caller:   caller,
		registry: registry,
		tracer:   otel.Tracer(tracerName),
	}
}

// Registry returns the tools offered to the model.
func (a *Agent) Registry() *tool.Registry {
	return a.registry
}

// SystemPrompt returns the full system prompt a run with base would send.
func (a *Agent) SystemPrompt(base string) string {
	return BuildSystemPrompt(base, a.registry.Tools())
}

// Run executes the agent loop until the model finishes, stops answering in
// protocol, or the step budget runs out. Each of those is a successful run
// and its output is in Result.Output.
//
// The only failure is a provider call error, returned as *ai.CallError
// with Step set; nothing is produced for the primary output in that case.
func (a *Agent) Run(ctx context.Context, input string, opts ...Option) (*Result, error) {
	o := ApplyOptions(opts...)
	runID := uuid.NewString()
	log := o.Logger.With("run_id", runID)

	ctx, span := a.tracer.Start(ctx, "agent.run",
		trace.WithAttributes(
			attribute.String("gipwrap.run_id", runID),
			attribute.Int("gipwrap.max_steps", o.MaxSteps),
		))
	defer span.End()

	systemPrompt := a.SystemPrompt(o.SystemPrompt)
	transcript := NewTranscript(input)
	result := &Result{RunID: runID, Transcript: transcript}

	log.Debug("agent run started", "max_steps", o.MaxSteps, "tools", a.registry.Len())

	for step := 1; step <= o.MaxSteps; step++ {
		result.Steps = step

		payload, err := a.callStep(ctx, step, transcript.String(), systemPrompt, o)
		if err != nil {
			var callErr *ai.CallError
			if !errors.As(err, &callErr) {
				callErr = &ai.CallError{Err: err}
			}
			callErr.Step = step
			span.RecordError(callErr)
			span.SetStatus(codes.Error, callErr.Error())
			log.Debug("agent run failed", "step", step, "error", callErr)
			return nil, callErr
		}

		log.Debug("agent step payload", "step", step, "raw", payload.Raw)
		if o.Verbose {
			diagf(o.Diagnostics, "[agent][step %d] %s\n", step, payload.Raw)
		}

		if !payload.Extracted {
			if o.Verbose {
				result.Output = payload.Raw
			}
			return a.finish(span, log, result, TerminationNoResponse), nil
		}

		resp := ParseResponse(payload.Response)

		if resp.Freeform() {
			result.Output = resp.Final() + "\n"
			return a.finish(span, log, result, TerminationFreeform), nil
		}

		if !resp.Continues() {
			if !resp.Done() && nonEmpty(resp.Message) {
				diagf(o.Thinking, "[agent][thinking] %s\n", *resp.Message)
			}
			result.Output = resp.Final() + "\n"
			return a.finish(span, log, result, TerminationComplete), nil
		}

		think(o.Thinking, resp)
		turn := a.dispatch(ctx, step, resp, o, log)
		transcript.Append(turn)
	}

	result.Output = MaxStepsMessage
	return a.finish(span, log, result, TerminationMaxSteps), nil
}

func (a *Agent) callStep(ctx context.Context, step int, conversation, systemPrompt string, o *Options) (*ai.Payload, error) {
	ctx, span := a.tracer.Start(ctx, "agent.step",
		trace.WithAttributes(attribute.Int("gipwrap.step", step)))
	defer span.End()

	payload, err := a.caller.CallOnce(ctx, conversation, systemPrompt, o.CallOptions...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Bool("gipwrap.extracted", payload.Extracted))
	return payload, nil
}

// dispatch runs the requested tool and records the turn. Tool failures are
// fed back to the model and never end the run.
func (a *Agent) dispatch(ctx context.Context, step int, resp Response, o *Options, log *slog.Logger) Turn {
	turn := Turn{
		Step:      step,
		Response:  resp.Text,
		Message:   resp.Message,
		Tool:      resp.Tool,
		ToolInput: resp.ToolInput,
	}

	if resp.Tool == nil {
		turn.ToolOutput = MissingToolMessage
		a.reportToolError(o, log, nil, MissingToolMessage)
		return turn
	}

	name := *resp.Tool
	input := deref(resp.ToolInput, "")

	ctx, span := a.tracer.Start(ctx, "agent.tool",
		trace.WithAttributes(
			attribute.Int("gipwrap.step", step),
			attribute.String("gipwrap.tool", name),
		))
	defer span.End()

	res, err := a.registry.Execute(ctx, name, input)
	if err != nil {
		turn.ToolOutput = err.Error()
		span.SetStatus(codes.Error, err.Error())
		a.reportToolError(o, log, resp.Tool, err.Error())
		return turn
	}

	turn.ToolOutput = res.Text()
	if res.IsError {
		span.SetStatus(codes.Error, res.Content)
		a.reportToolError(o, log, resp.Tool, res.Content)
	}
	log.Debug("tool executed", "step", step, "tool", name, "is_error", res.IsError, "no_output", res.NoOutput)
	return turn
}

func (a *Agent) reportToolError(o *Options, log *slog.Logger, name *string, text string) {
	n := deref(name, "(unknown)")
	log.Warn("tool error", "tool", n, "error", text)
	diagf(o.Diagnostics, "Agent tool '%s' error: %s\n", n, text)
}

func (a *Agent) finish(span trace.Span, log *slog.Logger, r *Result, reason TerminationReason) *Result {
	r.Termination = reason
	span.SetAttributes(
		attribute.Int("gipwrap.steps", r.Steps),
		attribute.String("gipwrap.termination", string(reason)),
	)
	log.Debug("agent run finished", "steps", r.Steps, "termination", reason)
	return r
}

// think writes the trace line for a continue step.
func think(w io.Writer, resp Response) {
	switch {
	case nonEmpty(resp.Message):
		diagf(w, "[agent][thinking] %s\n", *resp.Message)
	case nonEmpty(resp.Tool):
		diagf(w, "[agent][thinking] continuing with tool '%s'.\n", *resp.Tool)
	default:
		diagf(w, "[agent][thinking] continuing without a message from the agent.\n")
	}
}

func diagf(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, format, args...)
}
