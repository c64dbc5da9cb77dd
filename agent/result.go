package agent

// TerminationReason indicates why a run stopped.
type TerminationReason string

const (
	// TerminationComplete: the model returned "done" or another non-continue status.
	TerminationComplete TerminationReason = "complete"

	// TerminationFreeform: the model answered without any status field.
	TerminationFreeform TerminationReason = "freeform"

	// TerminationNoResponse: no assistant text could be extracted from the payload.
	TerminationNoResponse TerminationReason = "no_response"

	// TerminationMaxSteps: the step budget ran out while the model kept continuing.
	TerminationMaxSteps TerminationReason = "max_steps"
)

// MaxStepsMessage is emitted when the step budget runs out.
const MaxStepsMessage = "Agent stopped after maximum iterations without finishing.\n"

// Result describes a successful run.
type Result struct {
	// RunID identifies the run in logs and traces.
	RunID string

	// Output is the text for the primary result channel, exactly as it
	// should be written. It may be empty.
	Output string

	// Steps is the number of provider calls made.
	Steps int

	// Termination indicates why the run stopped.
	Termination TerminationReason

	// Transcript is the conversation as last sent to the provider, plus
	// any turn recorded afterwards.
	Transcript *Transcript
}
