package agent

// MissingToolMessage is fed back to the model when it continues without naming a tool.
const MissingToolMessage = "Agent response missing tool name."
