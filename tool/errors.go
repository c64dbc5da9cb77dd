package tool

import "fmt"

// ErrToolNotFound is returned when a call names a tool that is not registered.
// Its message is the exact text fed back to the model.
type ErrToolNotFound struct {
	Name string
}

func (e *ErrToolNotFound) Error() string {
	return fmt.Sprintf("Unknown tool '%s'.", e.Name)
}

// ErrToolAlreadyRegistered is returned when two descriptors share a name.
type ErrToolAlreadyRegistered struct {
	Name string
}

func (e *ErrToolAlreadyRegistered) Error() string {
	return fmt.Sprintf("tool: already registered: %s", e.Name)
}

// ErrInvalidDescriptor is returned for a descriptor without a name or invoker.
type ErrInvalidDescriptor struct {
	Name   string
	Reason string
}

func (e *ErrInvalidDescriptor) Error() string {
	return fmt.Sprintf("tool: invalid descriptor %q: %s", e.Name, e.Reason)
}
