package tool

import (
	"context"
	"errors"
)

// Registry is an ordered, immutable catalog of tools.
// It is safe to share across concurrent runs.
type Registry struct {
	tools []Descriptor
	index map[string]int
}

// NewRegistry builds a registry from descriptors, preserving their order.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{
		tools: make([]Descriptor, 0, len(descs)),
		index: make(map[string]int, len(descs)),
	}
	for _, d := range descs {
		switch {
		case d.Name == "":
			return nil, &ErrInvalidDescriptor{Name: d.Name, Reason: "empty name"}
		case d.Invoke == nil:
			return nil, &ErrInvalidDescriptor{Name: d.Name, Reason: "nil invoker"}
		}
		if _, exists := r.index[d.Name]; exists {
			return nil, &ErrToolAlreadyRegistered{Name: d.Name}
		}
		r.index[d.Name] = len(r.tools)
		r.tools = append(r.tools, d)
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error.
func MustNewRegistry(descs ...Descriptor) *Registry {
	r, err := NewRegistry(descs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Get looks up a tool by exact name.
func (r *Registry) Get(name string) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	i, ok := r.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.tools[i], true
}

// Tools returns the descriptors in registration order.
func (r *Registry) Tools() []Descriptor {
	if r == nil {
		return nil
	}
	out := make([]Descriptor, len(r.tools))
	copy(out, r.tools)
	return out
}

// Names returns the tool names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.tools))
	for i, d := range r.tools {
		names[i] = d.Name
	}
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.tools)
}

// Execute runs the named tool with input.
// If the tool is not found, returns ErrToolNotFound.
// If the tool itself fails, the failure is captured in the Result with
// IsError set and a nil error, so the model can recover from it.
func (r *Registry) Execute(ctx context.Context, name, input string) (Result, error) {
	d, ok := r.Get(name)
	if !ok {
		return Result{Name: name}, &ErrToolNotFound{Name: name}
	}

	content, err := d.Invoke(ctx, input)
	switch {
	case errors.Is(err, ErrNoOutput):
		return Result{Name: name, NoOutput: true}, nil
	case err != nil:
		return Result{Name: name, Content: err.Error(), IsError: true}, nil
	}
	return Result{Name: name, Content: content}, nil
}
