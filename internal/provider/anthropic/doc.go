// Package anthropic implements the claude backend on the Anthropic Go SDK.
//
// Each call sends one user message, with the system prompt in the request's
// system field, and returns the unmodified Messages API response body:
//
//	c := anthropic.New(os.Getenv("ANTHROPIC_API_KEY"))
//	raw, err := c.Call(ctx, "Explain quantum computing briefly.", "")
//
// max_tokens defaults to 4096.
package anthropic
