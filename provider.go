package gipwrap

import (
	"context"
	"fmt"
	"strings"
)

// Provider identifies a model-serving backend by its short tag.
type Provider string

// String returns the provider tag.
func (p Provider) String() string { return string(p) }

// Supported providers.
const (
	ProviderChatGPT  Provider = "chatgpt"
	ProviderClaude   Provider = "claude"
	ProviderDeepSeek Provider = "deepseek"
	ProviderOllama   Provider = "ollama"
	ProviderGemini   Provider = "gemini"
)

// Providers lists every supported provider in display order.
var Providers = []Provider{
	ProviderChatGPT,
	ProviderClaude,
	ProviderDeepSeek,
	ProviderOllama,
	ProviderGemini,
}

// ParseProvider resolves a provider tag, ignoring case and surrounding space.
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Providers {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
}

// DefaultModel returns the model used when none is configured.
func (p Provider) DefaultModel() string {
	switch p {
	case ProviderChatGPT:
		return "gpt-4"
	case ProviderClaude:
		return "claude-3-5-sonnet-20241022"
	case ProviderDeepSeek:
		return "deepseek-chat"
	case ProviderOllama:
		return "llama2"
	case ProviderGemini:
		return "gemini-2.0-flash"
	default:
		return ""
	}
}

// DefaultKeyEnv returns the environment variable consulted for the API key.
// Ollama needs no key and returns "".
func (p Provider) DefaultKeyEnv() string {
	switch p {
	case ProviderChatGPT:
		return "OPENAI_API_KEY"
	case ProviderClaude:
		return "ANTHROPIC_API_KEY"
	case ProviderDeepSeek:
		return "DEEPSEEK_API_KEY"
	case ProviderGemini:
		return "GOOGLE_API_KEY"
	default:
		return ""
	}
}

// RequiresKey reports whether calls to p must carry an API key.
func (p Provider) RequiresKey() bool {
	return p.DefaultKeyEnv() != ""
}

// Backend sends one prompt to a provider and returns the raw response body.
// Implementations shape the provider-specific request; callers treat the
// returned payload as opaque text.
type Backend interface {
	Call(ctx context.Context, input, systemPrompt string, opts ...Option) (string, error)
}

// Payload is the outcome of a single provider call.
type Payload struct {
	// Raw is the complete provider response body.
	Raw string
	// Response is the assistant text unwrapped from Raw, valid when Extracted is true.
	Response string
	// Extracted reports whether assistant text could be recovered from Raw.
	Extracted bool
}
