package client

import (
	"context"
	"fmt"
	"os"
	"time"

	ai "github.com/spetersoncode/gipwrap"
	"github.com/spetersoncode/gipwrap/extract"
	"github.com/spetersoncode/gipwrap/internal/provider/anthropic"
	"github.com/spetersoncode/gipwrap/internal/provider/google"
	"github.com/spetersoncode/gipwrap/internal/provider/ollama"
	"github.com/spetersoncode/gipwrap/internal/provider/openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/spetersoncode/gipwrap/client"

// Config holds configuration for creating a Client.
type Config struct {
	// Provider selects the backend. Default is chatgpt.
	Provider ai.Provider

	// Model overrides the provider's default model.
	Model string

	// APIKey is used as-is when set.
	APIKey string

	// KeyEnv names the environment variable to read the key from when
	// APIKey is empty. Falls back to the provider's default variable.
	KeyEnv string

	// BaseURL overrides the provider's API host.
	BaseURL string

	// Events is an optional channel for receiving call events.
	Events chan<- Event
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultTemperature sets the default temperature for calls.
// Per-request options override this default.
func WithDefaultTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.defaultOpts = append(c.defaultOpts, ai.WithTemperature(t))
	}
}

// WithDefaultMaxTokens sets the default max tokens for calls.
// Per-request options override this default.
func WithDefaultMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.defaultOpts = append(c.defaultOpts, ai.WithMaxTokens(n))
	}
}

// Client performs single-shot calls against one provider.
type Client struct {
	provider    ai.Provider
	model       string
	backend     ai.Backend
	events      chan<- Event
	defaultOpts []ai.Option
	tracer      trace.Tracer
}

// New resolves cfg into a provider backend.
// It fails on an unknown provider or a missing API key.
func New(ctx context.Context, cfg Config, opts ...ClientOption) (*Client, error) {
	p := cfg.Provider
	if p == "" {
		p = ai.ProviderChatGPT
	}
	model := cfg.Model
	if model == "" {
		model = p.DefaultModel()
	}

	key := ResolveAPIKey(p, cfg.APIKey, cfg.KeyEnv)
	if key == "" && p.RequiresKey() {
		env := cfg.KeyEnv
		if env == "" {
			env = p.DefaultKeyEnv()
		}
		return nil, fmt.Errorf("%w for %s: set %s or pass a key explicitly", ai.ErrMissingAPIKey, p, env)
	}

	backend, err := newBackend(ctx, p, model, key, cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	c := NewWithBackend(p, backend, opts...)
	c.model = model
	c.events = cfg.Events
	return c, nil
}

// NewWithBackend wraps an existing backend. The provider tag selects how
// assistant text is unwrapped from the payload.
func NewWithBackend(p ai.Provider, backend ai.Backend, opts ...ClientOption) *Client {
	c := &Client{
		provider: p,
		model:    p.DefaultModel(),
		backend:  backend,
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newBackend(ctx context.Context, p ai.Provider, model, key, baseURL string) (ai.Backend, error) {
	switch p {
	case ai.ProviderChatGPT, ai.ProviderDeepSeek:
		opts := []openai.ClientOption{openai.WithModel(model)}
		if baseURL != "" {
			opts = append(opts, openai.WithBaseURL(baseURL))
		}
		if p == ai.ProviderDeepSeek {
			return openai.NewDeepSeek(key, opts...), nil
		}
		return openai.New(key, opts...), nil

	case ai.ProviderClaude:
		opts := []anthropic.ClientOption{anthropic.WithModel(model)}
		if baseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(baseURL))
		}
		return anthropic.New(key, opts...), nil

	case ai.ProviderOllama:
		opts := []ollama.ClientOption{ollama.WithModel(model)}
		if baseURL != "" {
			opts = append(opts, ollama.WithBaseURL(baseURL))
		}
		return ollama.New(opts...), nil

	case ai.ProviderGemini:
		opts := []google.ClientOption{google.WithModel(model)}
		if baseURL != "" {
			opts = append(opts, google.WithBaseURL(baseURL))
		}
		return google.New(ctx, key, opts...)

	default:
		return nil, fmt.Errorf("%w: %q", ai.ErrUnknownProvider, p)
	}
}

// ResolveAPIKey returns apiKey if set, else the value of keyEnv, else the
// value of the provider's default key variable.
func ResolveAPIKey(p ai.Provider, apiKey, keyEnv string) string {
	if apiKey != "" {
		return apiKey
	}
	if keyEnv != "" {
		if v := os.Getenv(keyEnv); v != "" {
			return v
		}
	}
	if env := p.DefaultKeyEnv(); env != "" {
		return os.Getenv(env)
	}
	return ""
}

// Provider returns the provider tag this client calls.
func (c *Client) Provider() ai.Provider {
	return c.provider
}

// CallOnce sends input and systemPrompt to the provider exactly once.
// A failure is returned as *ai.CallError. On success the payload always
// carries the raw body; Response is set when assistant text was found in it.
func (c *Client) CallOnce(ctx context.Context, input, systemPrompt string, opts ...ai.Option) (*ai.Payload, error) {
	ctx, span := c.tracer.Start(ctx, "provider.call",
		trace.WithAttributes(
			attribute.String("gipwrap.provider", c.provider.String()),
			attribute.String("gipwrap.model", c.model),
		))
	defer span.End()

	emit(c.events, Event{Type: EventRequestStart, Provider: c.provider, Model: c.model})
	start := time.Now()

	allOpts := append(append([]ai.Option{}, c.defaultOpts...), opts...)
	raw, err := c.backend.Call(ctx, input, systemPrompt, allOpts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		emit(c.events, Event{
			Type:     EventRequestError,
			Provider: c.provider,
			Model:    c.model,
			Duration: time.Since(start),
			Error:    err,
		})
		return nil, &ai.CallError{Provider: c.provider, Err: err}
	}

	payload := &ai.Payload{Raw: raw}
	payload.Response, payload.Extracted = extract.Response(c.provider, raw)
	span.SetAttributes(attribute.Bool("gipwrap.extracted", payload.Extracted))

	emit(c.events, Event{
		Type:      EventRequestComplete,
		Provider:  c.provider,
		Model:     c.model,
		Duration:  time.Since(start),
		Extracted: payload.Extracted,
	})
	return payload, nil
}
