// Package google implements the gemini backend on the Google GenAI SDK.
//
// The SDK decodes responses into typed structs, so the raw payload returned
// by Call is the response re-encoded as JSON. Assistant text is found under
// candidates[].content.parts[].text.
package google

import (
	"context"
	"encoding/json"
	"fmt"

	ai "github.com/spetersoncode/gipwrap"
	"google.golang.org/genai"
)

// Client wraps the Google GenAI SDK to implement ai.Backend.
type Client struct {
	client *genai.Client
	model  string
}

// ClientOption configures the Google client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	model   string
	baseURL string
}

// WithModel sets the default model for requests.
func WithModel(model string) ClientOption {
	return func(c *clientConfig) {
		c.model = model
	}
}

// WithBaseURL overrides the Gemini API host.
func WithBaseURL(url string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// New creates a new Gemini API client with the given API key.
func New(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{model: ai.ProviderGemini.DefaultModel()}
	for _, opt := range opts {
		opt(cfg)
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Client{
		client: client,
		model:  cfg.model,
	}, nil
}

// Call implements ai.Backend.
func (c *Client) Call(ctx context.Context, input, systemPrompt string, opts ...ai.Option) (string, error) {
	options := ai.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: input}},
	}}
	config := &genai.GenerateContentConfig{}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		}
	}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}
	if options.Temperature != nil {
		temp := float32(*options.Temperature)
		config.Temperature = &temp
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", wrapError(err)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("google: encode response: %w", err)
	}
	return string(raw), nil
}
