// Package openai implements the chatgpt and deepseek backends on the OpenAI
// Go SDK. DeepSeek serves the same chat completions API from its own host.
package openai

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	ai "github.com/spetersoncode/gipwrap"
)

// Default hosts for the two OpenAI-compatible providers.
const (
	DefaultBaseURL  = "https://api.openai.com/v1/"
	DeepSeekBaseURL = "https://api.deepseek.com/"
)

// Client sends single-turn chat completions and returns the raw response body.
type Client struct {
	client *openai.Client
	model  string
}

// ClientOption configures the OpenAI client.
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

// WithBaseURL points the client at another OpenAI-compatible host.
func WithBaseURL(url string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// New creates a client with the given API key.
// The SDK's own retries are disabled: a failed call is reported as is.
func New(apiKey string, opts ...ClientOption) *Client {
	cfg := &clientConfig{
		model:   ai.ProviderChatGPT.DefaultModel(),
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(cfg.baseURL),
		option.WithMaxRetries(0),
	)
	return &Client{
		client: &client,
		model:  cfg.model,
	}
}

// NewDeepSeek creates a client for the DeepSeek chat API.
func NewDeepSeek(apiKey string, opts ...ClientOption) *Client {
	base := []ClientOption{
		WithModel(ai.ProviderDeepSeek.DefaultModel()),
		WithBaseURL(DeepSeekBaseURL),
	}
	return New(apiKey, append(base, opts...)...)
}

// Call implements ai.Backend. The system prompt, when present, is sent as a
// system message ahead of the user input.
func (c *Client) Call(ctx context.Context, input, systemPrompt string, opts ...ai.Option) (string, error) {
	options := ai.ApplyOptions(opts...)
	model := c.model
	if options.Model != "" {
		model = options.Model
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if systemPrompt != "" {
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(input))

	params := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: messages,
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}
	if options.Temperature != nil {
		params.Temperature = openai.Float(*options.Temperature)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", wrapError(err)
	}
	return resp.RawJSON(), nil
}
