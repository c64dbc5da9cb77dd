// Package ollama implements the ollama backend against a local Ollama
// server's native /api/generate endpoint.
//
// Requests go through the OpenAI SDK's generic request path, which supplies
// JSON encoding, status handling and typed API errors without the chat
// completions schema.
package ollama

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	ai "github.com/spetersoncode/gipwrap"
)

// DefaultBaseURL is where a local Ollama server listens.
const DefaultBaseURL = "http://localhost:11434/"

const generatePath = "api/generate"

// generateRequest is the /api/generate request body.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	System  string          `json:"system,omitempty"`
	Options *requestOptions `json:"options,omitempty"`
}

type requestOptions struct {
	NumPredict  int      `json:"num_predict,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// Client calls /api/generate with streaming disabled and returns the body.
type Client struct {
	client *openai.Client
	model  string
}

// ClientOption configures the Ollama client.
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

// WithBaseURL points the client at a non-default Ollama server.
func WithBaseURL(url string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// New creates an Ollama client. No API key is sent.
func New(opts ...ClientOption) *Client {
	cfg := &clientConfig{
		model:   ai.ProviderOllama.DefaultModel(),
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client := openai.NewClient(
		option.WithBaseURL(cfg.baseURL),
		option.WithMaxRetries(0),
		option.WithHeaderDel("Authorization"),
	)
	return &Client{
		client: &client,
		model:  cfg.model,
	}
}

// Call implements ai.Backend.
func (c *Client) Call(ctx context.Context, input, systemPrompt string, opts ...ai.Option) (string, error) {
	options := ai.ApplyOptions(opts...)
	req := generateRequest{
		Model:  c.model,
		Prompt: input,
		System: systemPrompt,
	}
	if options.Model != "" {
		req.Model = options.Model
	}
	if options.MaxTokens > 0 || options.Temperature != nil {
		req.Options = &requestOptions{
			NumPredict:  options.MaxTokens,
			Temperature: options.Temperature,
		}
	}

	var raw []byte
	if err := c.client.Post(ctx, generatePath, req, &raw); err != nil {
		return "", wrapError(err)
	}
	return string(raw), nil
}

func wrapError(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	code := apiErr.StatusCode
	return ai.NewError(ai.CategorizeStatus(code), "ollama: request failed", code, 0, err)
}
