package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	ai "github.com/spetersoncode/gipwrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionBody = `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"{\"status\":\"done\",\"message\":\"hi\"}"}}],"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`

type capturedRequest struct {
	Model       string   `json:"model"`
	MaxTokens   *int     `json:"max_tokens"`
	Temperature *float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newServer(t *testing.T, status int, body string, got *capturedRequest, path *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if path != nil {
			*path = r.URL.Path
		}
		if got != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		w.Header().Set("Content-Type", "application/json")
		if status == http.StatusTooManyRequests {
			w.Header().Set("Retry-After", "3")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Call(t *testing.T) {
	ctx := context.Background()

	t.Run("returns raw completion body", func(t *testing.T) {
		var got capturedRequest
		var path string
		srv := newServer(t, http.StatusOK, completionBody, &got, &path)
		c := New("sk-test", WithBaseURL(srv.URL+"/"))

		raw, err := c.Call(ctx, "hello", "be brief")

		require.NoError(t, err)
		assert.JSONEq(t, completionBody, raw)
		assert.Equal(t, "/chat/completions", path)
		assert.Equal(t, "gpt-4", got.Model)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "system", got.Messages[0].Role)
		assert.Equal(t, "be brief", got.Messages[0].Content)
		assert.Equal(t, "user", got.Messages[1].Role)
		assert.Equal(t, "hello", got.Messages[1].Content)
	})

	t.Run("omits empty system prompt and applies options", func(t *testing.T) {
		var got capturedRequest
		srv := newServer(t, http.StatusOK, completionBody, &got, nil)
		c := NewDeepSeek("sk-test", WithBaseURL(srv.URL+"/"))

		_, err := c.Call(ctx, "hello", "", ai.WithMaxTokens(64), ai.WithTemperature(0.5))

		require.NoError(t, err)
		assert.Equal(t, "deepseek-chat", got.Model)
		require.Len(t, got.Messages, 1)
		require.NotNil(t, got.MaxTokens)
		assert.Equal(t, 64, *got.MaxTokens)
		require.NotNil(t, got.Temperature)
		assert.InDelta(t, 0.5, *got.Temperature, 1e-9)
	})

	t.Run("per-request model override", func(t *testing.T) {
		var got capturedRequest
		srv := newServer(t, http.StatusOK, completionBody, &got, nil)
		c := New("sk-test", WithBaseURL(srv.URL+"/"), WithModel("gpt-4o"))

		_, err := c.Call(ctx, "x", "", ai.WithModel("gpt-4o-mini"))

		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", got.Model)
	})

	t.Run("rate limit is transient with retry hint", func(t *testing.T) {
		srv := newServer(t, http.StatusTooManyRequests, `{"error":{"message":"slow down","type":"rate_limit"}}`, nil, nil)
		c := New("sk-test", WithBaseURL(srv.URL+"/"))

		_, err := c.Call(ctx, "x", "")

		require.Error(t, err)
		assert.True(t, ai.IsTransient(err))
		assert.Equal(t, 429, ai.StatusCodeOf(err))
		var e *ai.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, 3*time.Second, e.RetryAfter())
	})

	t.Run("bad key is permanent", func(t *testing.T) {
		srv := newServer(t, http.StatusUnauthorized, `{"error":{"message":"bad key"}}`, nil, nil)
		c := New("sk-bad", WithBaseURL(srv.URL+"/"))

		_, err := c.Call(ctx, "x", "")

		assert.True(t, ai.IsPermanent(err))
	})
}

func TestParseRetryAfter(t *testing.T) {
	assert.Zero(t, parseRetryAfter(nil))

	resp := &http.Response{Header: http.Header{}}
	assert.Zero(t, parseRetryAfter(resp))

	resp.Header.Set("Retry-After", "5")
	assert.Equal(t, 5*time.Second, parseRetryAfter(resp))

	resp.Header.Set("Retry-After", "soon")
	assert.Zero(t, parseRetryAfter(resp))
}
