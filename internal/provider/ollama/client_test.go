package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ai "github.com/spetersoncode/gipwrap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Call(t *testing.T) {
	ctx := context.Background()
	const body = `{"model":"llama2","created_at":"2024-01-01T00:00:00Z","response":"Paris.","done":true}`

	t.Run("posts to api/generate without streaming", func(t *testing.T) {
		var got map[string]any
		var path string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}))
		defer srv.Close()
		c := New(WithBaseURL(srv.URL + "/"))

		raw, err := c.Call(ctx, "Capital of France?", "Answer tersely.")

		require.NoError(t, err)
		assert.Equal(t, body, raw)
		assert.Equal(t, "/api/generate", path)
		assert.Equal(t, "llama2", got["model"])
		assert.Equal(t, "Capital of France?", got["prompt"])
		assert.Equal(t, "Answer tersely.", got["system"])
		assert.Equal(t, false, got["stream"])
		assert.NotContains(t, got, "options")
	})

	t.Run("never sends an OpenAI key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-secret-openai")
		var auth []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Values("Authorization")
			_, _ = w.Write([]byte(body))
		}))
		defer srv.Close()
		c := New(WithBaseURL(srv.URL + "/"))

		_, err := c.Call(ctx, "x", "")

		require.NoError(t, err)
		assert.Empty(t, auth)
	})

	t.Run("model and options", func(t *testing.T) {
		var got map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(body))
		}))
		defer srv.Close()
		c := New(WithBaseURL(srv.URL+"/"), WithModel("mistral"))

		_, err := c.Call(ctx, "x", "", ai.WithMaxTokens(10))

		require.NoError(t, err)
		assert.Equal(t, "mistral", got["model"])
		assert.NotContains(t, got, "system")
		opts, ok := got["options"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(10), opts["num_predict"])
	})

	t.Run("missing model is a user input error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"model 'nope' not found"}`))
		}))
		defer srv.Close()
		c := New(WithBaseURL(srv.URL+"/"), WithModel("nope"))

		_, err := c.Call(ctx, "x", "")

		require.Error(t, err)
		assert.True(t, ai.IsUserInput(err))
		assert.Equal(t, 404, ai.StatusCodeOf(err))
	})
}
