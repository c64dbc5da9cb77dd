package gipwrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProvider(t *testing.T) {
	tests := []struct {
		in   string
		want Provider
	}{
		{"chatgpt", ProviderChatGPT},
		{"Claude", ProviderClaude},
		{"  deepseek ", ProviderDeepSeek},
		{"OLLAMA", ProviderOllama},
		{"gemini", ProviderGemini},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParseProvider(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}

	t.Run("rejects unknown tag", func(t *testing.T) {
		_, err := ParseProvider("")
		assert.Error(t, err)
	})
}

func TestProviderDefaults(t *testing.T) {
	assert.Equal(t, "gpt-4", ProviderChatGPT.DefaultModel())
	assert.Equal(t, "claude-3-5-sonnet-20241022", ProviderClaude.DefaultModel())
	assert.Equal(t, "deepseek-chat", ProviderDeepSeek.DefaultModel())
	assert.Equal(t, "llama2", ProviderOllama.DefaultModel())

	assert.Equal(t, "OPENAI_API_KEY", ProviderChatGPT.DefaultKeyEnv())
	assert.Equal(t, "ANTHROPIC_API_KEY", ProviderClaude.DefaultKeyEnv())
	assert.Equal(t, "DEEPSEEK_API_KEY", ProviderDeepSeek.DefaultKeyEnv())
	assert.Equal(t, "", ProviderOllama.DefaultKeyEnv())

	assert.False(t, ProviderOllama.RequiresKey())
	assert.True(t, ProviderGemini.RequiresKey())
	assert.Equal(t, "", Provider("nope").DefaultModel())
}
