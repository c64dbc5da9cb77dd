package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/gipwrap"
)

// isolate points HOME at an empty directory, runs in a fresh working
// directory and clears every variable Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	for _, key := range []string{
		"GIPWRAP_PROVIDER", "GIPWRAP_MODEL", "GIPWRAP_BASE_URL", "GIPWRAP_KEY_ENV",
		"GIPWRAP_LOG_LEVEL", "GIPWRAP_LOG_FORMAT", "GIPWRAP_LOG_FILE", "GIPWRAP_TRACE_FILE",
		"GIPWRAP_WORKSPACE", "GIPWRAP_VERBOSE", "GIPWRAP_THINKING",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "chatgpt", cfg.Provider)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.Agent)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DefaultFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".gipwrap", FileName), `
provider: claude
model: claude-3-haiku
thinking: true
mcp_servers:
  - "my-server --flag"
`)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "claude", cfg.Provider)
	assert.Equal(t, "claude-3-haiku", cfg.Model)
	assert.True(t, cfg.Thinking)
	assert.Equal(t, []string{"my-server --flag"}, cfg.MCPServers)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)

	t.Run("missing explicit file fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid yaml fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		writeFile(t, path, "provider: [unclosed")

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	writeFile(t, path, "provider: claude\nmodel: from-file\n")
	t.Setenv("GIPWRAP_MODEL", "from-env")
	t.Setenv("GIPWRAP_VERBOSE", "true")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "claude", cfg.Provider)
	assert.Equal(t, "from-env", cfg.Model)
	assert.True(t, cfg.Verbose)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	writeFile(t, ".env", "GIPWRAP_PROVIDER=ollama\n")
	t.Cleanup(func() { os.Unsetenv("GIPWRAP_PROVIDER") })

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Provider)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults"},
		{name: "every provider", mutate: func(c *Config) { c.Provider = "Gemini" }},
		{name: "unknown provider", mutate: func(c *Config) { c.Provider = "mistral" }, wantErr: "unknown provider"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "invalid log level"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestRequireAPIKey(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("CUSTOM_KEY", "")

	t.Run("missing default key", func(t *testing.T) {
		err := Default().RequireAPIKey()
		assert.ErrorIs(t, err, ai.ErrMissingAPIKey)
		assert.ErrorContains(t, err, "OPENAI_API_KEY")
	})

	t.Run("missing custom key names the variable", func(t *testing.T) {
		cfg := Default()
		cfg.KeyEnv = "CUSTOM_KEY"
		assert.ErrorContains(t, cfg.RequireAPIKey(), "CUSTOM_KEY")
	})

	t.Run("key from custom variable", func(t *testing.T) {
		t.Setenv("CUSTOM_KEY", "sk-custom")
		cfg := Default()
		cfg.KeyEnv = "CUSTOM_KEY"
		assert.NoError(t, cfg.RequireAPIKey())
		assert.Equal(t, "sk-custom", cfg.ResolveAPIKey())
	})

	t.Run("raw key wins", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-env")
		cfg := Default()
		cfg.APIKey = "sk-raw"
		assert.Equal(t, "sk-raw", cfg.ResolveAPIKey())
	})

	t.Run("ollama needs none", func(t *testing.T) {
		cfg := Default()
		cfg.Provider = "ollama"
		assert.NoError(t, cfg.RequireAPIKey())
	})
}

func TestClientConfig(t *testing.T) {
	cfg := Default()
	cfg.Provider = "deepseek"
	cfg.Model = "deepseek-reasoner"
	cfg.BaseURL = "http://localhost:9999/"

	cc, err := cfg.ClientConfig()

	require.NoError(t, err)
	assert.Equal(t, ai.ProviderDeepSeek, cc.Provider)
	assert.Equal(t, "deepseek-reasoner", cc.Model)
	assert.Equal(t, "http://localhost:9999/", cc.BaseURL)

	cfg.Provider = "nope"
	_, err = cfg.ClientConfig()
	assert.ErrorIs(t, err, ai.ErrUnknownProvider)
}
