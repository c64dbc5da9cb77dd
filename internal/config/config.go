// Package config loads gipwrap settings from defaults, a YAML file, a .env
// file and the environment. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	ai "github.com/spetersoncode/gipwrap"
	"github.com/spetersoncode/gipwrap/client"
)

// FileName is the config file looked up in the gipwrap home directory.
const FileName = "config.yaml"

// Config holds the settings for one gipwrap invocation.
type Config struct {
	// Provider selection
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`

	// API key: the raw key wins over the variable named by KeyEnv, which
	// wins over the provider's default variable.
	KeyEnv string `yaml:"key_env"`
	APIKey string `yaml:"api_key"`

	// I/O
	InputFile        string `yaml:"input_file"`
	OutputFile       string `yaml:"output_file"`
	SystemPromptFile string `yaml:"system_prompt_file"`
	SystemPrompt     string `yaml:"system_prompt"`

	// Modes
	Verbose  bool `yaml:"verbose"`
	Agent    bool `yaml:"agent"`
	Thinking bool `yaml:"thinking"`

	// Observability
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text, json
	LogFile   string `yaml:"log_file"`   // empty means stderr
	TraceFile string `yaml:"trace_file"`

	// Workspace overrides the tool workspace, default $HOME/.gipwrap.
	Workspace string `yaml:"workspace"`

	// MCPServers are external MCP stdio servers whose tools join the agent's.
	MCPServers []string `yaml:"mcp_servers"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Provider:  string(ai.ProviderChatGPT),
		LogLevel:  "error",
		LogFormat: "text",
	}
}

// Load builds a Config from defaults, the YAML file at path (or the default
// file if path is empty and it exists), a .env file in the working
// directory if present, and GIPWRAP_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	godotenv.Load() // Load .env file if present

	cfg.ApplyEnv()
	return cfg, nil
}

// DefaultPath returns $HOME/.gipwrap/config.yaml, or "" if HOME is unset.
func DefaultPath() string {
	home := os.Getenv("HOME")
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".gipwrap", FileName)
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays GIPWRAP_* environment variables onto c.
func (c *Config) ApplyEnv() {
	c.Provider = getEnvOrDefault("GIPWRAP_PROVIDER", c.Provider)
	c.Model = getEnvOrDefault("GIPWRAP_MODEL", c.Model)
	c.BaseURL = getEnvOrDefault("GIPWRAP_BASE_URL", c.BaseURL)
	c.KeyEnv = getEnvOrDefault("GIPWRAP_KEY_ENV", c.KeyEnv)
	c.LogLevel = getEnvOrDefault("GIPWRAP_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnvOrDefault("GIPWRAP_LOG_FORMAT", c.LogFormat)
	c.LogFile = getEnvOrDefault("GIPWRAP_LOG_FILE", c.LogFile)
	c.TraceFile = getEnvOrDefault("GIPWRAP_TRACE_FILE", c.TraceFile)
	c.Workspace = getEnvOrDefault("GIPWRAP_WORKSPACE", c.Workspace)
	c.Verbose = getEnvBoolOrDefault("GIPWRAP_VERBOSE", c.Verbose)
	c.Thinking = getEnvBoolOrDefault("GIPWRAP_THINKING", c.Thinking)
}

// Validate checks the provider tag and logging settings.
func (c *Config) Validate() error {
	if _, err := c.ProviderTag(); err != nil {
		return err
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (must be text or json)", c.LogFormat)
	}

	return nil
}

// RequireAPIKey fails when the provider needs a key and none resolves.
func (c *Config) RequireAPIKey() error {
	p, err := c.ProviderTag()
	if err != nil {
		return err
	}
	if !p.RequiresKey() || c.ResolveAPIKey() != "" {
		return nil
	}
	env := c.KeyEnv
	if env == "" {
		env = p.DefaultKeyEnv()
	}
	return fmt.Errorf("%w for %s: set %s or pass a key explicitly", ai.ErrMissingAPIKey, p, env)
}

// ProviderTag parses Provider. An empty value selects chatgpt.
func (c *Config) ProviderTag() (ai.Provider, error) {
	if c.Provider == "" {
		return ai.ProviderChatGPT, nil
	}
	return ai.ParseProvider(c.Provider)
}

// ResolveAPIKey returns the API key this configuration selects.
func (c *Config) ResolveAPIKey() string {
	p, err := c.ProviderTag()
	if err != nil {
		return ""
	}
	return client.ResolveAPIKey(p, c.APIKey, c.KeyEnv)
}

// ClientConfig converts c into the settings for client.New.
func (c *Config) ClientConfig() (client.Config, error) {
	p, err := c.ProviderTag()
	if err != nil {
		return client.Config{}, err
	}
	return client.Config{
		Provider: p,
		Model:    c.Model,
		APIKey:   c.APIKey,
		KeyEnv:   c.KeyEnv,
		BaseURL:  c.BaseURL,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
