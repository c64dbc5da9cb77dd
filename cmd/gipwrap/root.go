package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spetersoncode/gipwrap/agent"
	"github.com/spetersoncode/gipwrap/client"
	"github.com/spetersoncode/gipwrap/internal/config"
	"github.com/spetersoncode/gipwrap/internal/logging"
	"github.com/spetersoncode/gipwrap/internal/tracing"
)

// flagValues receives command-line flags. Only flags the user set override
// the loaded configuration.
type flagValues struct {
	configPath string

	provider         string
	inputFile        string
	outputFile       string
	systemPromptFile string
	systemPrompt     string
	model            string
	keyEnv           string
	apiKey           string
	baseURL          string
	verbose          bool
	agent            bool
	thinking         bool

	logLevel   string
	logFormat  string
	logFile    string
	traceFile  string
	workspace  string
	mcpServers []string
}

// app carries the resolved settings and process streams for one command.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:   "gipwrap",
		Short: "Send a prompt to an AI provider, optionally as a tool-using agent",
		Long: `gipwrap reads a prompt from a file or stdin, sends it to the selected
provider and writes the answer to a file or stdout.

With --agent the model may call the built-in tools (files, memories, image and
audio generation) for up to 8 steps before answering.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, &fv, stdin, stdout, stderr, func(ctx context.Context, a *app) error {
				return a.runPrompt(ctx)
			})
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&fv.configPath, "config", "", "config file (default $HOME/.gipwrap/config.yaml)")
	pf.StringVar(&fv.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&fv.logFormat, "log-format", "", "log format: text, json")
	pf.StringVar(&fv.logFile, "log-file", "", "append logs to this file instead of stderr")
	pf.StringVar(&fv.traceFile, "trace-file", "", "write OpenTelemetry spans as JSON to this file")
	pf.StringVar(&fv.workspace, "workspace", "", "tool workspace directory (default $HOME/.gipwrap)")

	f := cmd.Flags()
	f.StringVarP(&fv.provider, "ai", "a", "", "AI type (chatgpt|ollama|claude|deepseek|gemini) [default: chatgpt]")
	f.StringVarP(&fv.inputFile, "input", "i", "", "input file [default: stdin]")
	f.StringVarP(&fv.outputFile, "output", "o", "", "output file [default: stdout]")
	f.StringVarP(&fv.systemPromptFile, "system-file", "s", "", "system prompt file")
	f.StringVarP(&fv.systemPrompt, "system", "S", "", "system prompt string")
	f.StringVarP(&fv.model, "model", "m", "", "model name")
	f.StringVarP(&fv.keyEnv, "key-env", "k", "", "API key env variable name")
	f.StringVarP(&fv.apiKey, "key", "K", "", "API key raw")
	f.StringVar(&fv.baseURL, "base-url", "", "override the provider endpoint")
	f.BoolVarP(&fv.verbose, "verbose", "v", false, "verbose output (full JSON)")
	f.BoolVarP(&fv.agent, "agent", "A", false, "enable agent mode with tool usage")
	f.BoolVarP(&fv.thinking, "thinking", "T", false, "print agent thinking messages to stderr")
	f.StringArrayVar(&fv.mcpServers, "mcp-server", nil, "add the tools of an MCP stdio server command (agent mode, repeatable)")

	cmd.AddCommand(newToolsCmd(&fv, stdin, stdout, stderr))
	cmd.AddCommand(newMCPCmd(&fv, stdin, stdout, stderr))

	return cmd
}

// withApp loads configuration, applies flags, and sets up logging and
// tracing around fn.
func withApp(cmd *cobra.Command, fv *flagValues, stdin io.Reader, stdout, stderr io.Writer, fn func(context.Context, *app) error) error {
	cfg, err := config.Load(fv.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, fv, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logCfg := logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogFile,
	}
	log := logging.NewWithWriter(logCfg, stderr)
	if cfg.LogFile != "" {
		var closeLog func() error
		log, closeLog, err = logging.New(logCfg)
		if err != nil {
			return err
		}
		defer closeLog()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := tracing.Setup(ctx, cfg.TraceFile, version)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("trace shutdown failed", "error", err)
		}
	}()

	return fn(ctx, &app{cfg: cfg, log: log, stdin: stdin, stdout: stdout, stderr: stderr})
}

func applyFlags(cmd *cobra.Command, fv *flagValues, cfg *config.Config) {
	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}

	setString := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}
	setString("ai", &cfg.Provider, fv.provider)
	setString("input", &cfg.InputFile, fv.inputFile)
	setString("output", &cfg.OutputFile, fv.outputFile)
	setString("system-file", &cfg.SystemPromptFile, fv.systemPromptFile)
	setString("system", &cfg.SystemPrompt, fv.systemPrompt)
	setString("model", &cfg.Model, fv.model)
	setString("key-env", &cfg.KeyEnv, fv.keyEnv)
	setString("key", &cfg.APIKey, fv.apiKey)
	setString("base-url", &cfg.BaseURL, fv.baseURL)
	setString("log-level", &cfg.LogLevel, fv.logLevel)
	setString("log-format", &cfg.LogFormat, fv.logFormat)
	setString("log-file", &cfg.LogFile, fv.logFile)
	setString("trace-file", &cfg.TraceFile, fv.traceFile)
	setString("workspace", &cfg.Workspace, fv.workspace)

	if changed("verbose") {
		cfg.Verbose = fv.verbose
	}
	if changed("agent") {
		cfg.Agent = fv.agent
	}
	if changed("thinking") {
		cfg.Thinking = fv.thinking
	}
	if changed("mcp-server") {
		cfg.MCPServers = fv.mcpServers
	}
}

// runPrompt handles the root command in standard and agent mode.
func (a *app) runPrompt(ctx context.Context) error {
	if err := a.cfg.RequireAPIKey(); err != nil {
		return err
	}

	input, err := a.readInput()
	if err != nil {
		return err
	}
	systemPrompt, err := a.readSystemPrompt()
	if err != nil {
		return err
	}

	cc, err := a.cfg.ClientConfig()
	if err != nil {
		return err
	}
	events, stopEvents := a.logEvents()
	defer stopEvents()
	cc.Events = events

	c, err := client.New(ctx, cc)
	if err != nil {
		return err
	}

	var out string
	if a.cfg.Agent {
		out, err = a.runAgent(ctx, c, input, systemPrompt)
	} else {
		out, err = a.runOnce(ctx, c, input, systemPrompt)
	}
	if err != nil {
		return err
	}
	return a.writeOutput(out)
}

// runOnce is standard mode: one call, then the verbose payload, the
// extracted text, or the raw payload when nothing could be extracted.
func (a *app) runOnce(ctx context.Context, c *client.Client, input, systemPrompt string) (string, error) {
	payload, err := c.CallOnce(ctx, input, systemPrompt)
	if err != nil {
		return "", err
	}

	switch {
	case a.cfg.Verbose:
		return payload.Raw, nil
	case payload.Extracted:
		return payload.Response + "\n", nil
	default:
		a.log.Debug("failed to extract response",
			"provider", c.Provider(),
			"preview", preview(payload.Raw, 200))
		return payload.Raw, nil
	}
}

func (a *app) runAgent(ctx context.Context, c *client.Client, input, systemPrompt string) (string, error) {
	reg, closeTools, err := a.buildRegistry(ctx)
	if err != nil {
		return "", err
	}
	defer a.closeLogged("mcp servers", closeTools)

	opts := []agent.Option{
		agent.WithSystemPrompt(systemPrompt),
		agent.WithVerbose(a.cfg.Verbose),
		agent.WithDiagnostics(a.stderr),
		agent.WithLogger(a.log),
	}
	if a.cfg.Thinking {
		opts = append(opts, agent.WithThinking(a.stderr))
	}

	res, err := agent.New(c, reg).Run(ctx, input, opts...)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// logEvents returns a channel whose provider call events are logged at
// Debug. stop closes the channel and waits for pending events.
func (a *app) logEvents() (events chan<- client.Event, stop func()) {
	ch := make(chan client.Event, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range ch {
			attrs := []any{
				"type", ev.Type,
				"provider", ev.Provider,
				"model", ev.Model,
			}
			switch ev.Type {
			case client.EventRequestComplete:
				attrs = append(attrs, "duration", ev.Duration, "extracted", ev.Extracted)
			case client.EventRequestError:
				attrs = append(attrs, "duration", ev.Duration, "error", ev.Error)
			}
			a.log.Debug("provider request", attrs...)
		}
	}()
	return ch, func() {
		close(ch)
		<-done
	}
}

func (a *app) readInput() (string, error) {
	if a.cfg.InputFile != "" {
		data, err := os.ReadFile(a.cfg.InputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}

// readSystemPrompt returns the prompt file if set, else the prompt string.
func (a *app) readSystemPrompt() (string, error) {
	if a.cfg.SystemPromptFile != "" {
		data, err := os.ReadFile(a.cfg.SystemPromptFile)
		if err != nil {
			return "", fmt.Errorf("failed to read system prompt: %w", err)
		}
		return string(data), nil
	}
	return a.cfg.SystemPrompt, nil
}

// writeOutput is called only after a successful run, so a failed call
// leaves no output file behind.
func (a *app) writeOutput(out string) error {
	if a.cfg.OutputFile == "" {
		_, err := io.WriteString(a.stdout, out)
		return err
	}
	if err := os.WriteFile(a.cfg.OutputFile, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// splitCommand splits an --mcp-server value into command and arguments.
func splitCommand(s string) (string, []string, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("empty MCP server command")
	}
	return fields[0], fields[1:], nil
}
