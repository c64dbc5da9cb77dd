package tool

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// Runner executes a shell command line in dir with extra environment
// variables and returns its standard output and exit code.
// err is reserved for failures to start or wait for the process; a command
// that runs and exits non-zero reports that through code.
type Runner interface {
	Run(ctx context.Context, dir, command string, env []string) (out []byte, code int, err error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, dir, command string, env []string) ([]byte, int, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, dir, command string, env []string) ([]byte, int, error) {
	return f(ctx, dir, command, env)
}

// ShellRunner runs commands with /bin/sh -c. Standard error is passed
// through to the process's own standard error.
type ShellRunner struct{}

// Run implements Runner.
func (ShellRunner) Run(ctx context.Context, dir, command string, env []string) ([]byte, int, error) {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	cmd.Stderr = os.Stderr

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when the process was killed by a signal.
		return stdout.Bytes(), exitErr.ExitCode(), nil
	}
	if err != nil {
		return nil, -1, err
	}
	return stdout.Bytes(), 0, nil
}

// shellQuote wraps s in single quotes for /bin/sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
