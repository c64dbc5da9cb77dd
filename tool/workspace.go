package tool

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

// workspaceDirName is the directory created under $HOME by DefaultWorkspace.
const workspaceDirName = ".gipwrap"

// Workspace is the directory the built-in tools read from and write into.
type Workspace struct {
	root   string
	runner Runner
	now    func() time.Time
	seq    atomic.Uint32
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*Workspace)

// WithRunner sets how external commands are executed. Default is ShellRunner.
func WithRunner(r Runner) WorkspaceOption {
	return func(w *Workspace) {
		w.runner = r
	}
}

// WithClock sets the time source used for generated names and timestamps.
func WithClock(now func() time.Time) WorkspaceOption {
	return func(w *Workspace) {
		w.now = now
	}
}

// NewWorkspace returns a workspace rooted at root.
// An empty root means $HOME/.gipwrap, resolved each time the workspace is used.
// The directory is created lazily with mode 0700.
func NewWorkspace(root string, opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		root:   root,
		runner: ShellRunner{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// DefaultWorkspace returns the workspace at $HOME/.gipwrap.
func DefaultWorkspace(opts ...WorkspaceOption) *Workspace {
	return NewWorkspace("", opts...)
}

// Dir returns the workspace directory, creating it if needed.
func (w *Workspace) Dir() (string, error) {
	dir := w.root
	if dir == "" {
		home := os.Getenv("HOME")
		if home == "" {
			return "", errors.New("HOME environment variable is not set.")
		}
		dir = filepath.Join(home, workspaceDirName)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("Failed to create AI directory at %s: %s", dir, reason(err))
	}
	return dir, nil
}

// Join resolves a workspace-relative path to an absolute one.
func (w *Workspace) Join(rel string) (string, error) {
	if !IsSafeRelative(rel) {
		return "", fmt.Errorf("Path '%s' must be relative to ~/.gipwrap without '..'.", rel)
	}
	dir, err := w.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, rel), nil
}

// IsSafeRelative reports whether rel names a location inside a workspace:
// non-empty, not starting with '/' or '~', and with no ".." segment.
func IsSafeRelative(rel string) bool {
	if rel == "" || rel[0] == '/' || rel[0] == '~' {
		return false
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}

// Run executes a shell command inside the workspace with AIDIR pointing at it.
// A non-zero exit is reported as an error carrying the captured output.
func (w *Workspace) Run(ctx context.Context, command string) (string, error) {
	if strings.TrimSpace(command) == "" {
		return "", errors.New("No command provided to run.")
	}
	dir, err := w.Dir()
	if err != nil {
		return "", err
	}

	out, code, err := w.runner.Run(ctx, dir, command, []string{"AIDIR=" + dir})
	if err != nil {
		return "", fmt.Errorf("Failed to execute command: %s", reason(err))
	}
	if code != 0 {
		if len(out) == 0 {
			return "", fmt.Errorf("Command exited with code %d. Output: (no output)", code)
		}
		return "", fmt.Errorf("Command exited with code %d. Output:\n%s", code, out)
	}
	if len(out) == 0 {
		return "Command executed successfully with no output.", nil
	}
	return string(out), nil
}

// stampedName returns prefix + local timestamp + a rolling three digit
// counter, e.g. audio_20250101_120000_001.wav.
func (w *Workspace) stampedName(prefix, ext string) string {
	n := w.seq.Add(1) % 1000
	return fmt.Sprintf("%s%s_%03d.%s", prefix, w.now().Format("20060102_150405"), n, ext)
}

// prepareParent creates the parent directories of abs.
func prepareParent(abs string) error {
	if err := os.MkdirAll(filepath.Dir(abs), 0o700); err != nil {
		return fmt.Errorf("Failed to prepare directories for %s: %s", abs, reason(err))
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// reason returns the operating system's description of err without the
// operation and path prefix added by the os package.
func reason(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
