package tool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ReadFile returns the readFile tool. The argument is a path relative to the
// working directory or absolute; it is not confined to the workspace.
func ReadFile() Descriptor {
	return Descriptor{
		Name:        "readFile",
		Description: "Read the contents of a UTF-8 text file.",
		Invoke:      readFile,
	}
}

func readFile(_ context.Context, path string) (string, error) {
	if path == "" {
		return "", errors.New("readFile requires a file path argument.")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("Failed to read file '%s'.", path)
	}
	return string(data), nil
}

// ListDir returns the listDir tool. An empty argument lists the working directory.
func ListDir() Descriptor {
	return Descriptor{
		Name:        "listDir",
		Description: "List files within a directory as newline separated entries.",
		Invoke:      listDir,
	}
}

func listDir(_ context.Context, path string) (string, error) {
	if path == "" {
		path = "."
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("Failed to open directory '%s': %s", path, reason(err))
	}
	if len(entries) == 0 {
		return "(empty directory)\n", nil
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Name())
		b.WriteByte('\n')
	}
	return b.String(), nil
}
