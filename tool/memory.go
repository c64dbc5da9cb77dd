package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

const memoryFile = "memory.json"

// memoryEntry is one element of the memory.json array.
type memoryEntry struct {
	Timestamp string `json:"timestamp"`
	Memory    string `json:"memory"`
}

// SaveMemory returns the saveMemory tool, which appends a timestamped entry
// to memory.json in the workspace.
func SaveMemory(ws *Workspace) Descriptor {
	return Descriptor{
		Name:        "saveMemory",
		Description: "Append a timestamped memory entry to ~/.gipwrap/memory.json.",
		Invoke:      ws.saveMemory,
	}
}

// GetMemories returns the getMemories tool, which returns memory.json verbatim.
func GetMemories(ws *Workspace) Descriptor {
	return Descriptor{
		Name:        "getMemories",
		Description: "Retrieve all stored memory entries from ~/.gipwrap/memory.json.",
		Invoke:      ws.getMemories,
	}
}

func (w *Workspace) saveMemory(_ context.Context, input string) (string, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return "", errors.New("Provide text to save in memory.")
	}

	path, err := w.Join(memoryFile)
	if err != nil {
		return "", err
	}

	// Existing elements are kept verbatim whatever their shape.
	// A missing or unparsable file starts a fresh array.
	var entries []json.RawMessage
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &entries); err != nil {
			entries = nil
		}
	}
	entry, err := encodeEntry(memoryEntry{
		Timestamp: w.now().Format("2006-01-02T15:04:05-0700"),
		Memory:    text,
	})
	if err != nil {
		return "", fmt.Errorf("Failed to build updated memory document: %s", err)
	}
	entries = append(entries, entry)

	doc, err := encodeMemories(entries)
	if err != nil {
		return "", fmt.Errorf("Failed to build updated memory document: %s", err)
	}
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		return "", fmt.Errorf("Failed to open %s for writing: %s", path, reason(err))
	}
	return "Memory saved to ~/.gipwrap/memory.json.", nil
}

func encodeEntry(e memoryEntry) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// encodeMemories renders entries as a JSON array with one entry per line.
func encodeMemories(entries []json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, e := range entries {
		var line bytes.Buffer
		if err := json.Compact(&line, e); err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(line.Bytes())
		if i < len(entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")
	return buf.Bytes(), nil
}

func (w *Workspace) getMemories(_ context.Context, _ string) (string, error) {
	path, err := w.Join(memoryFile)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "No memories stored yet.", nil
	}
	return string(data), nil
}
