package tool

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("no memories yet", func(t *testing.T) {
		ws := NewWorkspace(t.TempDir())

		out, err := ws.getMemories(ctx, "")

		require.NoError(t, err)
		assert.Equal(t, "No memories stored yet.", out)
	})

	t.Run("save requires text", func(t *testing.T) {
		ws := NewWorkspace(t.TempDir())

		_, err := ws.saveMemory(ctx, "  \n ")

		assert.EqualError(t, err, "Provide text to save in memory.")
	})

	t.Run("appends entries", func(t *testing.T) {
		root := t.TempDir()
		ws := NewWorkspace(root, WithClock(fixedClock))

		out, err := ws.saveMemory(ctx, "  likes <tea> & \"cake\"\n")
		require.NoError(t, err)
		assert.Equal(t, "Memory saved to ~/.gipwrap/memory.json.", out)

		_, err = ws.saveMemory(ctx, "second")
		require.NoError(t, err)

		stored, err := ws.getMemories(ctx, "")
		require.NoError(t, err)

		var entries []memoryEntry
		require.NoError(t, json.Unmarshal([]byte(stored), &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, `likes <tea> & "cake"`, entries[0].Memory)
		assert.Equal(t, "second", entries[1].Memory)
		assert.Equal(t, fixedClock().Format("2006-01-02T15:04:05-0700"), entries[0].Timestamp)
		assert.Contains(t, stored, "<tea>")
		assert.Equal(t, 4, strings.Count(stored, "\n"), "one entry per line")
	})

	t.Run("malformed file starts a new array", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "memory.json"), []byte("garbage"), 0o600))
		ws := NewWorkspace(root)

		_, err := ws.saveMemory(ctx, "fresh")
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(root, "memory.json"))
		require.NoError(t, err)
		var entries []memoryEntry
		require.NoError(t, json.Unmarshal(data, &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, "fresh", entries[0].Memory)
	})

	t.Run("keeps existing elements verbatim", func(t *testing.T) {
		tests := []struct {
			name     string
			existing string
			want     []string
		}{
			{
				name:     "extra fields",
				existing: `[{"timestamp":"t0","memory":"old","tag":"keep"}]`,
				want:     []string{`{"timestamp":"t0","memory":"old","tag":"keep"}`},
			},
			{
				name:     "non object elements",
				existing: "[\n  \"a plain string memory\",\n  42\n]\n",
				want:     []string{`"a plain string memory"`, `42`},
			},
			{
				name:     "empty array",
				existing: "[]",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				root := t.TempDir()
				path := filepath.Join(root, "memory.json")
				require.NoError(t, os.WriteFile(path, []byte(tt.existing), 0o600))
				ws := NewWorkspace(root, WithClock(fixedClock))

				_, err := ws.saveMemory(ctx, "new")
				require.NoError(t, err)

				data, err := os.ReadFile(path)
				require.NoError(t, err)
				var elems []json.RawMessage
				require.NoError(t, json.Unmarshal(data, &elems))
				require.Len(t, elems, len(tt.want)+1)
				for i, want := range tt.want {
					assert.JSONEq(t, want, string(elems[i]))
				}

				var last memoryEntry
				require.NoError(t, json.Unmarshal(elems[len(elems)-1], &last))
				assert.Equal(t, "new", last.Memory)
			})
		}
	})
}
