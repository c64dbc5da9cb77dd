package tool

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "x")
	require.NoError(t, os.WriteFile(path, []byte("C"), 0o600))

	t.Run("returns contents", func(t *testing.T) {
		out, err := readFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "C", out)
	})

	t.Run("requires a path", func(t *testing.T) {
		_, err := readFile(ctx, "")
		assert.EqualError(t, err, "readFile requires a file path argument.")
	})

	t.Run("missing file", func(t *testing.T) {
		missing := filepath.Join(dir, "missing")
		_, err := readFile(ctx, missing)
		assert.EqualError(t, err, "Failed to read file '"+missing+"'.")
	})
}

func TestListDir(t *testing.T) {
	ctx := context.Background()

	t.Run("lists entries one per line", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0o600))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "a"), 0o700))

		out, err := listDir(ctx, dir)

		require.NoError(t, err)
		assert.Equal(t, "a\nb.txt\n", out)
	})

	t.Run("empty directory", func(t *testing.T) {
		out, err := listDir(ctx, t.TempDir())

		require.NoError(t, err)
		assert.Equal(t, "(empty directory)\n", out)
	})

	t.Run("defaults to working directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "only"), nil, 0o600))
		t.Chdir(dir)

		out, err := listDir(ctx, "")

		require.NoError(t, err)
		assert.Equal(t, "only\n", out)
	})

	t.Run("missing directory", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope")

		_, err := listDir(ctx, missing)

		assert.EqualError(t, err, "Failed to open directory '"+missing+"': no such file or directory")
	})
}
