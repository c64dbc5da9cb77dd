package gipwrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptions(t *testing.T) {
	t.Run("returns empty options when no options provided", func(t *testing.T) {
		opts := ApplyOptions()
		assert.NotNil(t, opts)
		assert.Empty(t, opts.Model)
		assert.Zero(t, opts.MaxTokens)
		assert.Nil(t, opts.Temperature)
	})

	t.Run("applies multiple options", func(t *testing.T) {
		opts := ApplyOptions(
			WithModel("llama3"),
			WithMaxTokens(256),
			WithTemperature(0.2),
		)
		assert.Equal(t, "llama3", opts.Model)
		assert.Equal(t, 256, opts.MaxTokens)
		require.NotNil(t, opts.Temperature)
		assert.InDelta(t, 0.2, *opts.Temperature, 1e-9)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		opts := ApplyOptions(WithModel("a"), WithModel("b"))
		assert.Equal(t, "b", opts.Model)
	})
}
