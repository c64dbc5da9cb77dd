package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spetersoncode/gipwrap/tool"
)

func testDescriptors() []tool.Descriptor {
	return []tool.Descriptor{
		{Name: "echo", Description: "Echo the input."},
		{Name: "count", Description: "Count input bytes."},
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	t.Run("no base prompt", func(t *testing.T) {
		got := BuildSystemPrompt("", testDescriptors())

		assert.True(t, strings.HasPrefix(got, "You are an autonomous AI agent."))
		assert.Contains(t, got, "Available tools:\n- echo: Echo the input.\n- count: Count input bytes.\nUse tools when needed.")
		assert.True(t, strings.HasSuffix(got, "omit tool/toolInput.\n"))
	})

	t.Run("base prompt gets a newline", func(t *testing.T) {
		got := BuildSystemPrompt("Be brief.", nil)
		assert.True(t, strings.HasPrefix(got, "Be brief.\nYou are an autonomous AI agent."))
	})

	t.Run("base prompt newline is not doubled", func(t *testing.T) {
		got := BuildSystemPrompt("Be brief.\n", nil)
		assert.True(t, strings.HasPrefix(got, "Be brief.\nYou are"))
	})

	t.Run("tools listed in order", func(t *testing.T) {
		got := BuildSystemPrompt("", testDescriptors())
		assert.Less(t, strings.Index(got, "- echo:"), strings.Index(got, "- count:"))
	})

	t.Run("no tools", func(t *testing.T) {
		got := BuildSystemPrompt("", nil)
		assert.Equal(t, promptHeader+promptFooter, got)
	})
}
