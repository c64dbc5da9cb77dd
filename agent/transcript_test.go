package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestTurnString(t *testing.T) {
	t.Run("all fields present", func(t *testing.T) {
		turn := Turn{
			Step:       2,
			Response:   `{"status":"continue"}`,
			Message:    strPtr("checking"),
			Tool:       strPtr("echo"),
			ToolInput:  strPtr("hi"),
			ToolOutput: "hi",
		}

		want := "\n\n[agent step 2]\nResponse: {\"status\":\"continue\"}\nMessage: checking\nTool: echo\nToolInput: hi\nToolOutput:\nhi\n\n" +
			"Continue responding in JSON with keys status, message, tool, toolInput."
		assert.Equal(t, want, turn.String())
	})

	t.Run("placeholders", func(t *testing.T) {
		turn := Turn{Step: 1, Response: "r"}

		got := turn.String()
		assert.Contains(t, got, "Message: (none)\n")
		assert.Contains(t, got, "Tool: (missing)\n")
		assert.Contains(t, got, "ToolInput: (empty)\n")
		assert.Contains(t, got, "ToolOutput:\n(empty)\n")
	})

	t.Run("empty strings are not placeholders except output", func(t *testing.T) {
		turn := Turn{Step: 1, Message: strPtr(""), Tool: strPtr(""), ToolInput: strPtr("")}

		got := turn.String()
		assert.Contains(t, got, "Message: \n")
		assert.Contains(t, got, "Tool: \n")
		assert.Contains(t, got, "ToolInput: \n")
		assert.Contains(t, got, "ToolOutput:\n(empty)\n")
	})
}

func TestTranscript(t *testing.T) {
	tr := NewTranscript("question")
	assert.Equal(t, "question", tr.String())
	assert.Equal(t, 0, tr.Len())

	first := Turn{Step: 1, Response: "a", ToolOutput: "x"}
	second := Turn{Step: 2, Response: "b", ToolOutput: "y"}
	tr.Append(first)
	tr.Append(second)

	assert.Equal(t, "question"+first.String()+second.String(), tr.String())
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, "question", tr.Input())

	turns := tr.Turns()
	turns[0].Step = 99
	assert.Equal(t, 1, tr.Turns()[0].Step)
}
