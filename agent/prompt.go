package agent

import (
	"strings"

	"github.com/spetersoncode/gipwrap/tool"
)

// The prompt wording conditions the model's output format and is kept verbatim.
const (
	promptHeader = "You are an autonomous AI agent. Respond exclusively in JSON with keys: status, message, tool, toolInput.\n" +
		"When status is \"continue\" you must provide tool and toolInput.\n" +
		"Available tools:\n"

	promptFooter = "Use tools when needed. When you can answer the user, return status \"done\" and omit tool/toolInput.\n"
)

// BuildSystemPrompt returns the agent system prompt: the caller's base
// prompt (newline terminated) if any, the protocol header, one
// "- name: description" line per tool, and the footer.
func BuildSystemPrompt(base string, tools []tool.Descriptor) string {
	var b strings.Builder
	if base != "" {
		b.WriteString(base)
		if !strings.HasSuffix(base, "\n") {
			b.WriteByte('\n')
		}
	}
	b.WriteString(promptHeader)
	for _, t := range tools {
		b.WriteString("- ")
		b.WriteString(t.Name)
		b.WriteString(": ")
		b.WriteString(t.Description)
		b.WriteByte('\n')
	}
	b.WriteString(promptFooter)
	return b.String()
}
