package extract

import (
	"strings"

	ai "github.com/spetersoncode/gipwrap"
)

// Response unwraps the assistant text from a provider's raw response body.
//
// OpenAI-compatible providers nest the text under a message object, so the
// content field is looked up only after the first "message" label. Ollama
// reports it as "response"; Claude and Gemini as the first "text" field.
func Response(p ai.Provider, raw string) (string, bool) {
	switch p {
	case ai.ProviderOllama:
		return Field(raw, "response")
	case ai.ProviderChatGPT, ai.ProviderDeepSeek:
		i := strings.Index(raw, `"message"`)
		if i < 0 {
			return "", false
		}
		return Field(raw[i:], "content")
	case ai.ProviderClaude, ai.ProviderGemini:
		return Field(raw, "text")
	default:
		return "", false
	}
}
