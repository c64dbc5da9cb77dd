// Package client turns a provider configuration into a ready backend and
// performs single-shot calls against it.
//
// A call sends the prompt exactly once, with no retries and no timeout other
// than the caller's context, and returns the provider's raw payload together
// with the assistant text unwrapped from it when that is possible:
//
//	c, err := client.New(ctx, client.Config{
//	    Provider: gipwrap.ProviderClaude,
//	    KeyEnv:   "MY_CLAUDE_KEY",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p, err := c.CallOnce(ctx, "Hello!", "You are terse.")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if p.Extracted {
//	    fmt.Println(p.Response)
//	}
//
// # API Keys
//
// [ResolveAPIKey] picks the key in this order: Config.APIKey, the environment
// variable named by Config.KeyEnv, then the provider's default variable
// (OPENAI_API_KEY, ANTHROPIC_API_KEY, DEEPSEEK_API_KEY or GOOGLE_API_KEY).
// Ollama needs no key.
//
// # Events
//
// Set Config.Events to observe request start, completion and failure.
// Events are sent without blocking and dropped when the channel is full.
package client
