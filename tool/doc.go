// Package tool provides the tool registry consumed by the agent loop and the
// built-in tools that operate on the local workspace.
//
// A tool is a [Descriptor]: a unique name, a description shown to the model,
// and an [Invoker] that maps argument text to output text or an error.
// Tools are collected into an immutable, ordered [Registry]:
//
//	registry := tool.MustNewRegistry(
//	    tool.Descriptor{
//	        Name:        "echo",
//	        Description: "Repeat the input back.",
//	        Invoke: func(ctx context.Context, input string) (string, error) {
//	            return input, nil
//	        },
//	    },
//	)
//
// # Built-in Tools
//
// [Builtin] returns the standard set, in prompt order: readFile, listDir,
// saveMemory, getMemories, generateImage, generateAudio, playAudio and
// playTts. All except readFile and listDir live inside a [Workspace],
// ~/.gipwrap by default, and reject paths that are absolute or climb out
// of it. External programs (ImageMagick, festival, mpv) are started through
// a [Runner] so tests can substitute their own.
package tool
