// Package agent runs the JSON tool-calling loop of gipwrap.
//
// The model is instructed through the system prompt to answer with a JSON
// object carrying the keys status, message, tool and toolInput. While it
// answers with status "continue" the named tool is executed and the
// outcome is appended to the conversation, which is sent again in full on
// the next step. Any other answer ends the run.
//
// # Basic Usage
//
//	c, err := client.New(ctx, client.Config{Provider: ai.ProviderClaude})
//	if err != nil {
//	    return err
//	}
//	a := agent.New(c, tool.Builtin(tool.DefaultWorkspace()))
//
//	res, err := a.Run(ctx, "List my saved memories",
//	    agent.WithThinking(os.Stderr),
//	    agent.WithMaxSteps(8),
//	)
//	if err != nil {
//	    return err // *ai.CallError; the provider call failed
//	}
//	fmt.Print(res.Output)
//
// # Termination
//
// A run ends successfully in one of four ways, reported in Result.Termination:
//
//   - TerminationComplete: status "done" or any unrecognized status
//   - TerminationFreeform: the answer carried no status at all
//   - TerminationNoResponse: no assistant text could be found in the payload
//   - TerminationMaxSteps: the step budget ran out
//
// Tool failures never end a run. Their text is shown to the model, which is
// expected to recover on the next step.
//
// # Field Extraction
//
// Protocol fields are read with extract.Field, a lenient scanner rather
// than a JSON parser, so answers wrapped in prose or code fences still work.
package agent
