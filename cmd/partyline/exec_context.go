package main

import "github.com/spf13/cobra"

// commandExecutionContext captures how the active command reports fatal
// errors: long-running commands log structured lines, one-shot commands
// print plain text.
type commandExecutionContext struct {
	CommandPath       string
	UsesStructuredLog bool
}

var executionContext = defaultExecutionContext()

func defaultExecutionContext() commandExecutionContext {
	return commandExecutionContext{CommandPath: "partyline"}
}

func currentCommandExecutionContext() commandExecutionContext {
	return executionContext
}

func setCommandExecutionContext(ctx commandExecutionContext) {
	executionContext = ctx
}

func resetCommandExecutionContext() {
	executionContext = defaultExecutionContext()
}

var structuredLogCommands = map[string]struct{}{
	"serve": {},
}

func commandUsesStructuredLogging(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	_, ok := structuredLogCommands[cmd.Name()]
	return ok
}
