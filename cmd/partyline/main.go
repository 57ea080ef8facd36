package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/partyline/partyline/internal/logging"
)

func main() {
	if code := runMain(Execute, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

func runMain(execute func() error, stderr io.Writer) int {
	err := execute()
	if err == nil {
		return 0
	}
	return exitCodeForError(err, stderr)
}

// exitCodeForError maps a command error to a process exit code. Cancellation
// exits 130 to mirror the shell SIGINT convention; exitError values carry
// their own code.
func exitCodeForError(err error, stderr io.Writer) int {
	var ee *exitError
	switch {
	case errors.As(err, &ee):
		if !ee.silent {
			cause := err
			if ee.err != nil {
				cause = ee.err
			}
			emitCommandError(cause, "command failed", ee.code, stderr)
		}
		return ee.code
	case errors.Is(err, context.Canceled):
		emitCommandError(err, "command canceled", 130, stderr)
		return 130
	default:
		emitCommandError(err, "command failed", 1, stderr)
		return 1
	}
}

// emitCommandError writes the fatal line. serve logs a structured record so
// a crash is parseable next to its runtime logs; one-shot commands print the
// bare error for humans. Invalid logging env falls back to the defaults
// rather than masking the original failure.
func emitCommandError(err error, message string, exitCode int, stderr io.Writer) {
	ctx := currentCommandExecutionContext()
	if !ctx.UsesStructuredLog {
		if exitCode == 130 {
			fmt.Fprintln(stderr, "canceled")
		} else {
			fmt.Fprintln(stderr, err)
		}
		return
	}

	cfg, cfgErr := logging.LoadConfigFromEnv()
	if cfgErr != nil {
		cfg = logging.DefaultConfig()
	}
	logger := logging.NewLogger(cfg, stderr, ctx.CommandPath)
	logger.Error(message, "exit_code", exitCode, "error", err)
}
