package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "partyline",
	Short:         "Partyline is the guest-facing proxy for a single-party birthday site.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setCommandExecutionContext(commandExecutionContext{
			CommandPath:       cmd.CommandPath(),
			UsesStructuredLog: commandUsesStructuredLogging(cmd),
		})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd, checkConfigCmd, versionCmd)
}
