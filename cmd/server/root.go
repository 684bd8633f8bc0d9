package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "doctrone",
		Short: "Doctrone medical assistant chat backend",
		Long: `Doctrone forwards patient chat messages to a generative model, enriched with
the patient's medical profile, and records every conversation.

Running without a subcommand starts the HTTP server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newAskCmd(),
		newTokenCmd(),
	)
	return root
}
