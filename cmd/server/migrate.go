package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"doctrone-backend/internal/config"
	"doctrone-backend/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			databaseURL, dir := config.LoadDatabase()

			pool, err := database.NewPostgresPool(databaseURL)
			if err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
			defer pool.Close()

			if err := database.RunMigrations(pool, dir, nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}
