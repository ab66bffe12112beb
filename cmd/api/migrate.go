package main

import (
	"context"
	"time"

	"github.com/maprangsoft/crudapi/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		return database.Migrate(ctx, &log, cfg)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
