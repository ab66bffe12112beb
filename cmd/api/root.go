package main

import (
	"fmt"
	"os"

	"github.com/maprangsoft/crudapi/internal/config"
	"github.com/maprangsoft/crudapi/internal/i18n"
	"github.com/maprangsoft/crudapi/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "CRUD API server",
	Long:          `An HTTP API exposing users, blogs, products and customers stored in PostgreSQL.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the selected command and exits 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration, the message catalogs and the logger shared
// by every command.
func bootstrap() (*config.Config, *logger.LoggerService, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("failed to load config: %w", err)
	}

	if err := i18n.Init(); err != nil {
		return nil, nil, zerolog.Logger{}, fmt.Errorf("failed to load message catalogs: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, log, nil
}
