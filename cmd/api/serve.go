package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maprangsoft/crudapi/internal/database"
	"github.com/maprangsoft/crudapi/internal/handler"
	"github.com/maprangsoft/crudapi/internal/repository"
	"github.com/maprangsoft/crudapi/internal/router"
	"github.com/maprangsoft/crudapi/internal/server"
	"github.com/maprangsoft/crudapi/internal/service"
	"github.com/spf13/cobra"
)

var runMigrations bool

// serveCmd starts the HTTP server and blocks until SIGINT/SIGTERM, then
// drains in-flight requests and releases resources for at most
// server.shutdown_timeout. Past that the command fails and Execute exits 1.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if runMigrations {
			if err := database.Migrate(ctx, &log, cfg); err != nil {
				loggerService.Shutdown()
				return err
			}
		}

		srv, err := server.New(cfg, &log, loggerService)
		if err != nil {
			loggerService.Shutdown()
			return fmt.Errorf("failed to initialize server: %w", err)
		}

		repos := repository.NewRepositories(srv)
		services := service.NewServices(srv, repos)
		handlers := handler.NewHandlers(srv, services)

		srv.SetupHTTPServer(router.NewRouter(srv, handlers))

		serveErr := make(chan error, 1)
		go func() {
			serveErr <- srv.Start()
		}()

		select {
		case err := <-serveErr:
			_ = srv.Shutdown(context.Background())
			if err != nil {
				return fmt.Errorf("server stopped: %w", err)
			}
			return nil
		case <-ctx.Done():
		}
		// Restore default signal handling so a second signal kills the process.
		stop()

		log.Info().Msg("shutdown signal received, draining requests")

		timeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			if errors.Is(err, server.ErrShutdownTimeout) {
				log.Error().Dur("timeout", timeout).Msg("could not release resources in time, forcing exit")
			}
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("server exited properly")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&runMigrations, "migrate", false, "apply pending migrations before serving")
	rootCmd.AddCommand(serveCmd)
}
