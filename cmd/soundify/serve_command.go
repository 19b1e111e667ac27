package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/soundify/internal/adapters/rest"
	"github.com/ewilliams-labs/soundify/internal/core/ports"
	"github.com/ewilliams-labs/soundify/internal/core/services"
	"github.com/ewilliams-labs/soundify/internal/logging"
	"github.com/ewilliams-labs/soundify/internal/worker"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the recommendation HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// 1. Driven adapters: completion provider and optional audit store.
			completion, err := newCompletionProvider(cfg.Completion)
			if err != nil {
				return err
			}

			repo, err := openAuditRepository(cfg.Storage)
			if err != nil {
				return err
			}

			var sink ports.AuditSink
			if repo != nil {
				defer repo.Close()

				pool := worker.NewPool(repo, cfg.Audit.Workers, cfg.Audit.QueueSize)
				pool.Start()
				defer pool.Stop()
				sink = pool
			}

			// 2. Core service and the HTTP adapter that drives it.
			svc := services.NewRecommender(completion, sink)
			handler := rest.NewHandler(svc, rest.Options{CORSOrigins: cfg.Server.CORSOrigins})

			srv := &http.Server{
				Addr:              cfg.Server.Addr(),
				Handler:           handler,
				ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
			}

			logging.Info().
				Str("addr", srv.Addr).
				Str("provider", cfg.Completion.Provider).
				Str("storage", cfg.Storage.Driver).
				Msg("soundify API listening")

			serverErr := make(chan error, 1)
			go func() {
				err := srv.ListenAndServe()
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
					return
				}
				serverErr <- nil
			}()

			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case err := <-serverErr:
				return err
			case <-sigCtx.Done():
				logging.Info().Msg("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logging.Error().Err(err).Msg("shutdown error")
					return err
				}
			}
			return nil
		},
	}
}
