package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-map/internal/adapter/feed"
	httpadapter "github.com/couchcryptid/quake-map/internal/adapter/http"
	"github.com/couchcryptid/quake-map/internal/mapview"
	"github.com/couchcryptid/quake-map/internal/observability"
	"github.com/couchcryptid/quake-map/internal/pipeline"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the map page for local preview",
		Long: "Starts an HTTP server on HTTP_ADDR, initializes the map in the background, " +
			"and serves it at / once ready. /healthz, /readyz, and /metrics are also exposed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			metrics := observability.NewMetrics()
			client := feed.NewClient(cfg.QuakeFeedURL, cfg.PlateFeedURL, cfg.FetchTimeout, metrics, logger)
			p := pipeline.New(client, mapview.Options{Location: cfg.DisplayTimezone}, logger, metrics)

			srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			serveErr := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
			}()

			// Failures are logged by the pipeline and reported on / and /readyz.
			go func() { _, _ = p.Run(ctx) }()

			var runErr error
			select {
			case <-ctx.Done():
			case runErr = <-serveErr:
				logger.Error("http server error", "error", runErr)
			}
			logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}

			logger.Info("shutdown complete")
			return runErr
		},
	}
}
