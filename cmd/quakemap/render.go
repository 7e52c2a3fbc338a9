package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-map/internal/adapter/feed"
	"github.com/couchcryptid/quake-map/internal/config"
	"github.com/couchcryptid/quake-map/internal/mapview"
	"github.com/couchcryptid/quake-map/internal/observability"
	"github.com/couchcryptid/quake-map/internal/pipeline"
)

func newRenderCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Fetch both feeds once and write the map page",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return renderTo(ctx, cfg, logger, observability.NewMetrics(), out, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "quakes.html", `output file, or "-" for stdout`)
	return cmd
}

// renderTo writes the page to the file at path, or to stdout when path is "-".
// The file is written even when initialization fails, so it always holds
// either the map or the failure page.
func renderTo(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, path string, stdout io.Writer) error {
	if path == "-" {
		return runRender(ctx, cfg, logger, metrics, stdout)
	}

	var buf bytes.Buffer
	runErr := runRender(ctx, cfg, logger, metrics, &buf)
	if buf.Len() > 0 {
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return errors.Join(runErr, fmt.Errorf("write %s: %w", path, err))
		}
		logger.Info("map written", "path", path, "bytes", buf.Len(), "failed", runErr != nil)
	}
	return runErr
}

// runRender performs one initialization and writes the resulting page to w.
// On failure the page shows the initialization error instead of a map.
func runRender(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics, w io.Writer) error {
	client := feed.NewClient(cfg.QuakeFeedURL, cfg.PlateFeedURL, cfg.FetchTimeout, metrics, logger)
	p := pipeline.New(client, mapview.Options{Location: cfg.DisplayTimezone}, logger, metrics)

	m, err := p.Run(ctx)
	if err != nil {
		if rerr := mapview.RenderFailure(w, err); rerr != nil {
			return fmt.Errorf("render failure page: %w", rerr)
		}
		return err
	}

	if err := m.Render(w); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	return nil
}
