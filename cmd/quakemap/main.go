// Command quakemap fetches the USGS earthquake feed and the PB2002 tectonic
// plate boundaries and renders them as an interactive Leaflet map.
//
// Usage:
//
//	quakemap render --out quakes.html
//	quakemap serve
//	quakemap validate --quakes all_week.geojson --plates PB2002_plates.json
//
// Feeds, time zone, and logging are configured through environment variables;
// see internal/config.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-map/internal/config"
	"github.com/couchcryptid/quake-map/internal/observability"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "quakemap",
	Short: "Render recent earthquakes and plate boundaries as an interactive map",
	Long: "Fetches the USGS earthquake GeoJSON feed and the tectonic plate boundary dataset, " +
		"colors each event by depth, sizes it by magnitude, and writes a Leaflet map page.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		logger = observability.NewLogger(cfg)
		return nil
	},
}

func main() {
	rootCmd.AddCommand(newRenderCmd(), newServeCmd(), newValidateCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
