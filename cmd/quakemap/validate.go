package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-map/internal/adapter/feed"
	"github.com/couchcryptid/quake-map/internal/domain"
	"github.com/couchcryptid/quake-map/internal/observability"
)

var errValidationFailed = errors.New("validation failed")

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func newValidateCmd() *cobra.Command {
	var quakesPath, platesPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check both feeds for malformed features without rendering",
		Long: "Decodes the earthquake and plate boundary documents and reports every feature " +
			"the map would skip. Reads local files when --quakes or --plates is given, " +
			"otherwise fetches the configured feed.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := feed.NewClient(cfg.QuakeFeedURL, cfg.PlateFeedURL, cfg.FetchTimeout,
				observability.NewMetrics(), logger)

			quakes, err := load(cmd.Context(), quakesPath, client.FetchEarthquakes)
			if err != nil {
				return err
			}
			plates, err := load(cmd.Context(), platesPath, client.FetchPlateBoundaries)
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), quakes, plates)
		},
	}
	cmd.Flags().StringVar(&quakesPath, "quakes", "", "earthquake GeoJSON file (default: fetch QUAKE_FEED_URL)")
	cmd.Flags().StringVar(&platesPath, "plates", "", "plate boundary GeoJSON file (default: fetch PLATE_FEED_URL)")
	return cmd
}

func load(ctx context.Context, path string, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	if path == "" {
		return fetch(ctx)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// runValidate checks both documents and writes a phase report to w.
// It returns errValidationFailed when any phase has errors.
func runValidate(w io.Writer, quakeData, plateData []byte) error {
	fmt.Fprintln(w, "=== Quake Map Feed Validation ===")
	fmt.Fprintln(w)

	quakesPhase, quakes := validateEarthquakes(quakeData)
	platesPhase, plates := validatePlates(plateData)

	phases := []*phase{
		quakesPhase,
		platesPhase,
		validateMarkers(quakes),
		validatePlateRoundTrip(plates),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Features: %d earthquakes, %d plate boundaries\n", len(quakes), len(plates))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return nil
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return errValidationFailed
}

func validateEarthquakes(data []byte) (*phase, []domain.Earthquake) {
	p := &phase{name: "Earthquake features well-formed"}
	quakes, problems, err := domain.DecodeEarthquakes(data)
	if err != nil {
		p.errorf("%v", err)
		return p, nil
	}
	for _, fe := range problems {
		p.errorf("%v", fe)
	}
	return p, quakes
}

func validatePlates(data []byte) (*phase, []domain.PlateBoundary) {
	p := &phase{name: "Plate boundary features well-formed"}
	plates, problems, err := domain.DecodePlateBoundaries(data)
	if err != nil {
		p.errorf("%v", err)
		return p, nil
	}
	for _, fe := range problems {
		p.errorf("%v", fe)
	}
	return p, plates
}

// validateMarkers checks that every decoded event yields a drawable marker.
func validateMarkers(quakes []domain.Earthquake) *phase {
	p := &phase{name: "Markers use depth palette"}

	palette := make([]string, 0, len(domain.DepthBins()))
	for _, b := range domain.DepthBins() {
		palette = append(palette, b.Color)
	}

	for i, m := range domain.BuildMarkers(quakes, nil) {
		q := quakes[i]
		if !slices.Contains(palette, m.FillColor) {
			p.errorf("%s: fill color %q not in palette", q.ID, m.FillColor)
		}
		if m.Radius < 0 {
			p.errorf("%s: negative radius %g", q.ID, m.Radius)
		}
		if !strings.Contains(m.Popup, fmt.Sprintf("Incident #%d", i+1)) {
			p.errorf("%s: popup missing incident number %d", q.ID, i+1)
		}
	}
	return p
}

// validatePlateRoundTrip re-encodes the boundaries the map overlay would carry
// and checks none are lost.
func validatePlateRoundTrip(plates []domain.PlateBoundary) *phase {
	p := &phase{name: "Plate overlay re-encodes"}

	data, err := domain.EncodePlateBoundaries(plates)
	if err != nil {
		p.errorf("encode: %v", err)
		return p
	}
	decoded, problems, err := domain.DecodePlateBoundaries(data)
	if err != nil {
		p.errorf("decode: %v", err)
		return p
	}
	for _, fe := range problems {
		p.errorf("%v", fe)
	}
	if len(decoded) != len(plates) {
		p.errorf("count: encoded %d, decoded %d", len(plates), len(decoded))
	}
	return p
}
