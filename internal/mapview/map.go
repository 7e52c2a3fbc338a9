package mapview

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/couchcryptid/quake-map/internal/domain"
)

const (
	// ContainerID is the id of the element the map is mounted in.
	ContainerID = "map"

	DefaultZoom = 4

	LayerStreet     = "Street"
	LayerTopography = "Topography"
	LayerDarkMode   = "Dark Mode"

	OverlayEarthquakes = "Earthquakes"
	OverlayPlates      = "Tectonic Plates"

	osmAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
)

// DefaultCenter is New York City.
var DefaultCenter = LatLng{Lat: 40.7128, Lng: -74.0059}

// ErrUnknownLayer is returned by the layer controls for names not on the map.
var ErrUnknownLayer = errors.New("unknown layer")

// LatLng is a WGS-84 coordinate in Leaflet's [lat, lng] order.
type LatLng struct {
	Lat float64
	Lng float64
}

// TileLayer is a base map. Exactly one base layer on a Map is Active.
type TileLayer struct {
	Name        string
	URL         string
	Attribution string
	Active      bool
}

// PathStyle is the stroke/fill style of a vector overlay.
type PathStyle struct {
	Color       string  `json:"color"`
	Weight      float64 `json:"weight"`
	FillOpacity float64 `json:"fillOpacity"`
}

// MarkerLayer is the togglable overlay holding every earthquake marker.
type MarkerLayer struct {
	Name    string
	Visible bool
	Markers []domain.MarkerView
}

// BoundaryLayer is the togglable plate-outline overlay.
type BoundaryLayer struct {
	Name     string
	Visible  bool
	Style    PathStyle
	Features []domain.PlateBoundary
}

// Legend is the depth legend control.
type Legend struct {
	Position string
	Entries  []domain.LegendEntry
}

// Map is an assembled, renderable map. It is owned by the caller; the layer
// controls mutate it in place.
type Map struct {
	ContainerID string
	Title       string
	Center      LatLng
	Zoom        int
	BaseLayers  []TileLayer
	Earthquakes MarkerLayer
	Plates      BoundaryLayer
	Legend      Legend
	GeneratedAt time.Time
}

// Options tune map assembly.
type Options struct {
	// Location is the time zone used in popups. Nil means UTC.
	Location *time.Location
}

// baseLayers returns a fresh set of the three base maps with Street active.
func baseLayers() []TileLayer {
	return []TileLayer{
		{
			Name:        LayerStreet,
			URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
			Attribution: osmAttribution,
			Active:      true,
		},
		{
			Name: LayerTopography,
			URL:  "https://{s}.tile.opentopomap.org/{z}/{x}/{y}.png",
			Attribution: `Map data: ` + osmAttribution + `, <a href="http://viewfinderpanoramas.org">SRTM</a> | ` +
				`Map style: &copy; <a href="https://opentopomap.org">OpenTopoMap</a> ` +
				`(<a href="https://creativecommons.org/licenses/by-sa/3.0/">CC-BY-SA</a>)`,
		},
		{
			Name:        LayerDarkMode,
			URL:         "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
			Attribution: osmAttribution + ` &copy; <a href="https://carto.com/attributions">CARTO</a>`,
		},
	}
}

// Assemble builds the map: three base layers with Street active, the
// earthquake marker overlay, the plate-boundary overlay, and the depth legend.
// Both overlays start visible.
func Assemble(quakes []domain.Earthquake, plates []domain.PlateBoundary, opts Options) *Map {
	printer := message.NewPrinter(language.English)

	return &Map{
		ContainerID: ContainerID,
		Title:       printer.Sprintf("Earthquakes: %d events", len(quakes)),
		Center:      DefaultCenter,
		Zoom:        DefaultZoom,
		BaseLayers:  baseLayers(),
		Earthquakes: MarkerLayer{
			Name:    OverlayEarthquakes,
			Visible: true,
			Markers: domain.BuildMarkers(quakes, opts.Location),
		},
		Plates: BoundaryLayer{
			Name:     OverlayPlates,
			Visible:  true,
			Style:    PathStyle{Color: "orange", Weight: 2, FillOpacity: 0},
			Features: plates,
		},
		Legend: Legend{
			Position: "bottomright",
			Entries:  domain.Legend(),
		},
		GeneratedAt: clock.Now(),
	}
}

// ActiveBaseLayer returns the selected base layer.
func (m *Map) ActiveBaseLayer() TileLayer {
	for _, l := range m.BaseLayers {
		if l.Active {
			return l
		}
	}
	return TileLayer{}
}

// SelectBaseLayer makes name the only active base layer.
func (m *Map) SelectBaseLayer(name string) error {
	found := false
	for _, l := range m.BaseLayers {
		if l.Name == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: base layer %q", ErrUnknownLayer, name)
	}

	for i := range m.BaseLayers {
		m.BaseLayers[i].Active = m.BaseLayers[i].Name == name
	}
	return nil
}

// SetOverlayVisible shows or hides one overlay without touching the other.
func (m *Map) SetOverlayVisible(name string, visible bool) error {
	switch name {
	case m.Earthquakes.Name:
		m.Earthquakes.Visible = visible
	case m.Plates.Name:
		m.Plates.Visible = visible
	default:
		return fmt.Errorf("%w: overlay %q", ErrUnknownLayer, name)
	}
	return nil
}
