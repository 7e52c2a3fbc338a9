package mapview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/couchcryptid/quake-map/internal/domain"
)

const leafletVersion = "1.9.4"

// Page config handed to the browser. Field names follow Leaflet option names.

type pageConfig struct {
	Container   string          `json:"container"`
	Center      [2]float64      `json:"center"`
	Zoom        int             `json:"zoom"`
	BaseLayers  []pageTileLayer `json:"baseLayers"`
	Earthquakes pageMarkers     `json:"earthquakes"`
	Plates      pagePlates      `json:"plates"`
	Legend      pageLegend      `json:"legend"`
}

type pageTileLayer struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	Active      bool   `json:"active"`
}

type pageMarkers struct {
	Name    string              `json:"name"`
	Visible bool                `json:"visible"`
	Markers []domain.MarkerView `json:"markers"`
}

type pagePlates struct {
	Name    string          `json:"name"`
	Visible bool            `json:"visible"`
	Style   PathStyle       `json:"style"`
	GeoJSON json.RawMessage `json:"geojson"`
}

type pageLegend struct {
	Position string               `json:"position"`
	Entries  []domain.LegendEntry `json:"entries"`
}

type pageData struct {
	Title          string
	ContainerID    string
	LeafletVersion string
	GeneratedAt    string
	Legend         []domain.LegendEntry
	Config         pageConfig
}

type failureData struct {
	Message string
	Detail  string
}

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

var failureTmpl = template.Must(template.New("failure").Parse(failureHTML))

// Render writes the map as a standalone HTML document that mounts it with
// Leaflet. Nothing is written if rendering fails.
func (m *Map) Render(w io.Writer) error {
	plates, err := domain.EncodePlateBoundaries(m.Plates.Features)
	if err != nil {
		return err
	}

	layers := make([]pageTileLayer, len(m.BaseLayers))
	for i, l := range m.BaseLayers {
		layers[i] = pageTileLayer{Name: l.Name, URL: l.URL, Attribution: l.Attribution, Active: l.Active}
	}

	markers := m.Earthquakes.Markers
	if markers == nil {
		markers = []domain.MarkerView{}
	}

	data := pageData{
		Title:          m.Title,
		ContainerID:    m.ContainerID,
		LeafletVersion: leafletVersion,
		GeneratedAt:    m.GeneratedAt.UTC().Format(time.RFC3339),
		Legend:         m.Legend.Entries,
		Config: pageConfig{
			Container:  m.ContainerID,
			Center:     [2]float64{m.Center.Lat, m.Center.Lng},
			Zoom:       m.Zoom,
			BaseLayers: layers,
			Earthquakes: pageMarkers{
				Name:    m.Earthquakes.Name,
				Visible: m.Earthquakes.Visible,
				Markers: markers,
			},
			Plates: pagePlates{
				Name:    m.Plates.Name,
				Visible: m.Plates.Visible,
				Style:   m.Plates.Style,
				GeoJSON: plates,
			},
			Legend: pageLegend{Position: m.Legend.Position, Entries: m.Legend.Entries},
		},
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render map page: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// RenderFailure writes a page explaining why the map is unavailable.
func RenderFailure(w io.Writer, cause error) error {
	data := failureData{Message: "The map could not be built.", Detail: cause.Error()}
	var initErr *domain.InitializationError
	if errors.As(cause, &initErr) {
		data.Message = initErr.UserMessage()
	}

	var buf bytes.Buffer
	if err := failureTmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render failure page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="generated" content="{{.GeneratedAt}}">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@{{.LeafletVersion}}/dist/leaflet.css">
<style>
html, body, #{{.ContainerID}} { height: 100%; margin: 0; }
.legend { background: #fff; padding: 6px 8px; line-height: 18px; color: #555; border-radius: 5px; box-shadow: 0 0 15px rgba(0,0,0,0.2); }
.legend i { width: 18px; height: 18px; float: left; margin-right: 8px; opacity: 0.9; }
</style>
</head>
<body>
<div id="{{.ContainerID}}"></div>
<noscript>
<ul class="legend">
{{- range .Legend}}
<li><i style="background: {{.Color}}"></i> {{.Label}}</li>
{{- end}}
</ul>
</noscript>
<script src="https://unpkg.com/leaflet@{{.LeafletVersion}}/dist/leaflet.js"></script>
<script>
(function () {
  var cfg = {{.Config}};

  var baseLayers = {};
  var active = null;
  cfg.baseLayers.forEach(function (b) {
    var layer = L.tileLayer(b.url, { attribution: b.attribution });
    baseLayers[b.name] = layer;
    if (b.active) { active = layer; }
  });

  var markers = L.layerGroup();
  cfg.earthquakes.markers.forEach(function (m) {
    L.circleMarker([m.lat, m.lon], {
      radius: m.radius,
      fillColor: m.fillColor,
      color: m.color,
      weight: m.weight,
      opacity: m.opacity,
      fillOpacity: m.fillOpacity
    }).bindPopup(m.popup).addTo(markers);
  });

  var plates = L.geoJSON(cfg.plates.geojson, { style: cfg.plates.style });

  var overlays = {};
  overlays[cfg.earthquakes.name] = markers;
  overlays[cfg.plates.name] = plates;

  var initial = [active];
  if (cfg.plates.visible) { initial.push(plates); }
  if (cfg.earthquakes.visible) { initial.push(markers); }

  var map = L.map(cfg.container, { center: cfg.center, zoom: cfg.zoom, layers: initial });
  L.control.layers(baseLayers, overlays).addTo(map);

  var legend = L.control({ position: cfg.legend.position });
  legend.onAdd = function () {
    var div = L.DomUtil.create('div', 'info legend');
    cfg.legend.entries.forEach(function (e) {
      var row = L.DomUtil.create('div', '', div);
      var swatch = L.DomUtil.create('i', '', row);
      swatch.style.background = e.color;
      row.appendChild(document.createTextNode(' ' + e.label));
    });
    return div;
  };
  legend.addTo(map);
})();
</script>
</body>
</html>
`

const failureHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Earthquake map unavailable</title>
<style>
body { font-family: sans-serif; max-width: 40em; margin: 4em auto; color: #333; }
pre { white-space: pre-wrap; color: #888; }
</style>
</head>
<body>
<h1>Earthquake map unavailable</h1>
<p>{{.Message}}</p>
<pre>{{.Detail}}</pre>
</body>
</html>
`
