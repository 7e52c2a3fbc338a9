package domain

import (
	"html"
	"html/template"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	markerScale = 6

	// PopupTimeLayout renders e.g. "Tuesday, October 15, 2024 at 3:04 PM UTC".
	PopupTimeLayout = "Monday, January 2, 2006 at 3:04 PM MST"
)

var popupTmpl = template.Must(template.New("popup").Parse(
	`<h2>Incident #{{.Ordinal}}</h2>` +
		`<strong>Time:</strong> {{.Time}}<br>` +
		`<strong>Location:</strong> {{.Place}}<br>` +
		`<strong>Magnitude:</strong> {{.Magnitude}}<br>` +
		`<strong>Depth:</strong> {{.Depth}} km<br>` +
		`<strong>Detail:</strong> <a href="{{.URL}}" target="_blank" rel="noopener">link</a><br>` +
		`<strong>Type:</strong> {{.Type}}`,
))

type popupData struct {
	Ordinal   int
	Time      string
	Place     string
	Magnitude string
	Depth     string
	URL       string
	Type      string
}

// MarkerRadius scales a magnitude to a circle radius in pixels.
// Non-positive and NaN magnitudes yield 0.
func MarkerRadius(magnitude float64) float64 {
	if !(magnitude > 0) {
		return 0
	}
	return math.Sqrt(magnitude) * markerScale
}

// BuildMarker turns an earthquake into a styled marker. index is the
// zero-based position in the marker layer; the popup shows it 1-based.
// Times are shown in loc, or UTC when loc is nil.
func BuildMarker(q Earthquake, index int, loc *time.Location) MarkerView {
	if loc == nil {
		loc = time.UTC
	}

	return MarkerView{
		Lat:         q.Lat,
		Lon:         q.Lon,
		Radius:      MarkerRadius(q.Magnitude),
		FillColor:   DepthColor(q.Depth),
		Color:       "black",
		Weight:      1,
		Opacity:     0.5,
		FillOpacity: 0.8,
		Popup: renderPopup(popupData{
			Ordinal:   index + 1,
			Time:      q.Time.In(loc).Format(PopupTimeLayout),
			Place:     q.Place,
			Magnitude: formatNumber(q.Magnitude),
			Depth:     formatNumber(q.Depth),
			URL:       q.URL,
			Type:      q.Type,
		}),
	}
}

// BuildMarkers builds one marker per earthquake, in order.
func BuildMarkers(quakes []Earthquake, loc *time.Location) []MarkerView {
	markers := make([]MarkerView, len(quakes))
	for i, q := range quakes {
		markers[i] = BuildMarker(q, i, loc)
	}
	return markers
}

func renderPopup(d popupData) string {
	var b strings.Builder
	if err := popupTmpl.Execute(&b, d); err != nil {
		return html.EscapeString(d.Place)
	}
	return b.String()
}

// formatNumber prints the shortest decimal that round-trips, e.g. 4.5 or 10.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
