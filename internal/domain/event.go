package domain

import (
	"time"

	"github.com/twpayne/go-geom"
)

// Feed names, used as log and metric labels.
const (
	FeedEarthquakes = "earthquakes"
	FeedPlates      = "plates"
)

// Earthquake is one validated event from the USGS feed.
type Earthquake struct {
	ID        string
	Magnitude float64
	Depth     float64 // kilometers
	Lat       float64
	Lon       float64
	Time      time.Time
	Place     string
	URL       string
	Type      string
}

// PlateBoundary is a geometry-only plate outline. Properties in the source
// feed are not consumed.
type PlateBoundary struct {
	Geometry geom.T
}

// MarkerView is the render-ready circle for one earthquake.
type MarkerView struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Radius      float64 `json:"radius"`
	FillColor   string  `json:"fillColor"`
	Color       string  `json:"color"`
	Weight      float64 `json:"weight"`
	Opacity     float64 `json:"opacity"`
	FillOpacity float64 `json:"fillOpacity"`
	Popup       string  `json:"popup"`
}

// LegendEntry is one swatch of the depth legend.
type LegendEntry struct {
	Color string `json:"color"`
	Label string `json:"label"`
}
