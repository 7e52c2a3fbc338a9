package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// featureCollection is the envelope only; features are decoded one at a time
// so a single malformed feature cannot fail the whole document.
type featureCollection struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

// DecodeCollection splits a GeoJSON FeatureCollection into its raw features.
func DecodeCollection(data []byte) ([]json.RawMessage, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("%w: type %q", ErrNotFeatureCollection, fc.Type)
	}
	return fc.Features, nil
}

// DecodeEarthquakes decodes every valid earthquake in a USGS feed. Malformed
// features are returned as problems, not as an error.
func DecodeEarthquakes(data []byte) ([]Earthquake, []*FeatureError, error) {
	raws, err := DecodeCollection(data)
	if err != nil {
		return nil, nil, err
	}

	quakes := make([]Earthquake, 0, len(raws))
	var problems []*FeatureError
	for i, raw := range raws {
		q, err := ParseEarthquake(i, raw)
		if err != nil {
			problems = append(problems, asFeatureError(i, err))
			continue
		}
		quakes = append(quakes, q)
	}
	return quakes, problems, nil
}

// DecodePlateBoundaries decodes every plate outline with a usable geometry.
func DecodePlateBoundaries(data []byte) ([]PlateBoundary, []*FeatureError, error) {
	raws, err := DecodeCollection(data)
	if err != nil {
		return nil, nil, err
	}

	plates := make([]PlateBoundary, 0, len(raws))
	var problems []*FeatureError
	for i, raw := range raws {
		p, err := ParsePlateBoundary(i, raw)
		if err != nil {
			problems = append(problems, asFeatureError(i, err))
			continue
		}
		plates = append(plates, p)
	}
	return plates, problems, nil
}

// ParseEarthquake validates one USGS feature. index is used for error reporting.
func ParseEarthquake(index int, raw json.RawMessage) (Earthquake, error) {
	var f geojson.Feature
	if err := json.Unmarshal(raw, &f); err != nil {
		return Earthquake{}, &FeatureError{Index: index, Err: err}
	}
	fail := func(err error) (Earthquake, error) {
		return Earthquake{}, &FeatureError{Index: index, ID: f.ID, Err: err}
	}

	if f.Geometry == nil {
		return fail(ErrMissingGeometry)
	}
	pt, ok := f.Geometry.(*geom.Point)
	if !ok {
		return fail(fmt.Errorf("%w: %T", ErrUnsupportedGeometry, f.Geometry))
	}
	if len(pt.FlatCoords()) == 0 {
		return fail(ErrMissingGeometry)
	}
	if pt.Layout().ZIndex() < 0 {
		return fail(ErrMissingDepth)
	}
	lon, lat, depth := pt.X(), pt.Y(), pt.Z()
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return fail(fmt.Errorf("%w: lat %g lon %g", ErrCoordinateRange, lat, lon))
	}

	mag, err := numberProperty(f.Properties, "mag")
	if err != nil {
		return fail(err)
	}
	ms, err := millisProperty(f.Properties, "time")
	if err != nil {
		return fail(err)
	}
	place, err := stringProperty(f.Properties, "place")
	if err != nil {
		return fail(err)
	}
	detailURL, err := stringProperty(f.Properties, "url")
	if err != nil {
		return fail(err)
	}
	eventType, err := stringProperty(f.Properties, "type")
	if err != nil {
		return fail(err)
	}

	return Earthquake{
		ID:        f.ID,
		Magnitude: mag,
		Depth:     depth,
		Lat:       lat,
		Lon:       lon,
		Time:      time.UnixMilli(ms).UTC(),
		Place:     place,
		URL:       detailURL,
		Type:      eventType,
	}, nil
}

// ParsePlateBoundary validates one plate feature. Only line and polygon
// geometries are accepted.
func ParsePlateBoundary(index int, raw json.RawMessage) (PlateBoundary, error) {
	var f geojson.Feature
	if err := json.Unmarshal(raw, &f); err != nil {
		return PlateBoundary{}, &FeatureError{Index: index, Err: err}
	}

	switch g := f.Geometry.(type) {
	case nil:
		return PlateBoundary{}, &FeatureError{Index: index, ID: f.ID, Err: ErrMissingGeometry}
	case *geom.LineString, *geom.MultiLineString, *geom.Polygon, *geom.MultiPolygon:
		if len(g.FlatCoords()) == 0 {
			return PlateBoundary{}, &FeatureError{Index: index, ID: f.ID, Err: ErrMissingGeometry}
		}
		return PlateBoundary{Geometry: g}, nil
	default:
		return PlateBoundary{}, &FeatureError{
			Index: index,
			ID:    f.ID,
			Err:   fmt.Errorf("%w: %T", ErrUnsupportedGeometry, g),
		}
	}
}

// EncodePlateBoundaries writes the outlines back out as a FeatureCollection.
func EncodePlateBoundaries(plates []PlateBoundary) ([]byte, error) {
	fc := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(plates))}
	for _, p := range plates {
		fc.Features = append(fc.Features, &geojson.Feature{Geometry: p.Geometry})
	}
	data, err := json.Marshal(&fc)
	if err != nil {
		return nil, fmt.Errorf("encode plate boundaries: %w", err)
	}
	return data, nil
}

func numberProperty(props map[string]any, key string) (float64, error) {
	v, ok := props[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingProperty, key)
	}
	n, ok := v.(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %s is %T, want number", ErrInvalidProperty, key, v)
	}
	return n, nil
}

// millisProperty reads an integral epoch-milliseconds value that fits in int64.
func millisProperty(props map[string]any, key string) (int64, error) {
	n, err := numberProperty(props, key)
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) || n < math.MinInt64 || n >= -math.MinInt64 {
		return 0, fmt.Errorf("%w: %s is %g, want integer milliseconds", ErrInvalidProperty, key, n)
	}
	return int64(n), nil
}

func stringProperty(props map[string]any, key string) (string, error) {
	v, ok := props[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingProperty, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, want string", ErrInvalidProperty, key, v)
	}
	return s, nil
}

func asFeatureError(index int, err error) *FeatureError {
	var fe *FeatureError
	if errors.As(err, &fe) {
		return fe
	}
	return &FeatureError{Index: index, Err: err}
}
