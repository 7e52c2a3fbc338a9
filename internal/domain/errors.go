package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFeatureCollection = errors.New("document is not a GeoJSON FeatureCollection")
	ErrMissingGeometry      = errors.New("missing geometry")
	ErrUnsupportedGeometry  = errors.New("unsupported geometry type")
	ErrMissingDepth         = errors.New("point has no depth ordinate")
	ErrCoordinateRange      = errors.New("coordinate out of range")
	ErrMissingProperty      = errors.New("missing property")
	ErrInvalidProperty      = errors.New("invalid property")
)

// FeatureError reports a single malformed feature. Index is the feature's
// zero-based position in the source collection.
type FeatureError struct {
	Index int
	ID    string
	Err   error
}

func (e *FeatureError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("feature %d (%s): %v", e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("feature %d: %v", e.Index, e.Err)
}

func (e *FeatureError) Unwrap() error { return e.Err }

// InitializationError reports why the map could not be built. Stage names the
// step that failed: "earthquakes", "plates", "decode", or "assemble".
type InitializationError struct {
	Stage string
	Err   error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("map initialization failed at %s: %v", e.Stage, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// UserMessage is the short text shown on the failure page.
func (e *InitializationError) UserMessage() string {
	switch e.Stage {
	case "earthquakes":
		return "The earthquake feed could not be loaded."
	case "plates":
		return "The tectonic plate boundaries could not be loaded."
	case "decode":
		return "A data feed returned an unreadable document."
	default:
		return "The map could not be built."
	}
}
