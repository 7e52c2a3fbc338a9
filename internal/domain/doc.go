// Package domain models USGS earthquake events and tectonic plate boundaries
// and turns them into styled map markers.
//
// # Data Sources
//
// Earthquake events come from the USGS real-time GeoJSON summary feeds,
// documented at https://earthquake.usgs.gov/earthquakes/feed/v1.0/geojson.php.
// Plate boundaries come from the PB2002 model (Bird, 2003) as republished in
// GeoJSON by https://github.com/fraxen/tectonicplates.
//
// # USGS Feed Conventions
//
// Geometry:
//
//	Point with three ordinates: [longitude, latitude, depth].
//	Depth is in kilometers below the geoid. Shallow events near the surface
//	may carry small negative depths (e.g. -1.2 for events above sea level).
//
// Properties consumed:
//
//	mag    magnitude, real. Micro-events can be negative (e.g. -0.4).
//	time   event time, integer milliseconds since the Unix epoch (UTC).
//	place  free-text description, e.g. "10 km SSW of Volcano, Hawaii".
//	url    event detail page on earthquake.usgs.gov.
//	type   event type, usually "earthquake"; also "quarry blast", "explosion", ...
//
// Every other property (felt, cdi, tsunami, ...) is ignored.
//
// # Depth Classification
//
// Depth maps to one of six colors, first match wins with a strict
// greater-than comparison, so a depth exactly on a threshold falls into the
// shallower bin:
//
//	> 90 km  #ea2c2c
//	> 70 km  #ea822c
//	> 50 km  #ee9c00
//	> 30 km  #eecc00
//	> 10 km  #d4ee00
//	else     #98ee00
//
// # Marker Size
//
// Radius is sqrt(magnitude) * 6 pixels. Non-positive magnitudes yield a
// zero radius.
//
// # Malformed Features
//
// A feature missing its geometry, its depth ordinate, or any consumed
// property is rejected with a [FeatureError] and skipped by callers; it never
// aborts decoding of the remaining features. Only an unreadable envelope
// (not JSON, or not a FeatureCollection) fails a whole feed.
package domain
