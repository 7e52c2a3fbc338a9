package mapview

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/couchcryptid/quake-map/internal/domain"
)

var frozen = time.Date(2024, time.October, 15, 14, 0, 0, 0, time.UTC)

func freezeClock(t *testing.T) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(frozen))
	t.Cleanup(func() { SetClock(nil) })
}

func testQuakes() []domain.Earthquake {
	at := time.UnixMilli(1729000000000).UTC()
	return []domain.Earthquake{
		{ID: "a", Magnitude: 4, Depth: 95, Lat: 1.1, Lon: 127.3, Time: at, Place: "Tobelo, Indonesia", URL: "https://example.com/a", Type: "earthquake"},
		{ID: "b", Magnitude: 2.5, Depth: 90, Lat: -17.9, Lon: -178.2, Time: at, Place: "Fiji region", URL: "https://example.com/b", Type: "earthquake"},
		{ID: "c", Magnitude: 1, Depth: 3, Lat: 38.8, Lon: -122.8, Time: at, Place: "The Geysers, CA", URL: "https://example.com/c", Type: "earthquake"},
	}
}

func testPlates() []domain.PlateBoundary {
	ring := geom.NewPolygonFlat(geom.XY, []float64{0, 0, 10, 0, 10, 10, 0, 0}, []int{8})
	line := geom.NewLineStringFlat(geom.XY, []float64{-0.4, -54.9, 0.1, -54.8})
	return []domain.PlateBoundary{{Geometry: ring}, {Geometry: line}}
}

func TestAssemble(t *testing.T) {
	freezeClock(t)

	m := Assemble(testQuakes(), testPlates(), Options{})

	assert.Equal(t, "map", m.ContainerID)
	assert.Equal(t, LatLng{Lat: 40.7128, Lng: -74.0059}, m.Center)
	assert.Equal(t, 4, m.Zoom)
	assert.Equal(t, frozen, m.GeneratedAt)
	assert.Equal(t, "Earthquakes: 3 events", m.Title)

	require.Len(t, m.BaseLayers, 3)
	assert.Equal(t, []string{LayerStreet, LayerTopography, LayerDarkMode},
		[]string{m.BaseLayers[0].Name, m.BaseLayers[1].Name, m.BaseLayers[2].Name})
	assert.Equal(t, LayerStreet, m.ActiveBaseLayer().Name)

	assert.Equal(t, OverlayEarthquakes, m.Earthquakes.Name)
	assert.True(t, m.Earthquakes.Visible)
	require.Len(t, m.Earthquakes.Markers, 3)
	assert.Equal(t, "#ea2c2c", m.Earthquakes.Markers[0].FillColor)
	assert.Equal(t, "#ea822c", m.Earthquakes.Markers[1].FillColor)
	assert.InDelta(t, 12.0, m.Earthquakes.Markers[0].Radius, 1e-9)

	assert.Equal(t, OverlayPlates, m.Plates.Name)
	assert.True(t, m.Plates.Visible)
	assert.Equal(t, PathStyle{Color: "orange", Weight: 2, FillOpacity: 0}, m.Plates.Style)
	assert.Len(t, m.Plates.Features, 2)

	assert.Equal(t, "bottomright", m.Legend.Position)
	assert.Len(t, m.Legend.Entries, 6)
}

func TestAssemble_MarkerPerQuake(t *testing.T) {
	quakes := testQuakes()
	m := Assemble(quakes, nil, Options{})

	require.Len(t, m.Earthquakes.Markers, len(quakes))
	for i, marker := range m.Earthquakes.Markers {
		assert.Contains(t, marker.Popup, quakes[i].Place)
	}
}

func TestAssemble_TitleUsesThousandsSeparator(t *testing.T) {
	quakes := make([]domain.Earthquake, 1234)
	m := Assemble(quakes, nil, Options{})
	assert.Equal(t, "Earthquakes: 1,234 events", m.Title)
}

func TestAssemble_PopupLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	m := Assemble(testQuakes()[:1], nil, Options{Location: tokyo})
	assert.Contains(t, m.Earthquakes.Markers[0].Popup, "10:46 PM JST")
}

func TestSelectBaseLayer(t *testing.T) {
	m := Assemble(nil, nil, Options{})

	require.NoError(t, m.SelectBaseLayer(LayerDarkMode))
	assert.Equal(t, LayerDarkMode, m.ActiveBaseLayer().Name)

	active := 0
	for _, l := range m.BaseLayers {
		if l.Active {
			active++
		}
	}
	assert.Equal(t, 1, active)

	err := m.SelectBaseLayer("Satellite")
	require.ErrorIs(t, err, ErrUnknownLayer)
	assert.Equal(t, LayerDarkMode, m.ActiveBaseLayer().Name)
}

func TestSetOverlayVisible(t *testing.T) {
	m := Assemble(nil, nil, Options{})

	require.NoError(t, m.SetOverlayVisible(OverlayEarthquakes, false))
	assert.False(t, m.Earthquakes.Visible)
	assert.True(t, m.Plates.Visible)

	require.NoError(t, m.SetOverlayVisible(OverlayPlates, false))
	assert.False(t, m.Plates.Visible)

	require.NoError(t, m.SetOverlayVisible(OverlayEarthquakes, true))
	assert.True(t, m.Earthquakes.Visible)
	assert.False(t, m.Plates.Visible)

	require.ErrorIs(t, m.SetOverlayVisible("Faults", true), ErrUnknownLayer)
}

func TestAssemble_IndependentBaseLayers(t *testing.T) {
	a := Assemble(nil, nil, Options{})
	b := Assemble(nil, nil, Options{})

	require.NoError(t, a.SelectBaseLayer(LayerTopography))
	assert.Equal(t, LayerStreet, b.ActiveBaseLayer().Name)
}
