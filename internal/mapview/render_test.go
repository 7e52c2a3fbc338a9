package mapview

import (
	"bytes"
	"errors"
	"html"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-map/internal/domain"
)

func TestRender(t *testing.T) {
	freezeClock(t)
	m := Assemble(testQuakes(), testPlates(), Options{})

	var buf bytes.Buffer
	require.NoError(t, m.Render(&buf))
	page := buf.String()

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, `<div id="map"></div>`)
	assert.Contains(t, page, "<title>Earthquakes: 3 events</title>")
	assert.Contains(t, page, `content="2024-10-15T14:00:00Z"`)
	assert.Contains(t, page, "leaflet@1.9.4/dist/leaflet.js")

	for _, name := range []string{LayerStreet, LayerTopography, LayerDarkMode, OverlayEarthquakes, OverlayPlates} {
		assert.Contains(t, page, name)
	}
	assert.Contains(t, page, "tile.opentopomap.org")
	assert.Contains(t, page, "basemaps.cartocdn.com/dark_all")

	for _, q := range testQuakes() {
		assert.Contains(t, page, q.Place)
	}
	assert.Contains(t, page, "Polygon")
	assert.Contains(t, page, "LineString")
}

func TestRender_NoscriptLegend(t *testing.T) {
	m := Assemble(nil, nil, Options{})

	var buf bytes.Buffer
	require.NoError(t, m.Render(&buf))
	page := buf.String()

	start := strings.Index(page, "<noscript>")
	end := strings.Index(page, "</noscript>")
	require.True(t, start >= 0 && end > start)
	legend := html.UnescapeString(page[start:end])

	assert.Equal(t, 6, strings.Count(legend, "<li>"))
	for _, label := range []string{"-10–10", "10–30", "30–50", "50–70", "70–90", "90+"} {
		assert.Contains(t, legend, label)
	}
}

func TestRender_EmptyMapHasMarkerArray(t *testing.T) {
	m := Assemble(nil, nil, Options{})

	var buf bytes.Buffer
	require.NoError(t, m.Render(&buf))
	assert.Contains(t, buf.String(), `"markers":[]`)
	assert.NotContains(t, buf.String(), `"markers":null`)
}

func TestRender_ReflectsLayerControls(t *testing.T) {
	m := Assemble(testQuakes(), nil, Options{})
	require.NoError(t, m.SelectBaseLayer(LayerDarkMode))
	require.NoError(t, m.SetOverlayVisible(OverlayPlates, false))

	var buf bytes.Buffer
	require.NoError(t, m.Render(&buf))
	page := buf.String()

	assert.Contains(t, page, `"name":"Dark Mode"`)
	assert.Contains(t, page, `"active":true`)
	assert.Equal(t, 1, strings.Count(page, `"active":true`))
	assert.Contains(t, page, `"visible":false`)
}

func TestRenderFailure(t *testing.T) {
	t.Run("initialization error", func(t *testing.T) {
		err := &domain.InitializationError{Stage: "earthquakes", Err: errors.New("dial tcp: connection refused")}

		var buf bytes.Buffer
		require.NoError(t, RenderFailure(&buf, err))

		assert.Contains(t, buf.String(), "The earthquake feed could not be loaded.")
		assert.Contains(t, buf.String(), "connection refused")
	})

	t.Run("other error", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RenderFailure(&buf, errors.New("<boom>")))

		assert.Contains(t, buf.String(), "The map could not be built.")
		assert.Contains(t, buf.String(), "&lt;boom&gt;")
	})
}
