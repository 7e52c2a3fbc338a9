package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	colorRed         = "#ea2c2c"
	colorOrange      = "#ea822c"
	colorAmber       = "#ee9c00"
	colorYellow      = "#eecc00"
	colorYellowGreen = "#d4ee00"
	colorGreen       = "#98ee00"
)

func TestDepthColor(t *testing.T) {
	tests := []struct {
		name  string
		depth float64
		want  string
	}{
		{"very deep", 650, colorRed},
		{"just below 90", 90.0001, colorRed},
		{"exactly 90", 90, colorOrange},
		{"inside 70-90", 80, colorOrange},
		{"exactly 70", 70, colorAmber},
		{"inside 50-70", 60, colorAmber},
		{"exactly 50", 50, colorYellow},
		{"inside 30-50", 35, colorYellow},
		{"exactly 30", 30, colorYellowGreen},
		{"inside 10-30", 10.5, colorYellowGreen},
		{"exactly 10", 10, colorGreen},
		{"shallow", 2.3, colorGreen},
		{"zero", 0, colorGreen},
		{"above sea level", -3.5, colorGreen},
		{"negative infinity", math.Inf(-1), colorGreen},
		{"positive infinity", math.Inf(1), colorRed},
		{"NaN", math.NaN(), colorGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DepthColor(tt.depth))
		})
	}
}

func TestDepthColor_Deterministic(t *testing.T) {
	for _, d := range []float64{-10, 9.99, 10, 10.01, 45, 90, 95} {
		first := DepthColor(d)
		for range 5 {
			assert.Equal(t, first, DepthColor(d))
		}
	}
}

func TestDepthColor_AlwaysInPalette(t *testing.T) {
	palette := map[string]bool{}
	for _, b := range DepthBins() {
		palette[b.Color] = true
	}
	require.Len(t, palette, 6)

	for d := -50.0; d <= 200; d += 0.25 {
		assert.True(t, palette[DepthColor(d)], "depth %v", d)
	}
}

func TestDepthBins_StrictlyIncreasing(t *testing.T) {
	bins := DepthBins()
	require.Len(t, bins, 6)
	for i := 1; i < len(bins); i++ {
		assert.Greater(t, bins[i].Threshold, bins[i-1].Threshold)
	}
}

func TestDepthBins_ReturnsCopy(t *testing.T) {
	bins := DepthBins()
	bins[5].Color = "#000000"
	assert.Equal(t, colorRed, DepthColor(100))
}

func TestLegend(t *testing.T) {
	want := []LegendEntry{
		{Color: colorGreen, Label: "-10–10"},
		{Color: colorYellowGreen, Label: "10–30"},
		{Color: colorYellow, Label: "30–50"},
		{Color: colorAmber, Label: "50–70"},
		{Color: colorOrange, Label: "70–90"},
		{Color: colorRed, Label: "90+"},
	}

	if diff := cmp.Diff(want, Legend()); diff != "" {
		t.Errorf("Legend() mismatch (-want +got):\n%s", diff)
	}
}
