package domain

import (
	"fmt"
	"math"
)

// DepthBin pairs a lower depth bound (exclusive) with its marker color.
type DepthBin struct {
	Threshold float64
	Color     string
}

// depthBins is ordered by strictly increasing threshold. The first bin has no
// lower bound and catches every depth not claimed by a deeper bin.
var depthBins = [...]DepthBin{
	{Threshold: math.Inf(-1), Color: "#98ee00"},
	{Threshold: 10, Color: "#d4ee00"},
	{Threshold: 30, Color: "#eecc00"},
	{Threshold: 50, Color: "#ee9c00"},
	{Threshold: 70, Color: "#ea822c"},
	{Threshold: 90, Color: "#ea2c2c"},
}

// legendLowerBounds are the labelled lower bounds shown in the legend. The
// first entry stands in for the unbounded shallow bin.
var legendLowerBounds = [len(depthBins)]float64{-10, 10, 30, 50, 70, 90}

// DepthBins returns a copy of the classification table, shallowest first.
func DepthBins() []DepthBin {
	out := make([]DepthBin, len(depthBins))
	copy(out, depthBins[:])
	return out
}

// DepthColor returns the marker fill color for a depth in kilometers.
// Thresholds are exclusive: 90 km is orange, not red. NaN falls through to
// the shallowest bin.
func DepthColor(depth float64) string {
	for i := len(depthBins) - 1; i > 0; i-- {
		if depth > depthBins[i].Threshold {
			return depthBins[i].Color
		}
	}
	return depthBins[0].Color
}

// Legend describes the depth color scale, shallowest first.
func Legend() []LegendEntry {
	entries := make([]LegendEntry, len(legendLowerBounds))
	for i, lo := range legendLowerBounds {
		label := fmt.Sprintf("%g+", lo)
		if i+1 < len(legendLowerBounds) {
			label = fmt.Sprintf("%g–%g", lo, legendLowerBounds[i+1])
		}
		entries[i] = LegendEntry{Color: DepthColor(lo + 1), Label: label}
	}
	return entries
}
