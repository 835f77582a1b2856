// internal/search/geo_test.go
package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name        string
		lat1, lon1  float64
		lat2, lon2  float64
		wantKm      float64
		toleranceKm float64
	}{
		{name: "same point", lat1: 42.8746, lon1: 74.5698, lat2: 42.8746, lon2: 74.5698, wantKm: 0, toleranceKm: 0.001},
		{name: "across town", lat1: 42.8746, lon1: 74.5698, lat2: 42.8800, lon2: 74.5800, wantKm: 1.0, toleranceKm: 0.1},
		{name: "bishkek to almaty", lat1: 42.8746, lon1: 74.5698, lat2: 43.2220, lon2: 76.8512, wantKm: 190, toleranceKm: 5},
		{name: "equator quarter degree", lat1: 0, lon1: 0, lat2: 0, lon2: 0.25, wantKm: 27.8, toleranceKm: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.wantKm, got, tt.toleranceKm)

			// Symmetric by definition.
			assert.InDelta(t, got, HaversineKm(tt.lat2, tt.lon2, tt.lat1, tt.lon1), 1e-9)
		})
	}
}
