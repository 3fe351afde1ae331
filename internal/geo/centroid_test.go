package geo

import (
	"math"
	"testing"
)

func TestCentroid(t *testing.T) {
	if _, ok := Centroid(nil); ok {
		t.Fatalf("expected no centroid for empty input")
	}

	single := Point{Latitude: 52.52, Longitude: 13.405}
	c, ok := Centroid([]Point{single})
	if !ok || c != single {
		t.Fatalf("expected single point to be its own centroid, got %+v", c)
	}

	c, ok = Centroid([]Point{
		{Latitude: 10, Longitude: 20},
		{Latitude: 20, Longitude: 40},
		{Latitude: 30, Longitude: -60},
	})
	if !ok {
		t.Fatalf("expected centroid")
	}
	if math.Abs(c.Latitude-20) > 1e-9 || math.Abs(c.Longitude-0) > 1e-9 {
		t.Fatalf("unexpected centroid %+v", c)
	}
}

func TestPointValid(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		valid bool
	}{
		{"origin", Point{0, 0}, true},
		{"bounds", Point{90, -180}, true},
		{"latitude too high", Point{90.5, 0}, false},
		{"longitude too low", Point{0, -180.1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.point.Valid(); got != tc.valid {
				t.Errorf("Expected %v, got %v", tc.valid, got)
			}
		})
	}
}
