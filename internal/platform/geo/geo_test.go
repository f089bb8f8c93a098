package geo_test

import (
	"math"
	"testing"

	"focusdrive/internal/platform/geo"
)

func TestHaversineMilesKnownPair(t *testing.T) {
	t.Parallel()
	sf := geo.Coordinate{Lat: 37.7749, Lon: -122.4194}
	la := geo.Coordinate{Lat: 34.0522, Lon: -118.2437}
	got := geo.HaversineMiles(sf, la)
	if math.Abs(got-347) > 3 {
		t.Fatalf("expected roughly 347 miles, got %.1f", got)
	}
	if geo.HaversineMiles(sf, sf) != 0 {
		t.Fatalf("distance to self must be zero")
	}
}

func TestMetersMilesConversion(t *testing.T) {
	t.Parallel()
	if got := 1609.344 * geo.MetersToMiles; math.Abs(got-1) > 1e-3 {
		t.Fatalf("expected one mile, got %f", got)
	}
	if got := geo.MilesToMeters(1) * geo.MetersToMiles; math.Abs(got-1) > 1e-9 {
		t.Fatalf("round trip drifted: %f", got)
	}
}

func TestCoordinateValid(t *testing.T) {
	t.Parallel()
	if !(geo.Coordinate{Lat: 45, Lon: 120}).Valid() {
		t.Fatalf("expected valid coordinate")
	}
	if (geo.Coordinate{Lat: 91, Lon: 0}).Valid() {
		t.Fatalf("latitude 91 must be invalid")
	}
}
