package route

import (
	"math"
	"testing"

	"eld-trip-service/internal/domain"
)

var (
	chicago = domain.Coordinates{Lon: -87.6298, Lat: 41.8781}
	denver  = domain.Coordinates{Lon: -104.9903, Lat: 39.7392}
)

func TestHaversineMiles(t *testing.T) {
	got := haversineMiles(chicago, denver)

	// Great-circle Chicago-Denver is roughly 920 miles.
	if math.Abs(got-920) > 20 {
		t.Fatalf("haversineMiles = %v, want ~920", got)
	}

	if d := haversineMiles(chicago, chicago); d != 0 {
		t.Fatalf("zero-distance = %v, want 0", d)
	}
}

func TestGeodesicRouteLegs(t *testing.T) {
	mid := domain.Coordinates{Lon: -95.9345, Lat: 41.2565} // Omaha
	legs := geodesicRoute([]domain.Coordinates{chicago, mid, denver})

	if len(legs.legMeters) != 2 || len(legs.legEnds) != 2 {
		t.Fatalf("expected 2 legs, got meters=%d ends=%d", len(legs.legMeters), len(legs.legEnds))
	}
	if legs.legEnds[1] != denver {
		t.Fatalf("final leg ends at %v, want %v", legs.legEnds[1], denver)
	}

	// Interpolation keeps the polyline dense enough for milestone sampling.
	if len(legs.geometry) < 10 {
		t.Fatalf("geometry has %d points, want interpolated polyline", len(legs.geometry))
	}
	if legs.geometry[0] != chicago || legs.geometry[len(legs.geometry)-1] != denver {
		t.Fatalf("geometry endpoints wrong: %v .. %v", legs.geometry[0], legs.geometry[len(legs.geometry)-1])
	}

	sumMiles := (legs.legMeters[0] + legs.legMeters[1]) / metersPerMile
	direct := haversineMiles(chicago, denver)
	if sumMiles < direct {
		t.Fatalf("leg total %v shorter than direct %v", sumMiles, direct)
	}
}

func TestSamplePoints(t *testing.T) {
	legs := geodesicRoute([]domain.Coordinates{chicago, denver})

	points := samplePoints(legs.geometry, 75)
	if len(points) == 0 {
		t.Fatal("expected sampled points along a ~920 mile route")
	}

	for i, p := range points {
		want := float64(i+1) * 75
		if p.distanceMiles != want {
			t.Fatalf("point %d at %v miles, want %v", i, p.distanceMiles, want)
		}
	}

	if pts := samplePoints(legs.geometry[:1], 75); pts != nil {
		t.Fatalf("expected nil for degenerate geometry, got %v", pts)
	}
}

func TestFuelStops(t *testing.T) {
	legs := geodesicRoute([]domain.Coordinates{chicago, denver})

	// ~920 miles: no 1000-mile fuel stop yet.
	if stops := fuelStops(legs.geometry, 1000); len(stops) != 0 {
		t.Fatalf("expected no fuel stops, got %v", stops)
	}
	if stops := fuelStops(legs.geometry, 400); len(stops) != 2 {
		t.Fatalf("expected 2 fuel stops at 400-mile interval, got %d", len(stops))
	}
}
