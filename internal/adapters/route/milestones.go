package route

import "eld-trip-service/internal/domain"

// samplePoint is a geometry coordinate at a known cumulative route distance.
type samplePoint struct {
	coord         domain.Coordinates
	distanceMiles float64
}

// samplePoints walks the geometry accumulating haversine distance and emits
// the first point at or past each interval multiple.
func samplePoints(geometry []domain.Coordinates, intervalMiles float64) []samplePoint {
	if len(geometry) < 2 || intervalMiles <= 0 {
		return nil
	}

	out := make([]samplePoint, 0, 16)
	accumulated := 0.0
	target := intervalMiles

	for i := 0; i < len(geometry)-1; i++ {
		accumulated += haversineMiles(geometry[i], geometry[i+1])
		if accumulated >= target {
			out = append(out, samplePoint{coord: geometry[i+1], distanceMiles: target})
			target += intervalMiles
		}
	}
	return out
}

// fuelStops marks a fueling point at every interval along the geometry.
func fuelStops(geometry []domain.Coordinates, intervalMiles float64) []domain.FuelStop {
	out := make([]domain.FuelStop, 0, 4)
	for _, p := range samplePoints(geometry, intervalMiles) {
		out = append(out, domain.FuelStop{
			Location:      p.coord,
			DistanceMiles: p.distanceMiles,
		})
	}
	return out
}
