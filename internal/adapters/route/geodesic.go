package route

import (
	"math"

	"eld-trip-service/internal/domain"
)

const earthRadiusMiles = 3958.8

// haversineMiles is the great-circle distance between two coordinates.
func haversineMiles(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	return 2 * earthRadiusMiles * math.Asin(math.Min(1, math.Sqrt(h)))
}

// geodesicRoute builds a straight-line stand-in route through the waypoints,
// interpolating a point roughly every 50 miles so downstream sampling still
// has geometry to walk. Used when the directions service is unavailable.
func geodesicRoute(waypoints []domain.Coordinates) routeLegs {
	legs := routeLegs{geometry: make([]domain.Coordinates, 0, 64)}

	for i := 0; i < len(waypoints)-1; i++ {
		p1 := waypoints[i]
		p2 := waypoints[i+1]
		legMiles := haversineMiles(p1, p2)

		legs.geometry = append(legs.geometry, p1)

		steps := int(legMiles / 50)
		for j := 1; j < steps; j++ {
			f := float64(j) / float64(steps)
			legs.geometry = append(legs.geometry, domain.Coordinates{
				Lon: p1.Lon + (p2.Lon-p1.Lon)*f,
				Lat: p1.Lat + (p2.Lat-p1.Lat)*f,
			})
		}

		legs.legMeters = append(legs.legMeters, legMiles*metersPerMile)
		legs.legEnds = append(legs.legEnds, p2)
	}

	legs.geometry = append(legs.geometry, waypoints[len(waypoints)-1])
	return legs
}

// round1 rounds half away from zero at 1 decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
