package route

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"eld-trip-service/internal/domain"
)

// routeLegs is the shape shared by the directions call and the geodesic
// fallback: the full polyline, the metered length of each leg, and the
// coordinate each leg ends at.
type routeLegs struct {
	geometry  []domain.Coordinates
	legMeters []float64
	legEnds   []domain.Coordinates
}

type directionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Instructions bool        `json:"instructions"`
	Geometry     bool        `json:"geometry"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Segments []struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"segments"`
			WayPoints []int `json:"way_points"`
		} `json:"properties"`
	} `json:"features"`
}

// fetchDirections requests a driving route through the waypoints from the
// ORS directions endpoint (GeoJSON response, one segment per leg).
func (o *ORSRouteProvider) fetchDirections(ctx context.Context, waypoints []domain.Coordinates) (routeLegs, error) {
	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)

	coords := make([][]float64, 0, len(waypoints))
	for _, w := range waypoints {
		coords = append(coords, w.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{
		Coordinates:  coords,
		Instructions: false,
		Geometry:     true,
	})
	if err != nil {
		return routeLegs{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return routeLegs{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return routeLegs{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return routeLegs{}, fmt.Errorf("directions returned no features")
	}

	feature := decoded.Features[0]
	if len(feature.Properties.Segments) != len(waypoints)-1 {
		return routeLegs{}, fmt.Errorf(
			"expected %d route segments, got %d",
			len(waypoints)-1, len(feature.Properties.Segments),
		)
	}

	geometry := make([]domain.Coordinates, 0, len(feature.Geometry.Coordinates))
	for _, c := range feature.Geometry.Coordinates {
		if len(c) != 2 {
			return routeLegs{}, fmt.Errorf("invalid geometry coordinate %v", c)
		}
		geometry = append(geometry, domain.Coordinates{Lon: c[0], Lat: c[1]})
	}
	if len(geometry) < 2 {
		return routeLegs{}, fmt.Errorf("directions geometry too short: %d points", len(geometry))
	}

	legs := routeLegs{geometry: geometry}
	for _, seg := range feature.Properties.Segments {
		legs.legMeters = append(legs.legMeters, seg.Distance)
	}

	// Way points index the geometry at each leg boundary; fall back to the
	// original waypoints when the response omits them.
	wp := feature.Properties.WayPoints
	for i := 1; i < len(waypoints); i++ {
		if i < len(wp) && wp[i] >= 0 && wp[i] < len(geometry) {
			legs.legEnds = append(legs.legEnds, geometry[wp[i]])
			continue
		}
		legs.legEnds = append(legs.legEnds, waypoints[i])
	}

	return legs, nil
}
