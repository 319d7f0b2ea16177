package route

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/platform/obs"
	"eld-trip-service/internal/ports"
)

const metersPerMile = 1609.34

// ORSRouteProvider implements RouteProvider using OpenRouteService.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - Persistent route caching
//   - External API calls with retry/backoff
//   - A straight-line fallback when the directions service is unavailable
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	geocodeCache ports.GeocodeCache
	routeCache   ports.RouteCache

	// Sampling intervals for route annotation.
	milestoneIntervalMiles float64
	fuelIntervalMiles      float64
}

func NewORSRouteProvider(
	apiKey string,
	geocodeCache ports.GeocodeCache,
	routeCache ports.RouteCache,
) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSRouteProvider{
		session:                &http.Client{Timeout: 15 * time.Second},
		apiKey:                 apiKey,
		baseURL:                "https://api.openrouteservice.org",
		profile:                "driving-car",
		geocodeCache:           geocodeCache,
		routeCache:             routeCache,
		milestoneIntervalMiles: 75,
		fuelIntervalMiles:      1000,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (o *ORSRouteProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves one address, consulting the persistent cache first.
func (o *ORSRouteProvider) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := o.normalize(address)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: address must be non-empty")
	}

	if o.geocodeCache != nil {
		hits, err := o.geocodeCache.GetMany(ctx, []string{norm})
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode cache read: %w", err)
		}
		if c, ok := hits[norm]; ok {
			return c, nil
		}
	}

	coord, err := o.geocodeSearch(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, err)
	}

	if o.geocodeCache != nil {
		if err := o.geocodeCache.PutMany(ctx, map[string]domain.Coordinates{norm: coord}); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coord, nil
}

// GetRoute fetches the driveable route through start -> via... -> end and
// annotates it with milestones and fuel stops. When the directions service
// fails, a straight-line geodesic route stands in so trip planning still
// completes.
func (o *ORSRouteProvider) GetRoute(
	ctx context.Context,
	start domain.Coordinates,
	via []domain.Coordinates,
	end domain.Coordinates,
) (_ domain.RouteInfo, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	waypoints := make([]domain.Coordinates, 0, 2+len(via))
	waypoints = append(waypoints, start)
	waypoints = append(waypoints, via...)
	waypoints = append(waypoints, end)

	key := routeKey(waypoints)
	if o.routeCache != nil {
		cached, ok, err := o.routeCache.Get(ctx, key)
		if err != nil {
			return domain.RouteInfo{}, fmt.Errorf("route cache read: %w", err)
		}
		if ok {
			return cached, nil
		}
	}

	legs, err := o.fetchDirections(ctx, waypoints)
	if err != nil {
		log.Printf("directions unavailable, using geodesic fallback: %v", err)
		legs = geodesicRoute(waypoints)
	}

	totalMiles := 0.0
	for _, m := range legs.legMeters {
		totalMiles += m / metersPerMile
	}

	info := domain.RouteInfo{
		DistanceMiles: totalMiles,
		Geometry:      legs.geometry,
		Milestones:    o.buildMilestones(ctx, legs, totalMiles),
		FuelStops:     fuelStops(legs.geometry, o.fuelIntervalMiles),
	}

	if o.routeCache != nil {
		if err := o.routeCache.Put(ctx, key, info); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return info, nil
}

// buildMilestones assembles the named route milestones: the trip endpoints
// plus intermediate places sampled along the geometry. Naming is best-effort;
// a failed reverse geocode falls back to a coordinate label.
func (o *ORSRouteProvider) buildMilestones(ctx context.Context, legs routeLegs, totalMiles float64) []domain.CityMilestone {
	out := make([]domain.CityMilestone, 0, 8)

	startCoord := legs.geometry[0]
	endCoord := legs.geometry[len(legs.geometry)-1]

	out = append(out, domain.CityMilestone{
		Name:          o.placeName(ctx, startCoord, "Trip Start"),
		DistanceMiles: 0,
		Type:          domain.MilestoneStart,
		Coordinates:   startCoord,
	})

	// The first leg ends at the pickup waypoint.
	if len(legs.legMeters) > 1 {
		pickupMiles := legs.legMeters[0] / metersPerMile
		out = append(out, domain.CityMilestone{
			Name:          o.placeName(ctx, legs.legEnds[0], "Pickup"),
			DistanceMiles: round1(pickupMiles),
			Type:          domain.MilestonePickup,
			Coordinates:   legs.legEnds[0],
		})
	}

	out = append(out, o.intermediateCities(ctx, legs.geometry)...)

	out = append(out, domain.CityMilestone{
		Name:          o.placeName(ctx, endCoord, "Dropoff"),
		DistanceMiles: round1(totalMiles),
		Type:          domain.MilestoneDropoff,
		Coordinates:   endCoord,
	})

	return out
}

// intermediateCities reverse geocodes points along the geometry at the
// configured mile interval, deduplicating consecutive repeats and capping
// the number of sampled points.
func (o *ORSRouteProvider) intermediateCities(ctx context.Context, geometry []domain.Coordinates) []domain.CityMilestone {
	const maxPoints = 50

	out := make([]domain.CityMilestone, 0, 16)
	lastName := ""

	for _, p := range samplePoints(geometry, o.milestoneIntervalMiles) {
		name := o.placeName(ctx, p.coord, fmt.Sprintf("Route Point (%.2f, %.2f)", p.coord.Lat, p.coord.Lon))
		if name == lastName {
			continue
		}
		lastName = name

		out = append(out, domain.CityMilestone{
			Name:          name,
			DistanceMiles: round1(p.distanceMiles),
			Type:          domain.MilestoneIntermediate,
			Coordinates:   p.coord,
		})
		if len(out) >= maxPoints {
			break
		}
	}
	return out
}

// placeName reverse geocodes a coordinate, returning fallback when the
// lookup fails. Reverse geocoding is annotation only and never fails a route.
func (o *ORSRouteProvider) placeName(ctx context.Context, c domain.Coordinates, fallback string) string {
	name, err := o.reverseGeocode(ctx, c)
	if err != nil || name == "" {
		return fallback
	}
	return name
}

// routeKey builds a stable cache key from rounded waypoint coordinates.
func routeKey(waypoints []domain.Coordinates) string {
	parts := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		parts = append(parts, fmt.Sprintf("%.5f,%.5f", w.Lon, w.Lat))
	}
	return strings.Join(parts, "|")
}
