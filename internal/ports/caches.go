package ports

import (
	"context"

	"eld-trip-service/internal/domain"
)

// GeocodeCache is a persistent address -> coordinates cache shared by route
// provider adapters. Keys are expected to be normalized by the caller.
type GeocodeCache interface {
	// Fetch cached coordinates for the given addresses. Misses are simply
	// absent from the returned map.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	// Store address -> coordinate mappings.
	PutMany(ctx context.Context, coords map[string]domain.Coordinates) error
}

// RouteCache persists full RouteInfo payloads keyed by a normalized waypoint
// key, so repeated trips over the same leg skip the external routing call.
type RouteCache interface {
	// Get returns the cached route and whether the key was present.
	Get(ctx context.Context, key string) (domain.RouteInfo, bool, error)
	// Put stores a route under the key, replacing any previous value.
	Put(ctx context.Context, key string, route domain.RouteInfo) error
}
