package ports

import (
	"context"

	"eld-trip-service/internal/domain"
)

// RouteProvider is the boundary to the external geocoding and routing
// collaborator. The HOS core never calls it; the trip orchestrator resolves
// the route first and feeds the core plain values.
type RouteProvider interface {
	// Geocode resolves a free-text address to coordinates.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
	// GetRoute returns the driveable route through start -> via... -> end,
	// including total distance, geometry, milestones, and fuel stops.
	GetRoute(ctx context.Context, start domain.Coordinates, via []domain.Coordinates, end domain.Coordinates) (domain.RouteInfo, error)
}
