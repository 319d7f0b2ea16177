package route

import (
	"context"
	"fmt"

	"eld-trip-service/internal/domain"
)

// MockRouteProvider serves fixed geocode and route answers for tests.
type MockRouteProvider struct {
	Coords map[string]domain.Coordinates
	Route  domain.RouteInfo
	Err    error
}

func (p *MockRouteProvider) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	c, ok := p.Coords[address]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("missing coordinates for %q: %w", address, domain.ErrAddressNotFound)
	}
	return c, nil
}

func (p *MockRouteProvider) GetRoute(
	ctx context.Context,
	start domain.Coordinates,
	via []domain.Coordinates,
	end domain.Coordinates,
) (domain.RouteInfo, error) {
	if p.Err != nil {
		return domain.RouteInfo{}, p.Err
	}
	return p.Route, nil
}
