package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"eld-trip-service/internal/domain"
)

func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewRedisGeocodeCache(testRedisClient(t))

	coords := map[string]domain.Coordinates{
		"Chicago, IL": {Lon: -87.6298, Lat: 41.8781},
		"Denver, CO":  {Lon: -104.9903, Lat: 39.7392},
	}
	if err := c.PutMany(ctx, coords); err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"Chicago, IL", "Denver, CO", "Nowhere, KS"})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(got))
	}
	if got["Chicago, IL"] != coords["Chicago, IL"] {
		t.Fatalf("Chicago = %v", got["Chicago, IL"])
	}
	if _, ok := got["Nowhere, KS"]; ok {
		t.Fatal("unexpected hit for uncached address")
	}
}

func TestRedisGeocodeCacheDedupesAndSkipsBlank(t *testing.T) {
	ctx := context.Background()
	c := NewRedisGeocodeCache(testRedisClient(t))

	if err := c.PutMany(ctx, map[string]domain.Coordinates{
		"Omaha, NE": {Lon: -95.9345, Lat: 41.2565},
	}); err != nil {
		t.Fatalf("PutMany: %v", err)
	}

	got, err := c.GetMany(ctx, []string{" Omaha, NE ", "Omaha, NE", "", "  "})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(got))
	}
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewRedisRouteCache(testRedisClient(t))

	route := domain.RouteInfo{
		DistanceMiles: 920.4,
		Geometry: []domain.Coordinates{
			{Lon: -87.6298, Lat: 41.8781},
			{Lon: -104.9903, Lat: 39.7392},
		},
		Milestones: []domain.CityMilestone{
			{Name: "Chicago, IL", DistanceMiles: 0, Type: domain.MilestoneStart},
			{Name: "Denver, CO", DistanceMiles: 920.4, Type: domain.MilestoneDropoff},
		},
		FuelStops: []domain.FuelStop{
			{Location: domain.Coordinates{Lon: -100.0, Lat: 40.0}, DistanceMiles: 1000},
		},
	}

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Put(ctx, "chi-den", route); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, "chi-den")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if got.DistanceMiles != route.DistanceMiles {
		t.Fatalf("distance = %v, want %v", got.DistanceMiles, route.DistanceMiles)
	}
	if len(got.Geometry) != 2 || len(got.Milestones) != 2 || len(got.FuelStops) != 1 {
		t.Fatalf("payload lost shape: %+v", got)
	}
	if got.Milestones[1].Type != domain.MilestoneDropoff {
		t.Fatalf("milestone type = %v", got.Milestones[1].Type)
	}
}

func TestRedisRouteCacheRejectsEmptyKey(t *testing.T) {
	ctx := context.Background()
	c := NewRedisRouteCache(testRedisClient(t))

	if err := c.Put(ctx, "  ", domain.RouteInfo{}); err == nil {
		t.Fatal("expected error for empty key")
	}
	if _, _, err := c.Get(ctx, ""); err == nil {
		t.Fatal("expected error for empty key")
	}
}
