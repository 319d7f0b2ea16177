package cache

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"eld-trip-service/internal/adapters/repositories"
	"eld-trip-service/internal/domain"
)

func testSqliteDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := repositories.InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteGeocodeCache(testSqliteDB(t))

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
	if got["Denver, CO"] != coords["Denver, CO"] {
		t.Fatalf("Denver = %v", got["Denver, CO"])
	}
}

func TestSqliteGeocodeCacheUpsert(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteGeocodeCache(testSqliteDB(t))

	if err := c.PutMany(ctx, map[string]domain.Coordinates{
		"Omaha, NE": {Lon: -95.0, Lat: 41.0},
	}); err != nil {
		t.Fatalf("PutMany: %v", err)
	}
	if err := c.PutMany(ctx, map[string]domain.Coordinates{
		"Omaha, NE": {Lon: -95.9345, Lat: 41.2565},
	}); err != nil {
		t.Fatalf("PutMany (upsert): %v", err)
	}

	got, err := c.GetMany(ctx, []string{"Omaha, NE"})
	if err != nil {
		t.Fatalf("GetMany: %v", err)
	}
	want := domain.Coordinates{Lon: -95.9345, Lat: 41.2565}
	if got["Omaha, NE"] != want {
		t.Fatalf("Omaha = %v, want %v", got["Omaha, NE"], want)
	}
}

func TestSqliteRouteCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewSqliteRouteCache(testSqliteDB(t))

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	route := domain.RouteInfo{
		DistanceMiles: 600,
		Geometry: []domain.Coordinates{
			{Lon: -87.6298, Lat: 41.8781},
			{Lon: -95.9345, Lat: 41.2565},
		},
		Milestones: []domain.CityMilestone{
			{Name: "Chicago, IL", DistanceMiles: 0, Type: domain.MilestoneStart},
			{Name: "Omaha, NE", DistanceMiles: 600, Type: domain.MilestoneDropoff},
		},
	}
	if err := c.Put(ctx, "chi-oma", route); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, "chi-oma")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if got.DistanceMiles != 600 || len(got.Geometry) != 2 || len(got.Milestones) != 2 {
		t.Fatalf("payload lost shape: %+v", got)
	}
}
