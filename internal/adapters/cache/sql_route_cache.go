package cache

import (
	"context"
	"database/sql"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// SQLRouteCache is a Postgres-backed cache for computed routes, keyed by
// a waypoint string. The route payload is stored as JSONB.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Fetch a cached route. The second return value reports whether the key
// was present.
func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ domain.RouteInfo, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return domain.RouteInfo{}, false, errors.New("route cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return domain.RouteInfo{}, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT payload
    FROM route_cache
    WHERE route_key = $1;
	`

	var payload []byte
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return domain.RouteInfo{}, false, nil
	}
	if err != nil {
		return domain.RouteInfo{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	var route domain.RouteInfo
	if err = json.Unmarshal(payload, &route); err != nil {
		return domain.RouteInfo{}, false, fmt.Errorf("get route cache: decode payload: %w", err)
	}

	return route, true, nil
}

// Store a computed route under the given key.
func (s *SQLRouteCache) Put(ctx context.Context, key string, route domain.RouteInfo) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	payload, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("insert route cache: encode payload: %w", err)
	}

	q := `
	INSERT INTO route_cache (route_key, payload)
    VALUES ($1, $2)
	ON CONFLICT (route_key) DO UPDATE
	SET payload = EXCLUDED.payload;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, payload); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
