package cache

import (
	"context"
	"eld-trip-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	routeKeyPrefix = "route:"
	routeTTL       = 7 * 24 * time.Hour
)

// RedisRouteCache caches computed routes in Redis with a TTL. Routes age
// out faster than geocodes since road networks change more often than
// city coordinates.
type RedisRouteCache struct {
	Client *redis.Client
}

func NewRedisRouteCache(client *redis.Client) *RedisRouteCache {
	return &RedisRouteCache{Client: client}
}

// Fetch a cached route. The second return value reports whether the key
// was present.
func (r *RedisRouteCache) Get(ctx context.Context, key string) (domain.RouteInfo, bool, error) {
	if r.Client == nil {
		return domain.RouteInfo{}, false, errors.New("route cache: redis client is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return domain.RouteInfo{}, false, errors.New("get route cache: key must not be empty")
	}

	raw, err := r.Client.Get(ctx, routeKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return domain.RouteInfo{}, false, nil
	}
	if err != nil {
		return domain.RouteInfo{}, false, fmt.Errorf("get route cache: redis get: %w", err)
	}

	var route domain.RouteInfo
	if err := json.Unmarshal([]byte(raw), &route); err != nil {
		return domain.RouteInfo{}, false, fmt.Errorf("get route cache: decode payload: %w", err)
	}

	return route, true, nil
}

// Store a computed route under the given key.
func (r *RedisRouteCache) Put(ctx context.Context, key string, route domain.RouteInfo) error {
	if r.Client == nil {
		return errors.New("route cache: redis client is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	payload, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("insert route cache: encode payload: %w", err)
	}

	if err := r.Client.Set(ctx, routeKeyPrefix+key, payload, routeTTL).Err(); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
