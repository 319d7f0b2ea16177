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
	geocodeKeyPrefix = "geocode:"
	geocodeTTL       = 30 * 24 * time.Hour
)

// RedisGeocodeCache caches address -> coordinate lookups in Redis with a TTL.
type RedisGeocodeCache struct {
	Client *redis.Client
}

func NewRedisGeocodeCache(client *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client}
}

// Fetch cached coordinates for the given addresses. Missing keys are
// simply absent from the result map.
func (r *RedisGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (map[string]domain.Coordinates, error) {
	if r.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(addresses))
	keys := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}

		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
		keys = append(keys, geocodeKeyPrefix+a)
	}

	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}

		var c domain.Coordinates
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("get geocode cache: decode %q: %w", keys[i], err)
		}
		out[uniq[i]] = c
	}

	return out, nil
}

// Store address -> coordinate mappings in the cache.
func (r *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for addr, c := range results {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("insert geocode cache: empty address key")
		}

		payload, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("insert geocode cache: encode %q: %w", addr, err)
		}
		pipe.Set(ctx, geocodeKeyPrefix+addr, payload, geocodeTTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: redis pipeline: %w", err)
	}

	return nil
}
