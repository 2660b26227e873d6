// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/trackline/internal/platform/constants"
)

// AnalyticsCache is the read-through cache in front of the shift aggregates.
//
// A miss is reported as (nil, nil), never as an error; cache failures must
// not take the analytics endpoints down.
type AnalyticsCache interface {
	// GetProjectTime returns the cached aggregate for the key, or nil on miss.
	GetProjectTime(ctx context.Context, key string) (*ProjectTimeAnalytics, error)

	// SetProjectTime stores the aggregate under the key for the standard TTL.
	SetProjectTime(ctx context.Context, key string, analytics *ProjectTimeAnalytics) error
}

// RedisAnalyticsCache implements [AnalyticsCache] using Redis.
type RedisAnalyticsCache struct {
	client *redis.Client
}

// NewAnalyticsCache creates a new Redis-backed AnalyticsCache.
func NewAnalyticsCache(client *redis.Client) *RedisAnalyticsCache {
	return &RedisAnalyticsCache{client: client}
}

/*
GetProjectTime retrieves a cached project-time aggregate.

Parameters:
  - ctx: context.Context
  - key: string (stable digest of window + filters)

Returns:
  - *ProjectTimeAnalytics: The cached aggregate, or nil on miss
  - error: Connectivity or decode errors (misses are not errors)
*/
func (cache *RedisAnalyticsCache) GetProjectTime(ctx context.Context, key string) (*ProjectTimeAnalytics, error) {

	// Use constants for key prefix
	payload, err := cache.client.Get(ctx, constants.RedisPrefixAnalyticsTime+key).Bytes()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_analytics_cache_get_failed: %w", err)
	}

	// Decode the cached aggregate
	analytics := &ProjectTimeAnalytics{}
	if err := json.Unmarshal(payload, analytics); err != nil {
		return nil, fmt.Errorf("redis_analytics_cache_decode_failed: %w", err)
	}

	return analytics, nil
}

/*
SetProjectTime stores a project-time aggregate for the standard TTL.

Parameters:
  - ctx: context.Context
  - key: string
  - analytics: *ProjectTimeAnalytics

Returns:
  - error: Encode or connectivity errors
*/
func (cache *RedisAnalyticsCache) SetProjectTime(ctx context.Context, key string, analytics *ProjectTimeAnalytics) error {

	// Encode the aggregate
	payload, err := json.Marshal(analytics)
	if err != nil {
		return fmt.Errorf("redis_analytics_cache_encode_failed: %w", err)
	}

	// Set with TTL
	if err := cache.client.Set(ctx, constants.RedisPrefixAnalyticsTime+key, payload, constants.AnalyticsCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_analytics_cache_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}
