// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// list.go caches the JSON bodies of public listing responses. Only
// anonymous requests are cached; any content mutation clears every entry,
// since a single toggle can reorder or re-filter every listing.
//
// Keys carry a generation number that InvalidateAll bumps. A listing read
// from the database before a mutation is stored under the old generation,
// where no later request looks for it.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// listKeyPrefix is the Valkey key prefix for cached listings.
	listKeyPrefix = "list:"

	// listGenKey holds the current generation. It sits outside
	// listKeyPrefix so the invalidation scan never deletes it.
	listGenKey = "listgen"

	// DefaultListTTL is how long a listing stays cached.
	DefaultListTTL = 5 * time.Minute
)

// listParams are the query parameters that shape a public listing. Anything
// else in the query is ignored by the handlers and left out of the key.
var listParams = []string{"type", "tab", "teaser"}

// ListCache stores rendered listing responses in Valkey. A nil *ListCache
// is valid and caches nothing.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache creates a new listing cache backed by the given Valkey client.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl == 0 {
		ttl = DefaultListTTL
	}
	return &ListCache{client: client, ttl: ttl}
}

// ListKey builds the generation-free part of a cache key for a family
// ("posts", "projects") from the recognised query parameters.
func ListKey(family string, query url.Values) string {
	kept := url.Values{}
	for _, name := range listParams {
		if v := query.Get(name); v != "" {
			kept.Set(name, v)
		}
	}
	return family + "?" + kept.Encode()
}

// Key returns the cache key for a listing request under the current
// generation. Call it before reading the database. ok is false when the
// cache is disabled or the generation cannot be read; the response must
// then not be cached.
func (c *ListCache) Key(ctx context.Context, family string, query url.Values) (key string, ok bool) {
	if c == nil {
		return "", false
	}
	gen, err := c.client.Get(ctx, listGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("list cache generation read error", "error", err)
		return "", false
	}
	return strconv.FormatInt(gen, 10) + ":" + ListKey(family, query), true
}

// Get retrieves a cached body. Returns false on miss or error.
func (c *ListCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.client.Get(ctx, listKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("list cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("list cache hit", "key", key)
	return val, true
}

// Set stores a body with the configured TTL.
func (c *ListCache) Set(ctx context.Context, key string, body []byte) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, listKeyPrefix+key, body, c.ttl).Err(); err != nil {
		slog.Warn("list cache set error", "key", key, "error", err)
	}
}

// InvalidateAll moves to a new generation and then removes every cached
// listing by scanning for the prefix.
func (c *ListCache) InvalidateAll(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.client.Incr(ctx, listGenKey).Err(); err != nil {
		slog.Warn("list cache generation bump error", "error", err)
	}

	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, listKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("list cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("list cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("list cache cleared", "deleted", deleted)
	}
}
