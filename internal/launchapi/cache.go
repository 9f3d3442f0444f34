package launchapi

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Cache stores raw upstream response bodies.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func launchCacheKey(id string) string {
	return "launch:" + id
}

func searchCacheKey(query string) string {
	return "search:" + strings.ToLower(query)
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("launch cache lookup failed")
		return nil, false
	}
	return body, ok
}

func (c *Client) store(ctx context.Context, key string, body []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache launch api response")
	}
}
