package query

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/RakanDouli/souq-client/pkg/cache"
)

// Transport executes a GraphQL document remotely. Satisfied by
// *graphql.Client.
type Transport interface {
	Do(ctx context.Context, document string, variables map[string]interface{}, requireAuth bool) (json.RawMessage, error)
}

// CachedClient wraps a Transport with a bounded, TTL-expiring result
// cache. Reads for the same key within their TTL are served locally;
// concurrent reads for the same uncached key share one transport call.
//
// Failures are never cached and never retried here: a miss followed by
// a failed call leaves the cache unchanged, and retry policy belongs to
// the caller.
type CachedClient struct {
	transport Transport
	cache     *cache.BoundedCache
	flight    singleflight.Group
	logger    *zap.Logger
}

// NewCachedClient creates a CachedClient over the given transport and
// result cache.
func NewCachedClient(transport Transport, resultCache *cache.BoundedCache, logger *zap.Logger) *CachedClient {
	return &CachedClient{
		transport: transport,
		cache:     resultCache,
		logger:    logger,
	}
}

// Request forwards unconditionally to the transport, bypassing the cache.
func (c *CachedClient) Request(ctx context.Context, document string, variables map[string]interface{}, requireAuth bool) (json.RawMessage, error) {
	return c.transport.Do(ctx, document, variables, requireAuth)
}

// CachedRequest returns the cached result for (document, variables) if
// one exists and is younger than ttl, otherwise calls the transport and
// caches the successful result. Cached reads are always unauthenticated
// passthroughs on miss.
func (c *CachedClient) CachedRequest(ctx context.Context, document string, variables map[string]interface{}, ttl time.Duration) (json.RawMessage, error) {
	key := Key(document, variables)

	if value, ok := c.cache.Get(key, ttl); ok {
		return value.(json.RawMessage), nil
	}

	result, err, shared := c.flight.Do(key, func() (interface{}, error) {
		data, err := c.transport.Do(ctx, document, variables, false)
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		DedupedRequestsTotal.Inc()
	}

	return result.(json.RawMessage), nil
}

// Invalidate deletes the cached result for (document, variables), if
// present. Called after a mutation that made the read stale.
func (c *CachedClient) Invalidate(document string, variables map[string]interface{}) {
	c.cache.Delete(Key(document, variables))
}

// ClearAll empties the result cache. Called on logout.
func (c *CachedClient) ClearAll() {
	c.cache.Clear()
	c.logger.Info("query-cache-cleared")
}

// Size returns the current number of cached results.
func (c *CachedClient) Size() int {
	return c.cache.Len()
}
