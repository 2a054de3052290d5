package catalog

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/freifahren/sichtungskern/internal/errs"
)

// nameResolutionTTL caches a resolved name for an hour: station names are
// effectively static but a cache with no TTL at all would keep serving a
// stale "not found" forever if the backend catalog's data changes under us.
const nameResolutionTTL = time.Hour

// CachedClient wraps a Client with an in-process ristretto cache over
// ResolveName, the one hot path called once per extracted candidate.
// Grounded on the teacher's internal/tools.SimpleCache (a TTL'd wrapper
// around a generic backing store), adapted to ristretto instead of the
// teacher's pluggable data.Connector since this process has no shared
// external cache to connect to.
type CachedClient struct {
	inner Client
	cache *ristretto.Cache[string, errs.ResolveResult]
}

// NewCachedClient wraps inner with a cache sized for the station catalog
// (a few hundred to a few thousand names, never transaction-volume scale).
func NewCachedClient(inner Client) (*CachedClient, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[string, errs.ResolveResult]{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &CachedClient{inner: inner, cache: cache}, nil
}

func (c *CachedClient) ResolveName(ctx context.Context, name string) errs.ResolveResult {
	if cached, ok := c.cache.Get(name); ok {
		return cached
	}

	result := c.inner.ResolveName(ctx, name)
	if result.Kind != errs.TransportError {
		c.cache.SetWithTTL(name, result, 1, nameResolutionTTL)
	}
	return result
}

func (c *CachedClient) SubmitReport(ctx context.Context, report Report) error {
	return c.inner.SubmitReport(ctx, report)
}

var _ Client = (*CachedClient)(nil)
var _ Client = (*HTTPClient)(nil)
