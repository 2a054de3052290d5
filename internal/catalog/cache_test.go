package catalog

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freifahren/sichtungskern/internal/errs"
)

type countingClient struct {
	calls atomic.Int32
	want  errs.ResolveResult
}

func (c *countingClient) ResolveName(ctx context.Context, name string) errs.ResolveResult {
	c.calls.Add(1)
	return c.want
}

func (c *countingClient) SubmitReport(ctx context.Context, report Report) error {
	return nil
}

func TestCachedClient_ResolveName_CachesHits(t *testing.T) {
	inner := &countingClient{want: errs.ResolvedID("hermannplatz")}
	cached, err := NewCachedClient(inner)
	require.NoError(t, err)

	first := cached.ResolveName(context.Background(), "Hermannplatz")
	require.Equal(t, errs.Resolved, first.Kind)
	cached.cache.Wait()

	for i := 0; i < 4; i++ {
		result := cached.ResolveName(context.Background(), "Hermannplatz")
		require.Equal(t, errs.Resolved, result.Kind)
	}

	require.Equal(t, int32(1), inner.calls.Load())
}

func TestCachedClient_ResolveName_DoesNotCacheTransportErrors(t *testing.T) {
	inner := &countingClient{want: errs.FailedTransport(assertErr)}
	cached, err := NewCachedClient(inner)
	require.NoError(t, err)

	cached.ResolveName(context.Background(), "Hermannplatz")
	cached.cache.Wait()
	cached.ResolveName(context.Background(), "Hermannplatz")
	cached.cache.Wait()

	require.Equal(t, int32(2), inner.calls.Load())
}

var assertErr = context.DeadlineExceeded
