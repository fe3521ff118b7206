package dns

import (
	"context"
	"net/netip"
	"time"

	"github.com/projectdiscovery/gcache"

	"github.com/khmm12/hostscan/internal/ports"
)

var _ ports.ReverseResolver = (*CachedResolver)(nil)

// CachedResolver remembers successful lookups so repeated scans of the same
// network do not query every host again. Failures are not cached.
type CachedResolver struct {
	next  ports.ReverseResolver
	cache gcache.Cache[netip.Addr, string]
}

func NewCachedResolver(next ports.ReverseResolver, size int, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		next: next,
		cache: gcache.New[netip.Addr, string](size).
			LRU().
			Expiration(ttl).
			Build(),
	}
}

func (r *CachedResolver) LookupHostname(ctx context.Context, addr netip.Addr) (string, error) {
	if name, err := r.cache.Get(addr); err == nil {
		return name, nil
	}

	name, err := r.next.LookupHostname(ctx, addr)
	if err != nil {
		return "", err
	}

	_ = r.cache.Set(addr, name)

	return name, nil
}
